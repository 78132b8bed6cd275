package game

// Outcome is the result of evaluating win conditions after an elimination
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWorkersWin
	OutcomeDraw
	OutcomeSpiesWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWorkersWin:
		return "workers_win"
	case OutcomeDraw:
		return "draw"
	case OutcomeSpiesWin:
		return "spies_win"
	default:
		return "continue"
	}
}

// Evaluate applies the win rules in order: no spies left means the
// workers win; workers no longer outnumbering spies is a draw; otherwise
// the game continues. A correct location guess is decided by CheckGuess,
// not here.
func Evaluate(survivors, spies int) Outcome {
	if spies == 0 {
		return OutcomeWorkersWin
	}
	if survivors-spies <= spies {
		return OutcomeDraw
	}
	return OutcomeContinue
}
