// Package render turns session notices into chat text and HTML fragments.
package render

import (
	"strconv"
	"strings"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// Rules is the game description posted by the rules button
const Rules = `Spyfall rules

Everyone but the spies knows the secret location. Players take turns: the current player asks the next one a question, then the answerer asks the following player, and so on.

Workers want to find the spies without giving the location away. Spies want to blend in and work out where they are.

/vote - ready to vote; voting opens once more than half of the players are ready. A player needs more than half of all votes to be thrown out.
/reveal - reveal your role. A revealed worker leaves the game; a revealed spy gets one guess at the location and wins if it is right.

Workers win when no spies are left. If workers no longer outnumber spies, the game is a draw.`

// Text renders a notice as plain chat text
func Text(n models.Notice) string {
	var b strings.Builder
	switch n.Kind {
	case models.NoticeRegistrationOpened, models.NoticeRegistrationUpdated:
		b.WriteString("Registration for the game is open! Press \"Join\" to take part.\nAt least ")
		b.WriteString(strconv.Itoa(n.Minimum))
		b.WriteString(" players are needed.")
		if len(n.Players) > 0 {
			b.WriteString("\n\nAlready joined: ")
			b.WriteString(strconv.Itoa(len(n.Players)))
			b.WriteString("\n")
			b.WriteString(PlayerNames(n.Players))
		}
	case models.NoticeRegistrationCancelled:
		b.WriteString("Not enough players. Registration cancelled.")
	case models.NoticeGameStarting:
		b.WriteString("Enough players have joined. The game begins!")
	case models.NoticeLocations:
		b.WriteString("Possible locations:\n\n")
		b.WriteString(NumberedList(n.Locations))
	case models.NoticeRole:
		if n.IsSpy {
			b.WriteString("You are a spy!\n\nThe list of possible locations is in the chat.")
		} else {
			b.WriteString("You are a worker.\n\nLocation: ")
			b.WriteString(n.Location)
		}
	case models.NoticeHeadcount:
		b.WriteString("Players:\n")
		b.WriteString(SeatList(n.Seats))
		b.WriteString("\nWorkers: ")
		b.WriteString(strconv.Itoa(n.Workers))
		b.WriteString("\nSpies: ")
		b.WriteString(strconv.Itoa(n.Spies))
	case models.NoticeQuestionTurn:
		b.WriteString(seatName(n.Actor))
		b.WriteString(" asks ")
		b.WriteString(seatName(n.Target))
		b.WriteString(" a question:")
	case models.NoticeAnswerTurn:
		b.WriteString(seatName(n.Actor))
		b.WriteString(" answers:")
	case models.NoticeReadyToVote:
		b.WriteString(seatName(n.Actor))
		b.WriteString(" is ready to vote")
	case models.NoticeVotingOpened:
		b.WriteString("More than half of the players are ready to vote.\nWho is the spy?")
	case models.NoticeVoteCast:
		b.WriteString(seatName(n.Actor))
		b.WriteString(" has voted")
	case models.NoticeVoteAccepted:
		b.WriteString("Your vote for ")
		b.WriteString(seatName(n.Target))
		b.WriteString(" was counted.")
	case models.NoticeVotingClosed:
		b.WriteString("Voting is over")
	case models.NoticeVoteTally:
		b.WriteString("Votes:\n")
		for _, t := range n.Tally {
			b.WriteString(seatName(&t.Seat))
			b.WriteString(": ")
			b.WriteString(strconv.Itoa(t.Count))
			b.WriteString("\n")
		}
	case models.NoticeNoVotes:
		b.WriteString("Everyone abstained.")
	case models.NoticeNoMajority:
		b.WriteString("Opinions are split. Nobody leaves the game.")
	case models.NoticeEjected:
		b.WriteString("The majority thinks the spy is ")
		b.WriteString(seatName(n.Target))
		b.WriteString(".\n")
		b.WriteString(seatName(n.Target))
		b.WriteString(roleSuffix(n.IsSpy))
	case models.NoticeRevealRequested:
		b.WriteString(seatName(n.Actor))
		b.WriteString(" has decided to reveal their role")
	case models.NoticeRevealedWorker:
		b.WriteString(seatName(n.Actor))
		b.WriteString(roleSuffix(false))
	case models.NoticeRevealedSpy:
		b.WriteString(seatName(n.Actor))
		b.WriteString(" is a spy!\n\nPossible locations:\n\n")
		b.WriteString(NumberedList(n.Locations))
		b.WriteString("\n")
		b.WriteString(seatName(n.Actor))
		b.WriteString(" chooses:")
	case models.NoticeGuessCorrect:
		b.WriteString("The spy ")
		b.WriteString(seatName(n.Actor))
		b.WriteString(" guessed the location \"")
		b.WriteString(n.Location)
		b.WriteString("\".\n\nThe spies win!")
	case models.NoticeGuessWrong:
		b.WriteString("The spy ")
		b.WriteString(seatName(n.Actor))
		b.WriteString(" guessed \"")
		b.WriteString(n.Location)
		b.WriteString("\", which is wrong, and leaves the game.")
	case models.NoticeWorkersWin:
		b.WriteString("The workers win! The location was \"")
		b.WriteString(n.Location)
		b.WriteString("\".")
	case models.NoticeDraw:
		b.WriteString("Draw. The workers could not find the spies, and the spies could not find the location.\nThe spies were: ")
		b.WriteString(PlayerNames(n.Players))
	case models.NoticeRules:
		b.WriteString(Rules)
	default:
		b.WriteString(string(n.Kind))
	}
	return strings.TrimRight(b.String(), "\n")
}

// NumberedList renders "1. first" lines
func NumberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// SeatList renders one "slot. name" line per seat
func SeatList(seats []models.Seat) string {
	var b strings.Builder
	for i := range seats {
		b.WriteString(seatName(&seats[i]))
		b.WriteString("\n")
	}
	return b.String()
}

// PlayerNames joins display names with commas
func PlayerNames(players []models.Player) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func seatName(s *models.Seat) string {
	if s == nil {
		return "?"
	}
	return strconv.Itoa(s.Slot) + ". " + s.Player.Name
}

func roleSuffix(spy bool) string {
	if spy {
		return " was a spy!"
	}
	return " was a worker!"
}
