package game

import (
	"errors"
	"testing"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		survivors, spies int
		want             Outcome
	}{
		{4, 0, OutcomeWorkersWin},
		{0, 0, OutcomeWorkersWin},
		{2, 1, OutcomeDraw},
		{4, 2, OutcomeDraw},
		{3, 2, OutcomeDraw},
		{4, 1, OutcomeContinue},
		{5, 2, OutcomeContinue},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.survivors, tt.spies); got != tt.want {
			t.Errorf("Evaluate(%d, %d) = %v, want %v", tt.survivors, tt.spies, got, tt.want)
		}
	}
}

func TestCheckGuess(t *testing.T) {
	pool := models.LocationPool{"Beach", "Bank", "Circus"}

	guess, ok, err := CheckGuess(pool, 2, "Bank")
	if err != nil || !ok || guess != "Bank" {
		t.Errorf("correct guess = (%q, %v, %v)", guess, ok, err)
	}

	guess, ok, err = CheckGuess(pool, 1, "Bank")
	if err != nil || ok || guess != "Beach" {
		t.Errorf("wrong guess = (%q, %v, %v)", guess, ok, err)
	}

	for _, idx := range []int{0, 4, -1} {
		if _, _, err := CheckGuess(pool, idx, "Bank"); !errors.Is(err, ErrGuessOutOfRange) {
			t.Errorf("index %d: err = %v, want ErrGuessOutOfRange", idx, err)
		}
	}
}
