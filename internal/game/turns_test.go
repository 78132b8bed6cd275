package game

import (
	"errors"
	"testing"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

func seatsFor(n int) []models.Seat {
	players := makePlayers(n)
	seats := make([]models.Seat, n)
	for i, p := range players {
		seats[i] = models.Seat{Slot: i + 1, Player: p}
	}
	return seats
}

func TestTurnCycleAlternates(t *testing.T) {
	c, err := NewTurnCycle(seatsFor(3))
	if err != nil {
		t.Fatal(err)
	}
	if c.CurrentSlot() != 1 || !c.IsQuestion() {
		t.Fatalf("start = (%d, %v), want (1, true)", c.CurrentSlot(), c.IsQuestion())
	}

	want := []struct {
		slot     int
		question bool
	}{
		{2, false}, {2, true}, {3, false}, {3, true}, {1, false}, {1, true},
	}
	for i, w := range want {
		slot, err := c.Advance()
		if err != nil {
			t.Fatal(err)
		}
		if slot != w.slot || c.IsQuestion() != w.question {
			t.Errorf("advance %d = (%d, %v), want (%d, %v)", i+1, slot, c.IsQuestion(), w.slot, w.question)
		}
	}
}

func TestTurnCyclePeriodicity(t *testing.T) {
	for n := 1; n <= 8; n++ {
		c, err := NewTurnCycle(seatsFor(n))
		if err != nil {
			t.Fatal(err)
		}
		startSlot, startQuestion := c.CurrentSlot(), c.IsQuestion()
		for range 2 * n {
			if _, err := c.Advance(); err != nil {
				t.Fatal(err)
			}
		}
		if c.CurrentSlot() != startSlot || c.IsQuestion() != startQuestion {
			t.Errorf("n=%d: after 2n advances at (%d, %v), want (%d, %v)",
				n, c.CurrentSlot(), c.IsQuestion(), startSlot, startQuestion)
		}
	}
}

func TestTurnCycleAnswererPreview(t *testing.T) {
	c, _ := NewTurnCycle(seatsFor(4))
	answerer, err := c.Answerer()
	if err != nil {
		t.Fatal(err)
	}
	if answerer.Slot != 2 {
		t.Errorf("answerer slot = %d, want 2", answerer.Slot)
	}
	if c.CurrentSlot() != 1 || !c.IsQuestion() {
		t.Error("Answerer must not advance the cycle")
	}
}

func TestTurnCycleSkipsEliminated(t *testing.T) {
	c, _ := NewTurnCycle(seatsFor(5))
	if _, err := c.Eliminate(2); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Eliminate(4); err != nil {
		t.Fatal(err)
	}

	for range 20 {
		slot, err := c.Advance()
		if err != nil {
			t.Fatal(err)
		}
		if slot == 2 || slot == 4 {
			t.Fatalf("advance selected eliminated slot %d", slot)
		}
	}

	for _, seat := range c.Seats() {
		want := seatsFor(5)[seat.Slot-1].Player
		if seat.Player != want {
			t.Errorf("slot %d renumbered: holds %v, want %v", seat.Slot, seat.Player, want)
		}
	}
}

func TestTurnCycleEliminateCurrentHolder(t *testing.T) {
	c, _ := NewTurnCycle(seatsFor(3))
	c.Advance() // slot 2 answers
	if _, err := c.Eliminate(2); err != nil {
		t.Fatal(err)
	}
	if c.CurrentSlot() != 3 || !c.IsQuestion() {
		t.Errorf("after eliminating holder: (%d, %v), want (3, true)", c.CurrentSlot(), c.IsQuestion())
	}

	if _, err := c.Eliminate(3); err != nil {
		t.Fatal(err)
	}
	if c.CurrentSlot() != 1 {
		t.Errorf("wrap after eliminating last slot: current = %d, want 1", c.CurrentSlot())
	}
}

func TestTurnCycleInvariantErrors(t *testing.T) {
	if _, err := NewTurnCycle(nil); !errors.Is(err, ErrNoSurvivors) {
		t.Errorf("empty cycle: err = %v, want ErrNoSurvivors", err)
	}

	c, _ := NewTurnCycle(seatsFor(1))
	if _, err := c.Eliminate(9); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("unknown slot: err = %v, want ErrUnknownSlot", err)
	}
	if _, err := c.Eliminate(1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Advance(); !errors.Is(err, ErrNoSurvivors) {
		t.Errorf("advance with no survivors: err = %v, want ErrNoSurvivors", err)
	}
	if _, err := c.Current(); !errors.Is(err, ErrNoSurvivors) {
		t.Errorf("current with no survivors: err = %v, want ErrNoSurvivors", err)
	}
}

func TestTurnCycleSlotOf(t *testing.T) {
	c, _ := NewTurnCycle(seatsFor(3))
	if slot, ok := c.SlotOf("p3"); !ok || slot != 3 {
		t.Errorf("SlotOf(p3) = (%d, %v), want (3, true)", slot, ok)
	}
	c.Eliminate(3)
	if _, ok := c.SlotOf("p3"); ok {
		t.Error("SlotOf found an eliminated player")
	}
	if n := c.Numbering(); len(n) != 2 {
		t.Errorf("Numbering has %d entries, want 2", len(n))
	}
}
