package game

import (
	"fmt"
	"sort"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// TurnCycle is the alternating question/answer pointer over the surviving
// seats. It addresses players only by slot, so eliminations never shift
// anyone else's number.
type TurnCycle struct {
	seats    map[int]models.Player
	current  int
	question bool
}

// NewTurnCycle starts a cycle at the lowest slot in the question phase
func NewTurnCycle(seats []models.Seat) (*TurnCycle, error) {
	if len(seats) == 0 {
		return nil, ErrNoSurvivors
	}
	c := &TurnCycle{
		seats:    make(map[int]models.Player, len(seats)),
		question: true,
	}
	for _, s := range seats {
		c.seats[s.Slot] = s.Player
	}
	c.current = c.slots()[0]
	return c, nil
}

// Advance ends the current actor's turn. In the question phase the turn
// moves to the next surviving slot; the phase flips either way.
func (c *TurnCycle) Advance() (int, error) {
	if len(c.seats) == 0 {
		return 0, ErrNoSurvivors
	}
	if c.question {
		c.current = c.next(c.current)
	}
	c.question = !c.question
	return c.current, nil
}

// Current returns the seat holding the turn
func (c *TurnCycle) Current() (models.Seat, error) {
	if len(c.seats) == 0 {
		return models.Seat{}, ErrNoSurvivors
	}
	p, ok := c.seats[c.current]
	if !ok {
		return models.Seat{}, fmt.Errorf("%w: current slot %d", ErrUnknownSlot, c.current)
	}
	return models.Seat{Slot: c.current, Player: p}, nil
}

// CurrentSlot returns the slot holding the turn
func (c *TurnCycle) CurrentSlot() int {
	return c.current
}

// IsQuestion reports whether the current actor asks (true) or answers
func (c *TurnCycle) IsQuestion() bool {
	return c.question
}

// Answerer previews who will hold the turn after the current question,
// without advancing
func (c *TurnCycle) Answerer() (models.Seat, error) {
	if len(c.seats) == 0 {
		return models.Seat{}, ErrNoSurvivors
	}
	slot := c.next(c.current)
	return models.Seat{Slot: slot, Player: c.seats[slot]}, nil
}

// Eliminate removes a slot. If it held the turn, the turn passes to the
// next surviving slot and restarts with a question.
func (c *TurnCycle) Eliminate(slot int) (models.Player, error) {
	p, ok := c.seats[slot]
	if !ok {
		return models.Player{}, fmt.Errorf("%w: %d", ErrUnknownSlot, slot)
	}
	delete(c.seats, slot)

	if slot == c.current {
		if len(c.seats) == 0 {
			c.current = 0
		} else {
			c.current = c.next(slot)
		}
		c.question = true
	}
	return p, nil
}

// Holder returns the player seated at slot
func (c *TurnCycle) Holder(slot int) (models.Player, bool) {
	p, ok := c.seats[slot]
	return p, ok
}

// SlotOf returns the slot of a surviving player
func (c *TurnCycle) SlotOf(playerID string) (int, bool) {
	for slot, p := range c.seats {
		if p.ID == playerID {
			return slot, true
		}
	}
	return 0, false
}

// Len returns the number of surviving seats
func (c *TurnCycle) Len() int {
	return len(c.seats)
}

// Seats returns the surviving seats ordered by slot
func (c *TurnCycle) Seats() []models.Seat {
	slots := c.slots()
	seats := make([]models.Seat, len(slots))
	for i, slot := range slots {
		seats[i] = models.Seat{Slot: slot, Player: c.seats[slot]}
	}
	return seats
}

// Numbering returns a copy of the slot map
func (c *TurnCycle) Numbering() map[int]models.Player {
	out := make(map[int]models.Player, len(c.seats))
	for slot, p := range c.seats {
		out[slot] = p
	}
	return out
}

// next returns the smallest surviving slot above slot, wrapping to the
// smallest surviving slot. slot itself need not survive.
func (c *TurnCycle) next(slot int) int {
	slots := c.slots()
	for _, s := range slots {
		if s > slot {
			return s
		}
	}
	return slots[0]
}

func (c *TurnCycle) slots() []int {
	slots := make([]int, 0, len(c.seats))
	for slot := range c.seats {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}
