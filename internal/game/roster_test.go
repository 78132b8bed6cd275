package game

import (
	"testing"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

func TestRosterToggle(t *testing.T) {
	r := NewRoster(3)
	alice := models.Player{ID: "a", Name: "Alice"}

	if !r.Toggle(alice) {
		t.Fatal("first toggle should join")
	}
	if !r.Contains("a") || r.Len() != 1 {
		t.Fatalf("roster after join: contains=%v len=%d", r.Contains("a"), r.Len())
	}
	if r.Toggle(alice) {
		t.Fatal("second toggle should leave")
	}
	if r.Contains("a") || r.Len() != 0 {
		t.Fatalf("roster after leave: contains=%v len=%d", r.Contains("a"), r.Len())
	}
}

func TestRosterIsEnough(t *testing.T) {
	r := NewRoster(3)
	for i, id := range []string{"a", "b", "c"} {
		if r.IsEnough() {
			t.Fatalf("IsEnough true with %d players", i)
		}
		r.Toggle(models.Player{ID: id, Name: id})
	}
	if !r.IsEnough() {
		t.Fatal("IsEnough false with 3 players and minimum 3")
	}
}

func TestRosterPlayersSorted(t *testing.T) {
	r := NewRoster(2)
	r.Toggle(models.Player{ID: "3", Name: "carol"})
	r.Toggle(models.Player{ID: "1", Name: "Alice"})
	r.Toggle(models.Player{ID: "2", Name: "bob"})

	got := r.Players()
	want := []string{"Alice", "bob", "carol"}
	for i, p := range got {
		if p.Name != want[i] {
			t.Errorf("Players()[%d] = %s, want %s", i, p.Name, want[i])
		}
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len after Reset = %d", r.Len())
	}
}
