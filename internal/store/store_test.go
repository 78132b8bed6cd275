package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

func sampleSnapshot() *models.Snapshot {
	alice := models.Player{ID: "a", Name: "Alice"}
	bob := models.Player{ID: "b", Name: "Bob"}
	return &models.Snapshot{
		ChatID:          "chat-1",
		State:           models.StateRevealing,
		Roster:          []models.Player{alice, bob},
		TurnOrder:       []models.Player{bob, alice},
		Numbering:       map[int]models.Player{1: bob, 2: alice},
		Spies:           []models.Player{alice},
		Location:        "Beach",
		CurrentSlot:     2,
		IsQuestionPhase: true,
		Votes:           map[int]int{1: 1},
		RevealedSpy:     &alice,
		UpdatedAt:       time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC),
	}
}

func TestCodecDeterministic(t *testing.T) {
	a, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Encode(sampleSnapshot())
	if string(a) != string(b) {
		t.Error("encoding is not deterministic")
	}

	snap, err := Decode(a)
	if err != nil {
		t.Fatal(err)
	}
	if snap.State != models.StateRevealing || snap.Numbering[2].Name != "Alice" || snap.RevealedSpy == nil {
		t.Errorf("decoded snapshot = %+v", snap)
	}
	if !snap.UpdatedAt.Equal(sampleSnapshot().UpdatedAt) {
		t.Errorf("UpdatedAt = %v", snap.UpdatedAt)
	}

	diag, err := Diagnose(a)
	if err != nil || !strings.Contains(diag, `"Beach"`) {
		t.Errorf("Diagnose = %q, %v", diag, err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, err := s.Load(ctx, "chat-1"); ok || err != nil {
		t.Fatalf("empty Load = %v, %v", ok, err)
	}
	if err := s.Save(ctx, "chat-1", sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	first, ok, err := s.Load(ctx, "chat-1")
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	first.Numbering[1] = models.Player{ID: "x"}
	second, _, _ := s.Load(ctx, "chat-1")
	if second.Numbering[1].ID != "b" {
		t.Error("Load returned aliased state")
	}

	if keys := s.Keys(); len(keys) != 1 || keys[0] != "chat-1" {
		t.Errorf("Keys = %v", keys)
	}
	if err := s.Clear(ctx, "chat-1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Load(ctx, "chat-1"); ok {
		t.Error("snapshot survived Clear")
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Config{Driver: DriverMemory})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(memory) = %T", s)
	}
	if _, err := Open(context.Background(), Config{Driver: "etcd"}); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestRedisKey(t *testing.T) {
	s := newRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), RedisConfig{Prefix: "spyfall"})
	defer s.Close()
	if got := s.keyFor("chat-1"); got != "spyfall:session:chat-1" {
		t.Errorf("keyFor = %q", got)
	}
}
