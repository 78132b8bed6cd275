package render

import (
	"strings"
	"testing"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

func TestText(t *testing.T) {
	alice := models.Seat{Slot: 1, Player: models.Player{ID: "a", Name: "Alice"}}
	bob := models.Seat{Slot: 3, Player: models.Player{ID: "b", Name: "Bob"}}

	tests := []struct {
		name string
		n    models.Notice
		want []string
	}{
		{
			"question turn",
			models.Notice{Kind: models.NoticeQuestionTurn, Actor: &alice, Target: &bob},
			[]string{"1. Alice asks 3. Bob"},
		},
		{
			"worker role",
			models.Notice{Kind: models.NoticeRole, Location: "Bank"},
			[]string{"worker", "Bank"},
		},
		{
			"spy role hides location",
			models.Notice{Kind: models.NoticeRole, IsSpy: true},
			[]string{"spy"},
		},
		{
			"headcount",
			models.Notice{Kind: models.NoticeHeadcount, Seats: []models.Seat{alice, bob}, Workers: 1, Spies: 1},
			[]string{"1. Alice\n3. Bob", "Workers: 1", "Spies: 1"},
		},
		{
			"locations",
			models.Notice{Kind: models.NoticeLocations, Locations: []string{"Beach", "Bank"}},
			[]string{"1. Beach\n2. Bank"},
		},
		{
			"draw lists spies",
			models.Notice{Kind: models.NoticeDraw, Players: []models.Player{alice.Player, bob.Player}},
			[]string{"Alice, Bob"},
		},
		{
			"registration roster",
			models.Notice{Kind: models.NoticeRegistrationUpdated, Minimum: 4, Players: []models.Player{bob.Player}},
			[]string{"At least 4", "Already joined: 1", "Bob"},
		},
		{
			"ejected spy",
			models.Notice{Kind: models.NoticeEjected, Target: &bob, IsSpy: true},
			[]string{"3. Bob was a spy!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.n)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Text() = %q, missing %q", got, w)
				}
			}
		})
	}

	if got := Text(models.Notice{Kind: models.NoticeRole, IsSpy: true, Location: "Bank"}); strings.Contains(got, "Bank") {
		t.Error("spy role text leaks the location")
	}
}

func TestHTMLEscapesAndRendersChoices(t *testing.T) {
	seat := models.Seat{Slot: 2, Player: models.Player{ID: "x", Name: "<script>"}}
	n := models.Notice{
		Kind:    models.NoticeVotingOpened,
		Actor:   &seat,
		Choices: []models.Choice{{Label: "2. <script>", Action: "vote", Value: "2"}},
	}
	got := HTML("chat-1", "ref-1", n)

	if strings.Contains(got, "<script>") {
		t.Errorf("unescaped name in %q", got)
	}
	for _, want := range []string{`hx-post="/chats/chat-1/actions/vote"`, `name="value" value="2"`, `id="msg-ref-1"`} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() missing %q in %q", want, got)
		}
	}
}
