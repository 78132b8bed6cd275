package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/store"
)

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestInspect(t *testing.T) {
	st := store.NewMemoryStore()
	snap := &models.Snapshot{
		ChatID: "c1",
		State:  models.StatePlaying,
		Roster: []models.Player{{ID: "a", Name: "Alice"}},
	}
	if err := st.Save(context.Background(), "c1", snap); err != nil {
		t.Fatal(err)
	}

	cmd, buf := testCommand()
	if err := inspect(cmd, st, "c1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"state": "playing"`) || !strings.Contains(buf.String(), "Alice") {
		t.Errorf("output = %s", buf)
	}

	inspectDiag = true
	defer func() { inspectDiag = false }()
	cmd, buf = testCommand()
	if err := inspect(cmd, st, "c1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"Alice"`) || !strings.Contains(buf.String(), "{") {
		t.Errorf("diag output = %s", buf)
	}
}

func TestInspectMissing(t *testing.T) {
	cmd, _ := testCommand()
	err := inspect(cmd, store.NewMemoryStore(), "nobody")
	if err == nil || !strings.Contains(err.Error(), "nobody") {
		t.Errorf("err = %v", err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "inspect": false, "locations": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}
