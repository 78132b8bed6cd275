package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronzipp/spyfall-chat/internal/store"
)

var inspectDiag bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <chat-id>",
	Short: "Print the stored session of a chat",
	Long: `Load the snapshot of one chat from the configured store and print it
as JSON. With --diag the stored CBOR is printed in diagnostic notation.

The memory store lives inside the server process, so inspect only finds
sessions when store.driver is redis.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectDiag, "diag", false, "print the encoded snapshot in CBOR diagnostic notation")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	defer st.Close()

	return inspect(cmd, st, args[0])
}

func inspect(cmd *cobra.Command, st store.Store, chatID string) error {
	ctx := cmd.Context()
	snap, ok, err := st.Load(ctx, chatID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if !ok {
		return fmt.Errorf("no session stored for chat %s", chatID)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out(cmd), string(data))

	if !inspectDiag {
		return nil
	}
	raw, _, err := st.Raw(ctx, chatID)
	if err != nil {
		return fmt.Errorf("loading raw session: %w", err)
	}
	diag, err := store.Diagnose(raw)
	if err != nil {
		return fmt.Errorf("diagnosing: %w", err)
	}
	fmt.Fprintln(out(cmd), diag)
	return nil
}
