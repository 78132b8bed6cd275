// Package cli defines the spyfall command line: the server and the
// operator tools that read its configuration and stored sessions.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronzipp/spyfall-chat/internal/config"
)

var (
	configFile string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "spyfall",
	Short: "Spyfall game sessions for group chats",
	Long: `Spyfall runs one social-deduction game per chat: registration,
role assignment, question turns, votes and reveals, delivered over HTTP,
Server-Sent Events and WebSocket.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default config/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(locationsCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
