package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronzipp/spyfall-chat/internal/render"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the configured candidate locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pool, err := cfg.Locations()
		if err != nil {
			return fmt.Errorf("loading locations: %w", err)
		}
		fmt.Fprint(out(cmd), render.NumberedList(pool))
		return nil
	},
}
