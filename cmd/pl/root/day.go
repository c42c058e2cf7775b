package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/ui"
)

func newDayCmd() *cobra.Command {
	var yes bool

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new day early (forfeits today's XP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("starting a new day subtracts today's XP from your total; pass --yes to confirm")
			}

			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			before := store.Stats()
			store.TransitionToNewDay(false)
			after := store.Stats()

			fmt.Fprintf(cmd.OutOrStdout(), "%s new day started — forfeited %d XP (level %d → %d)\n",
				ui.IconCalen, before.TodayXP, before.CurrentLevel, after.CurrentLevel)
			return nil
		},
	}
	newCmd.Flags().BoolVar(&yes, "yes", false, "Confirm the XP forfeiture")

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Day lifecycle commands",
	}
	cmd.AddCommand(newCmd)

	return cmd
}
