package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/engine"
	"planloop/internal/ui"
)

func newRepeatCmd() *cobra.Command {
	var spent string

	cmd := &cobra.Command{
		Use:   "repeat <id>",
		Short: "Re-queue a failed plan item, growing its estimate by the time already spent",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			it, err := findPlanItem(store, args[0])
			if err != nil {
				return err
			}

			repeated, ok := store.RepeatPlanItem(it.ID, engine.ParseMinutes(spent))
			if !ok {
				return fmt.Errorf("plan item %s not found", shortID(it.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s re-queued %q (est %dm, %s)\n",
				ui.IconPlus, repeated.Description, int(repeated.EstimatedMinutes), shortID(repeated.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&spent, "spent", "s", "0", "Minutes already spent on the failed attempt")

	return cmd
}
