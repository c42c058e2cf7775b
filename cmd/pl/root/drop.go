package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/ui"
)

func newDropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <id>",
		Short: "Remove a plan item without completing it",
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
			store.RemovePlanItem(it.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s dropped %q\n", ui.IconWarn, it.Description)
			return nil
		},
	}

	return cmd
}
