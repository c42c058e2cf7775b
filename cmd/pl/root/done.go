package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/engine"
	"planloop/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var minutes string
	var pure bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a plan item and collect its XP",
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

			actual := engine.ParseMinutes(minutes)
			if minutes == "" {
				actual = it.EstimatedMinutes
			}
			tq := engine.TimeNotPure
			if pure {
				tq = engine.TimePure
			}

			res, ok := store.CompletePlanItem(it.ID, actual, tq)
			if !ok {
				return fmt.Errorf("plan item %s not found", shortID(it.ID))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %q done: %s\n", ui.IconDone, res.Item.Description, ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s — level %d → %d\n", ui.IconSparkle, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			if res.TaskRecord {
				fmt.Fprintf(out, "%s new highest-task XP record!\n", ui.IconTrophy)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&minutes, "minutes", "m", "", "Actual minutes spent (defaults to the estimate)")
	cmd.Flags().BoolVar(&pure, "pure", false, "Executed without pausing the timer")

	return cmd
}
