package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"planloop/internal/engine"
	"planloop/internal/ui"
)

func newAddCmd() *cobra.Command {
	var quality string
	var priority int
	var estimate string
	var timeType string
	var project string
	var date string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a plan item (or pre-plan one with --date)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("description is required")
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

			in := engine.ItemInput{
				Description:      args[0],
				TimeType:         engine.ParseTimeType(timeType),
				Quality:          engine.ParseQuality(quality),
				Priority:         engine.ClampPriority(priority),
				EstimatedMinutes: engine.ParseMinutes(estimate),
				ProjectID:        project,
			}

			var it engine.Item
			if date != "" {
				planned, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", date)
				}
				it = store.AddPrePlanItem(in, planned)
				fmt.Fprintf(cmd.OutOrStdout(), "%s pre-planned %q for %s (%s)\n", ui.IconCalen, it.Description, date, shortID(it.ID))
				return nil
			}

			it = store.AddPlanItem(in)
			fmt.Fprintf(cmd.OutOrStdout(), "%s added %q to today's plan (%s)\n", ui.IconPlus, it.Description, shortID(it.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "C", "Task quality (A|B|C|D)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 5, "Priority 1-10 (1 = highest)")
	cmd.Flags().StringVarP(&estimate, "estimate", "e", "30", "Estimated minutes")
	cmd.Flags().StringVarP(&timeType, "type", "t", "to-goal", "Time type (to-goal|to-time)")
	cmd.Flags().StringVar(&project, "project", "", "Owning project id")
	cmd.Flags().StringVar(&date, "date", "", "Pre-plan for a date (YYYY-MM-DD)")

	return cmd
}
