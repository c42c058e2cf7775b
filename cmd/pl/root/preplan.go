package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"planloop/internal/ui"
)

func newPreplanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preplan [date]",
		Short: "Show pre-planned items for a date (default today)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one date")
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

			date := store.Snapshot().CurrentDay.Date
			if len(args) == 1 {
				date, err = time.ParseInLocation("2006-01-02", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", args[0])
				}
			}

			items := store.PrePlannedItems(date)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalen, "Planned — "+date.Format("2006-01-02")))
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing planned)"))
				return nil
			}
			for _, it := range items {
				state := ui.Muted.Render("pending")
				if it.Completed {
					state = ui.Good.Render("done")
				}
				fmt.Fprintf(out, "- #%d-%s: %s %s %s\n",
					it.Priority, ui.QualityText(string(it.Quality)), it.Description,
					ui.Muted.Render(fmt.Sprintf("(est %dm)", int(it.EstimatedMinutes))), state)
			}
			return nil
		},
	}

	return cmd
}
