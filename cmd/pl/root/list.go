package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/engine"
	"planloop/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's plan and completed work",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := store.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconPlan, "Plan — "+st.CurrentDay.ID))
			if len(st.CurrentDay.PlanItems) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			}
			for _, it := range st.CurrentDay.PlanItems {
				pre := ""
				if it.WasPrePlanned {
					pre = " " + ui.Muted.Render("[pre-planned]")
				}
				fmt.Fprintf(out, "- %s #%d-%s: %s %s%s\n",
					ui.Dim.Render(shortID(it.ID)), it.Priority, ui.QualityText(string(it.Quality)),
					it.Description, ui.Muted.Render(fmt.Sprintf("(est %dm)", int(it.EstimatedMinutes))), pre)
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Heading(ui.IconDone, "Fact"))
			if len(st.CurrentDay.FactItems) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			}
			for _, it := range st.CurrentDay.FactItems {
				dur := engine.Minutes(0)
				if it.ActualDuration != nil {
					dur = *it.ActualDuration
				}
				fmt.Fprintf(out, "- %s (%dm, %s) %s\n",
					it.Description, int(dur), ui.PureText(it.TimeQuality == engine.TimePure),
					ui.Gold.Render(fmt.Sprintf("+%d XP", it.XPValue)))
			}
			return nil
		},
	}

	return cmd
}
