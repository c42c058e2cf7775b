package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/engine"
	"planloop/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, records and project ledgers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := store.Stats()
			out := cmd.OutOrStdout()
			toNext := st.NextLevelXP - st.CurrentXP
			if toNext < 0 {
				toNext = 0
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Progression"))
			fmt.Fprintln(out, ui.LabelValue("Level", st.CurrentLevel))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (next at %d, %d to go)", st.CurrentXP, st.NextLevelXP, toNext)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d %s", st.Streak, ui.IconFire)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconClock+" Today"))
			fmt.Fprintf(out, "- XP: %d\n", st.TodayXP)
			fmt.Fprintf(out, "- Minutes: %d (pure %d)\n", st.TodayMinutes, st.TodayPureMinutes)
			fmt.Fprintf(out, "- Plan adherence: %d%%\n", st.PlanAdherence)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Records"))
			fmt.Fprintf(out, "- Best day XP: %d\n", st.BestDayXP)
			fmt.Fprintf(out, "- Most minutes in a day: %d\n", st.BestMinutes)
			fmt.Fprintf(out, "- Most pure minutes in a day: %d\n", st.BestPureMinutes)
			rec := store.Snapshot().Records
			fmt.Fprintf(out, "- Highest task XP: %d\n", rec.HighestTaskXP)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Projects"))
			selected := store.SelectedProject()
			for _, p := range store.Projects() {
				marker := " "
				if p.ID == selected {
					marker = ">"
				}
				fmt.Fprintf(out, "%s %s — lvl %d, %d XP %s\n",
					marker, p.Name, p.CurrentLevel, p.CurrentXP,
					ui.Muted.Render(fmt.Sprintf("(%d tasks)", len(p.TaskIDs))))
			}

			if store.ShouldShowReflection() {
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s daily reflection pending — `pl reflect \"...\"` (+%d XP)\n", ui.IconWarn, engine.ReflectionXP)
			}
			return nil
		},
	}

	return cmd
}
