package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planloop/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "pl",
	Short:         "Planloop — daily plan tracker with XP progression",
	Long:          "Planloop is a local-first daily task tracker: plan tasks, execute them against a timer, and earn XP toward levels, streaks, and records.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newDropCmd(),
		newRepeatCmd(),
		newPreplanCmd(),
		newStatusCmd(),
		newReflectCmd(),
		newDayCmd(),
		newProjectsCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
