package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"planloop/internal/engine"
	"planloop/internal/ui"
)

func newReflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect <text>",
		Short: "Write the day's reflection (+2 XP)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("reflection text is required")
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

			store.SetReflection(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s reflection saved %s\n",
				ui.IconDone, ui.Gold.Render(fmt.Sprintf("+%d XP", engine.ReflectionXP)))
			return nil
		},
	}

	return cmd
}
