package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planloop/internal/ui"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List project ledgers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			selected := store.SelectedProject()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Projects"))
			for _, p := range store.Projects() {
				marker := " "
				if p.ID == selected {
					marker = ">"
				}
				fmt.Fprintf(out, "%s %s %s — lvl %d, %d XP (next at %d)\n",
					marker, ui.Dim.Render(shortID(p.ID)), p.Name, p.CurrentLevel, p.CurrentXP, p.NextLevelXP)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			p := store.AddProject(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s project %q created (%s)\n", ui.IconPlus, p.Name, shortID(p.ID))
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project (reserved projects cannot be deleted)",
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

			id, err := resolveProject(store, args[0])
			if err != nil {
				return err
			}
			store.DeleteProject(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s project %s deleted\n", ui.IconWarn, shortID(id))
			return nil
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Select the active project",
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

			id, err := resolveProject(store, args[0])
			if err != nil {
				return err
			}
			store.SelectProject(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s selected %s\n", ui.IconDone, shortID(id))
			return nil
		},
	}

	cmd.AddCommand(addCmd, rmCmd, selectCmd)
	return cmd
}
