package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/todolist/todolist/pkg/items"
)

func newAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add an item to the list",
		Example: `  todo add Mow the lawn
  todo add "Walk the dog" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			saved, err := a.items.Save(ctx, items.NewItem(strings.Join(args, " ")))
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", saved.ID, saved.Description)
			return nil
		},
	}

	return cmd
}
