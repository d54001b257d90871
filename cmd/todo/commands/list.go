package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every item",
		Example: `  todo list
  todo list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			all, err := a.items.ListAll(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(out, all)
			}
			if len(all) == 0 {
				fmt.Fprintln(out, "No items.")
				return nil
			}
			for _, item := range all {
				fmt.Fprintf(out, "%d: %s\n", item.ID, item.Description)
			}
			return nil
		},
	}

	return cmd
}
