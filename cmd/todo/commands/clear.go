package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item",
		Long:  `Delete every item from the list. Ids are not reused afterwards.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if err := a.items.ClearAll(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all items.")
			return nil
		},
	}

	return cmd
}
