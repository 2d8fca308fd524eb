package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newGetCommand() *cobra.Command {
	var includeDeleted bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show full item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGet(cmd.Context(), args[0], includeDeleted)
		},
	}
	cmd.Flags().BoolVar(&includeDeleted, "all", false, "show the item even if it is deleted")

	return cmd
}

func (c *Cli) runGet(ctx context.Context, id string, includeDeleted bool) error {
	item, found, err := c.app.Items().FindByID(ctx, id, includeDeleted)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if !found {
		return fmt.Errorf("item not found with ID: %s", id)
	}

	return c.render(itemTmpl, item)
}
