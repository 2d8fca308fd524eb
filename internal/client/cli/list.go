package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/storage/sqlite"
	"github.com/iudanet/gophsync/internal/models"
)

type listOptions struct {
	order   string
	limit   int
	offset  int
	all     bool
	pending bool
}

func (c *Cli) newListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Long: `List prints local items, newest first by default.

Example:
  gophsync items list
  gophsync items list --order "priority DESC" --limit 10
  gophsync items list --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.order, "order", sqlite.DefaultOrder, `order as "column [ASC|DESC]"`)
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of items, 0 = no limit")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "number of items to skip")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include deleted items")
	cmd.Flags().BoolVar(&opts.pending, "pending", false, "only items waiting for a push")

	return cmd
}

func (c *Cli) runList(ctx context.Context, opts listOptions) error {
	if opts.limit < 0 || opts.offset < 0 {
		return fmt.Errorf("limit and offset cannot be negative")
	}

	var (
		items []models.Item
		err   error
	)
	if opts.pending {
		items, err = c.app.Items().FindPending(ctx)
	} else {
		items, err = c.app.Items().FindAll(ctx, sqlite.QueryOptions{
			OrderBy:        opts.order,
			Limit:          opts.limit,
			Offset:         opts.offset,
			IncludeDeleted: opts.all,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}

	return c.render(itemsListTmpl, items)
}
