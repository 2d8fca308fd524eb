package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/models"
	"github.com/iudanet/gophsync/internal/validation"
)

type addOptions struct {
	title    string
	content  string
	priority int64
}

func (c *Cli) newAddCommand() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		Long: `Add stores a new item locally with status pending. It is pushed on
the next sync. Without --title the title is read from the terminal.

Example:
  gophsync items add --title "Buy milk" --priority 2
  gophsync items add --title "Notes" --content "first line"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "item title")
	cmd.Flags().StringVar(&opts.content, "content", "", "item content")
	cmd.Flags().Int64Var(&opts.priority, "priority", 0, "item priority")

	return cmd
}

func (c *Cli) runAdd(ctx context.Context, opts addOptions) error {
	title := opts.title
	if title == "" {
		var err error
		title, err = c.io.ReadInput("Title: ")
		if err != nil {
			return fmt.Errorf("failed to read title: %w", err)
		}
	}
	if err := validation.ValidateTitle(title); err != nil {
		return err
	}

	item, err := c.app.Items().Create(ctx, models.Item{
		Title:    title,
		Content:  opts.content,
		Priority: opts.priority,
	})
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	if c.jsonOutput {
		return c.render(itemTmpl, item)
	}
	c.io.Printf("✓ Item created: %s\n", item.ID)
	c.io.Println("Run 'gophsync sync' to push it to the backend.")
	return nil
}
