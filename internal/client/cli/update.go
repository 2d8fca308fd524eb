package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/validation"
)

func (c *Cli) newUpdateCommand() *cobra.Command {
	var (
		title    string
		content  string
		priority int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change item fields",
		Long: `Update changes only the fields given as flags and marks the item
pending.

Example:
  gophsync items update 3f0c... --priority 5
  gophsync items update 3f0c... --title "Buy oat milk" --content ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				if err := validation.ValidateTitle(title); err != nil {
					return err
				}
				changes["title"] = title
			}
			if flags.Changed("content") {
				changes["content"] = content
			}
			if flags.Changed("priority") {
				changes["priority"] = priority
			}
			if len(changes) == 0 {
				return fmt.Errorf("nothing to update: use --title, --content or --priority")
			}
			return c.runUpdate(cmd.Context(), args[0], changes)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().Int64Var(&priority, "priority", 0, "new priority")

	return cmd
}

func (c *Cli) runUpdate(ctx context.Context, id string, changes map[string]any) error {
	item, found, err := c.app.Items().Update(ctx, id, changes)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if !found {
		return fmt.Errorf("item not found with ID: %s", id)
	}

	if c.jsonOutput {
		return c.render(itemTmpl, item)
	}
	c.io.Printf("✓ Item updated: %s\n", item.ID)
	return nil
}
