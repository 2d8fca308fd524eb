package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDelete(cmd.Context(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (c *Cli) runDelete(ctx context.Context, id string, yes bool) error {
	item, found, err := c.app.Items().FindByID(ctx, id, false)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if !found {
		return fmt.Errorf("item not found with ID: %s", id)
	}

	if !yes {
		c.io.Println("About to delete:")
		c.io.Printf("  Title: %s\n", item.Title)
		c.io.Printf("  ID:    %s\n", item.ID)
		c.io.Println()

		// Запрашиваем подтверждение
		confirm, err := c.io.ReadInput("Are you sure you want to delete this item? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm != "yes" && confirm != "y" {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	deleted, err := c.app.Items().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if !deleted {
		return fmt.Errorf("item not found with ID: %s", id)
	}

	c.io.Println("✓ Item deleted.")
	c.io.Println("Note: This is a soft delete. Run 'gophsync sync' to propagate it.")
	return nil
}

func (c *Cli) newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a deleted item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRestore(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) runRestore(ctx context.Context, id string) error {
	item, found, err := c.app.Items().Restore(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to restore item: %w", err)
	}
	if !found {
		return fmt.Errorf("item not found with ID: %s", id)
	}

	c.io.Printf("✓ Item restored: %s\n", item.Title)
	return nil
}
