package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/models"
)

func (c *Cli) newConflictsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items in conflict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConflictsList(cmd.Context())
		},
	}
}

func (c *Cli) runConflictsList(ctx context.Context) error {
	items, err := c.app.Items().FindConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return c.render(conflictsListTmpl, items)
}

func (c *Cli) newKeepLocalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keep-local <id>",
		Short: "Resolve a conflict with the local version",
		Long: `Keep-local marks the item pending with a fresh updatedAt, so the local
version wins on the next sync.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runKeepLocal(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) runKeepLocal(ctx context.Context, id string) error {
	items := c.app.Items()

	item, found, err := items.FindByID(ctx, id, true)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if !found {
		return fmt.Errorf("item not found with ID: %s", id)
	}
	if item.SyncStatus != models.SyncStatusConflict {
		return fmt.Errorf("item %s is not in conflict (status %s)", id, item.SyncStatus)
	}

	if item.IsDeleted() {
		// Удаление тоже локальная версия: повторно помечаем удалённой
		_, _, err = items.Restore(ctx, id)
		if err == nil {
			_, err = items.Delete(ctx, id)
		}
	} else {
		_, _, err = items.Update(ctx, id, map[string]any{})
	}
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}

	c.io.Printf("✓ Local version of %s will be pushed on the next sync.\n", id)
	return nil
}
