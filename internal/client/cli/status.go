package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/config"
)

// statusView is the local sync state shown by the status command.
type statusView struct {
	Backend   string `json:"backend"`
	LastSync  string `json:"lastSync,omitempty"`
	Items     int    `json:"items"`
	Pending   int    `json:"pending"`
	Conflicts int    `json:"conflicts"`
	Schema    int64  `json:"schemaVersion"`
}

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local sync state",
		Long:  `Status reports pending changes, conflicts and the last sync time without contacting the backend.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	view := statusView{Backend: "none (offline-only)"}

	if c.cfg.Backend.Enabled() {
		view.Backend = fmt.Sprintf("%s %s", c.cfg.Backend.Kind, backendLocation(c.cfg.Backend))

		// Ключ checkpoint совпадает с именем backend
		ts, err := c.app.Checkpoints().GetCheckpoint(ctx, c.cfg.Backend.Kind)
		if err != nil {
			return fmt.Errorf("failed to read last sync time: %w", err)
		}
		if ts != nil {
			view.LastSync = ts.String()
		}
	}

	items := c.app.Items()

	count, err := items.Count(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	view.Items = count

	pending, err := items.FindPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending sync count: %w", err)
	}
	view.Pending = len(pending)

	conflicts, err := items.FindConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get conflicts: %w", err)
	}
	view.Conflicts = len(conflicts)

	view.Schema, err = c.app.Storage().SchemaVersion(ctx)
	if err != nil {
		return err
	}

	return c.render(statusTmpl, view)
}

func backendLocation(b config.Backend) string {
	if b.Kind == config.BackendObjectStore {
		return b.URL + "/" + b.Bucket
	}
	return b.URL
}
