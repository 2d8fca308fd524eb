package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/manager"
	syncengine "github.com/iudanet/gophsync/internal/client/sync"
	"github.com/iudanet/gophsync/internal/models"
)

func (c *Cli) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one push/pull cycle with the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context())
		},
	}
}

// runSync connects, runs exactly one cycle through the manager and
// disconnects. The network is assumed to be up.
func (c *Cli) runSync(ctx context.Context) error {
	engine := c.app.Engine()
	// Разовая синхронизация: таймер не нужен
	autoSync := false
	engine.UpdateConfig(syncengine.ConfigPatch{AutoSync: &autoSync})

	status := manager.NewStatus()
	m := manager.New(engine, c.app.NewBackend, manager.NewStatic(true), status, c.app.Changes(), c.logger)
	if err := m.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := m.Shutdown(ctx); err != nil {
			c.logger.Warn("Failed to shut down sync", "error", err)
		}
	}()

	b := engine.Backend()
	if b == nil {
		return ErrNotConfigured
	}

	snap := status.Snapshot()
	switch {
	case snap.ConnectionState == models.StateError:
		return fmt.Errorf("failed to connect to %s backend", b.Name())
	case snap.LastError != "":
		return fmt.Errorf("synchronization failed: %s", snap.LastError)
	case snap.LastSyncResult == nil:
		return fmt.Errorf("synchronization did not run")
	}

	if err := c.render(syncResultTmpl, snap.LastSyncResult); err != nil {
		return err
	}

	if queued := len(engine.Conflicts()); queued > 0 && !c.jsonOutput {
		c.io.Println()
		c.io.Printf("%d conflict(s) are held for manual resolution. See 'gophsync conflicts list'.\n", queued)
	}
	return nil
}
