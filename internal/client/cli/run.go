package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/manager"
	"github.com/iudanet/gophsync/internal/client/statusfeed"
	"github.com/iudanet/gophsync/internal/config"
)

// feedShutdownTimeout bounds the graceful stop of the status feed server.
const feedShutdownTimeout = 5 * time.Second

func (c *Cli) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync daemon",
		Long: `Run keeps the client synchronized until interrupted: it follows network
reachability of the backend, syncs on the configured interval, serves the
status feed (WebSocket /ws, /status, /health) on feed_addr and applies edits
of the sync section of the config file without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDaemon(cmd.Context())
		},
	}
}

func (c *Cli) runDaemon(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := c.app.Engine()
	status := manager.NewStatus()
	m := manager.New(engine, c.app.NewBackend, c.reachability(), status, c.app.Changes(), c.logger)

	feed := statusfeed.New(status, c.logger)
	feed.Start(ctx)
	defer feed.Close()

	var srv *http.Server
	if c.cfg.FeedAddr != "" {
		ln, err := net.Listen("tcp", c.cfg.FeedAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", c.cfg.FeedAddr, err)
		}
		srv = &http.Server{
			Handler:           feed.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			c.logger.Info("Status feed listening", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				c.logger.Error("Status feed stopped", "error", err)
			}
		}()
	}

	if err := m.Start(ctx); err != nil {
		if srv != nil {
			_ = srv.Close()
		}
		return err
	}

	if c.loader.Watch(c.logger, func(cfg *config.Client) {
		engine.UpdateConfig(cfg.Sync.Patch())
	}) {
		c.logger.Info("Watching config for changes", "file", c.configPath)
	}

	<-ctx.Done()
	c.logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), feedShutdownTimeout)
	defer cancel()

	var errs []error
	if srv != nil {
		errs = append(errs, srv.Shutdown(shutdownCtx))
	}
	errs = append(errs, m.Shutdown(shutdownCtx))
	return errors.Join(errs...)
}

// reachability probes the backend host. Without a backend, or when the host
// cannot be derived from the URL, the network is assumed to be up.
func (c *Cli) reachability() manager.Reachability {
	bc := c.cfg.Backend
	if !bc.Enabled() {
		return manager.NewStatic(true)
	}

	addr, err := manager.HostPort(bc.URL)
	if err != nil {
		// minio endpoint часто задают как host:port без схемы
		if _, _, splitErr := net.SplitHostPort(bc.URL); splitErr != nil {
			c.logger.Warn("Cannot probe backend, assuming online", "url", bc.URL, "error", err)
			return manager.NewStatic(true)
		}
		addr = bc.URL
	}

	probe := manager.NewProbe(addr, c.logger)
	if c.cfg.ProbeInterval > 0 {
		probe.Interval = c.cfg.ProbeInterval
	}
	return probe
}
