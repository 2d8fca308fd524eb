// Package cli implements the gophsync client commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophsync/internal/client/iocli"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/logging"
)

// ErrNotConfigured is returned by commands that need a backend when none is configured.
var ErrNotConfigured = errors.New("sync backend is not configured")

// VersionInfo is set via ldflags during build.
type VersionInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Cli holds the state shared by all commands of one invocation.
type Cli struct {
	io         iocli.IO
	app        *App
	loader     *config.ClientLoader
	cfg        *config.Client
	logger     *slog.Logger
	logCloser  io.Closer
	info       VersionInfo
	configPath string
	jsonOutput bool
}

// New creates a Cli writing to out.
func New(out iocli.IO, info VersionInfo) *Cli {
	return &Cli{io: out, info: info}
}

// setup loads the configuration, the logger and the local stores.
func (c *Cli) setup(cmd *cobra.Command, args []string) error {
	loader, err := config.NewClientLoader(c.configPath)
	if err != nil {
		return err
	}
	cfg, err := loader.Config()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	app, err := Open(cmd.Context(), cfg, logger)
	if err != nil {
		_ = closer.Close()
		return err
	}

	c.loader = loader
	c.cfg = cfg
	c.logger = logger
	c.logCloser = closer
	c.app = app
	return nil
}

// teardown releases what setup opened. Safe to call without setup.
func (c *Cli) teardown() error {
	var errs []error
	if c.app != nil {
		errs = append(errs, c.app.Close())
		c.app = nil
	}
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
		c.logCloser = nil
	}
	return errors.Join(errs...)
}
