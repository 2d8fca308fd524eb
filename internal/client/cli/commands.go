package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// Execute runs the command given by args. Stores opened for the command are
// closed even when it fails.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.NewRootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.teardown())
}

// NewRootCommand builds the command tree.
func (c *Cli) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gophsync",
		Short: "Offline-first client with background sync",
		Long: `gophsync keeps items in a local SQLite database and synchronizes them
with a remote backend (REST or S3-compatible object store) when the network
is available.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.io)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (YAML); GOPHSYNC_* env vars override it")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "print results as JSON")

	items := &cobra.Command{
		Use:   "items",
		Short: "Manage local items",
	}
	items.AddCommand(
		c.newAddCommand(),
		c.newListCommand(),
		c.newGetCommand(),
		c.newUpdateCommand(),
		c.newDeleteCommand(),
		c.newRestoreCommand(),
	)

	conflicts := &cobra.Command{
		Use:   "conflicts",
		Short: "Inspect rows held for manual conflict resolution",
	}
	conflicts.AddCommand(
		c.newConflictsListCommand(),
		c.newKeepLocalCommand(),
	)

	root.AddCommand(
		items,
		conflicts,
		c.newSyncCommand(),
		c.newStatusCommand(),
		c.newRunCommand(),
		c.newVersionCommand(),
	)

	return root
}

func (c *Cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Версии не нужны ни конфиг, ни база
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			c.io.Printf("GophSync Client\n")
			c.io.Printf("Version:    %s\n", c.info.Version)
			c.io.Printf("Build Date: %s\n", c.info.BuildDate)
			c.io.Printf("Git Commit: %s\n", c.info.GitCommit)
		},
	}
}
