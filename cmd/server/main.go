package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/logging"
	"github.com/iudanet/gophsync/internal/server"
	"github.com/iudanet/gophsync/internal/server/jwt"
	"github.com/iudanet/gophsync/internal/server/storage/sqlite"
	"github.com/iudanet/gophsync/pkg/api"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to config file")
	mintKey := flag.Bool("mint-key", false, "Print a new API key and exit")
	role := flag.String("role", api.RoleAnon, "Role of the minted key (anon, service_role)")
	ttl := flag.Duration("ttl", 0, "Lifetime of the minted key, 0 = never expires")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	keys, err := jwt.NewService(cfg.JWTSecret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init keys: %v\n", err)
		os.Exit(1)
	}

	if *mintKey {
		key, err := keys.Issue(*role, *ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to mint key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(key)
		os.Exit(0)
	}

	if err := run(cfg, keys); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Server, keys *jwt.Service) error {
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = closer.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("GophSync server starting", "version", Version, "db", cfg.DBPath)

	store, err := sqlite.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	srv := server.New(server.Config{
		Addr:       cfg.Addr,
		RateLimit:  cfg.RateLimit,
		RateWindow: cfg.RateWindow,
	}, store, keys, logger)

	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("GophSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
