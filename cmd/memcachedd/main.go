package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DaHogie/memcachedImplementation/internal/config"
	"github.com/DaHogie/memcachedImplementation/internal/monitor"
	"github.com/DaHogie/memcachedImplementation/internal/server"
	"github.com/DaHogie/memcachedImplementation/internal/storage"
)

var version = "1.0.0" // set during build with -ldflags

var rootCmd = &cobra.Command{
	Use:   "memcachedd <databaseFile>",
	Short: "A memcached-compatible cache server backed by SQLite",
	Args:  cobra.ExactArgs(1),
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath, err := resolveDatabasePath(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve database path %s: %w", args[0], err)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer store.Close()

	log.Printf("memcachedd v%s starting, database %s, listening on %s", version, dbPath, cfg.ListenAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.ListenAddr, cfg.IdleTimeout, store)

	if cfg.MonitorAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/", monitor.NewHandlerWithStats(store, srv.Stats()))
		monitorSrv := &http.Server{Addr: cfg.MonitorAddr, Handler: mux}
		go func() {
			log.Printf("monitor page listening on %s", cfg.MonitorAddr)
			if err := monitorSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("monitor server: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			monitorSrv.Close()
		}()
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Println("memcachedd stopped")
	return nil
}

// resolveDatabasePath resolves a relative database file argument
// against the executable's directory, not the working directory.
func resolveDatabasePath(arg string) (string, error) {
	if filepath.IsAbs(arg) {
		return arg, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), arg), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("memcachedd v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
