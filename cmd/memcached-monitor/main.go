package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/DaHogie/memcachedImplementation/internal/monitor"
	"github.com/DaHogie/memcachedImplementation/internal/storage"
)

const defaultListenAddr = ":8000"

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <databaseFile> [httpAddr]\n", os.Args[0])
		os.Exit(1)
	}

	dbPath, err := resolveDatabasePath(os.Args[1])
	if err != nil {
		log.Fatalf("failed to resolve database path %s: %v", os.Args[1], err)
	}
	listenAddr := defaultListenAddr
	if len(os.Args) == 3 {
		listenAddr = os.Args[2]
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", dbPath, err)
	}
	defer store.Close()

	http.Handle("/", monitor.NewHandler(store))

	log.Printf("memcached-monitor serving %s on %s", dbPath, listenAddr)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatalf("monitor server: %v", err)
	}
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
