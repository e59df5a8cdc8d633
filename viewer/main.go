package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gridquest/gridquest/store"
)

func main() {
	listen := flag.String("listen", "127.0.0.1:8080", "HTTP listen address")
	dataDirs := flag.String("data-dirs", filepath.Join("data", "episodes"), "Comma-separated directories containing episode parquet batches (episode_turn_v1)")
	dbPath := flag.String("db", filepath.Join("data", "runs.db"), "Path to the run registry database")
	flag.Parse()

	roots := parseDataRoots(*dataDirs)
	if len(roots) == 0 {
		log.Fatal("no data roots configured")
	}
	log.Printf("Viewer data roots: %s", strings.Join(roots, ","))

	var registry *store.DB
	if _, err := os.Stat(*dbPath); err == nil {
		registry, err = store.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open run registry: %v", err)
		}
		defer registry.Close()
	} else {
		log.Printf("Run registry %s not found, /api/runs will be empty", *dbPath)
	}

	server := NewServer(roots, registry)
	defer server.dbCache.Close()

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("Viewer API listening on http://%s", *listen)
	log.Fatal(srv.ListenAndServe())
}

func parseDataRoots(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
