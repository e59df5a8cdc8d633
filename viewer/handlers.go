package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gridquest/gridquest/store"
)

// Server holds shared state for the HTTP handlers.
type Server struct {
	roots    []string
	registry *store.DB
	dbCache  *DBCache
}

// NewServer creates a Server over the parquet roots and the run
// registry. The registry may be nil when no database exists yet.
func NewServer(roots []string, registry *store.DB) *Server {
	return &Server{
		roots:    roots,
		registry: registry,
		dbCache:  NewDBCache(roots, 30*time.Second),
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/strategies", s.handleStrategies)
	mux.HandleFunc("/api/runs/", s.handleRunDetail)
	mux.HandleFunc("/ws/replay", s.handleReplay)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.registry == nil {
		writeJSON(w, []RunSummary{})
		return
	}

	runs, err := s.registry.ListRuns()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunSummary{
			ID:         run.ID,
			Strategy:   run.Strategy,
			ConfigJSON: run.ConfigJSON,
			Episodes:   run.Episodes,
			MeanScore:  run.MeanScore,
			MinScore:   run.MinScore,
			MaxScore:   run.MaxScore,
			ElapsedMs:  run.ElapsedMs,
			StartedNs:  run.StartedAt.UnixNano(),
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Force a refresh so newly flushed batches show up.
	if err := s.dbCache.Refresh(); err != nil {
		http.Error(w, fmt.Sprintf("failed to refresh db: %v", err), http.StatusInternalServerError)
		return
	}
	db, err := s.dbCache.Get()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats, err := queryStrategies(r.Context(), db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []StrategySummary{}
	}
	writeJSON(w, stats)
}

// handleRunDetail serves:
//
//	/api/runs/{id}/episodes
//	/api/runs/{id}/episodes/{n}/turns
func (s *Server) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	runID, err := url.PathUnescape(parts[0])
	if err != nil {
		http.Error(w, "bad run id", http.StatusBadRequest)
		return
	}

	db, err := s.dbCache.Get()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "episodes":
		episodes, err := queryEpisodes(r.Context(), db, runID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if episodes == nil {
			episodes = []EpisodeSummary{}
		}
		writeJSON(w, EpisodesResponse{RunID: runID, Episodes: episodes})

	case len(parts) == 4 && parts[1] == "episodes" && parts[3] == "turns":
		episode, perr := parseEpisodePart(parts[2])
		if perr != nil {
			http.Error(w, "bad episode number", http.StatusBadRequest)
			return
		}
		turns, err := queryEpisodeTurns(r.Context(), db, runID, episode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(turns) == 0 {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, TurnsResponse{RunID: runID, Episode: episode, Turns: turns})

	default:
		http.NotFound(w, r)
	}
}

func parseEpisodePart(s string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad episode %q", s)
	}
	return n, nil
}
