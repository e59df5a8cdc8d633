package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The viewer UI is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleReplay streams the frames of one archived episode over a
// websocket at a fixed tick rate.
//
//	/ws/replay?run={id}&episode={n}&interval_ms={ms}
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	if runID == "" {
		http.Error(w, "missing run", http.StatusBadRequest)
		return
	}
	episode := parseInt64Query(r, "episode", 0)
	interval := time.Duration(parseIntQuery(r, "interval_ms", 100)) * time.Millisecond
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	db, err := s.dbCache.Get()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	frames, err := queryEpisodeTurns(r.Context(), db, runID, episode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(frames) == 0 {
		http.NotFound(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	// Drain reads so close frames from the client are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, frame := range frames {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(frame); err != nil {
			log.Printf("replay write failed: %v", err)
			return
		}
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "episode over"),
		time.Now().Add(time.Second),
	)
}
