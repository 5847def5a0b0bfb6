package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/control"
	"github.com/victortrac/stashclicker/internal/macro"
)

type toggleResponse struct {
	Running bool `json:"running"`
}

type positionResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) registerAPI() {
	s.mux.HandleFunc("POST /api/clicker/toggle", func(w http.ResponseWriter, r *http.Request) {
		running := s.ctrl.ToggleAutoclick()
		s.ctrl.Notify()
		writeJSON(w, toggleResponse{Running: running})
	})

	s.mux.HandleFunc("GET /api/clicker/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.ctrl.GetClickerState())
	})

	s.mux.HandleFunc("PUT /api/clicker/config", func(w http.ResponseWriter, r *http.Request) {
		var settings clicker.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, fmt.Sprintf("decode clicker settings: %v", err), http.StatusBadRequest)
			return
		}
		writeJSON(w, s.ctrl.UpdateClickerConfig(settings))
	})

	s.mux.HandleFunc("POST /api/capture", func(w http.ResponseWriter, r *http.Request) {
		x, y, err := s.ctrl.CapturePosition(r.Context())
		if err != nil {
			// The client went away; nobody is left to answer.
			s.logger.Debug("Position capture cancelled", "err", err)
			return
		}
		writeJSON(w, positionResponse{X: x, Y: y})
	})

	s.mux.HandleFunc("GET /api/macro/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.ctrl.GetMacroConfig().Settings())
	})

	s.mux.HandleFunc("PUT /api/macro/config", func(w http.ResponseWriter, r *http.Request) {
		var settings macro.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, fmt.Sprintf("decode macro settings: %v", err), http.StatusBadRequest)
			return
		}
		writeJSON(w, s.ctrl.UpdateMacroConfig(settings).Settings())
	})

	s.mux.HandleFunc("GET /api/events", s.serveEvents)
}

// serveEvents streams state notifications until the client disconnects.
func (s *Server) serveEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	events, cancel := s.ctrl.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("Failed to encode state notification", "err", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", control.EventStateChanged, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
