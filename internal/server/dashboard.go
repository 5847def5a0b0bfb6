package server

import (
	"embed"
	"net/http"
)

//go:embed assets/*.html
var assets embed.FS

// IndexHTML returns the settings page.
func IndexHTML() []byte {
	content, _ := assets.ReadFile("assets/index.html")
	return content
}

func (s *Server) registerDashboard() {
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(IndexHTML())
	})

	s.mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		if s.stats == nil {
			http.Error(w, "activity history disabled", http.StatusNotFound)
			return
		}
		timeRange := r.URL.Query().Get("range")
		if timeRange == "" {
			timeRange = "1h"
		}
		writeJSON(w, s.stats.GetStats(timeRange))
	})
}
