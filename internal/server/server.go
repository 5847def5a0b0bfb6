// Package server exposes the control operations over HTTP, pushes state
// notifications over server-sent events and serves prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/control"
	"github.com/victortrac/stashclicker/internal/macro"
	"github.com/victortrac/stashclicker/internal/tracker"
)

const shutdownTimeout = 2 * time.Second

// Controller is the set of operations the server exposes.
type Controller interface {
	ToggleAutoclick() bool
	UpdateClickerConfig(s clicker.Settings) control.ClickerState
	GetClickerState() control.ClickerState
	CapturePosition(ctx context.Context) (x, y int, err error)
	UpdateMacroConfig(s macro.Settings) macro.Config
	GetMacroConfig() macro.Config
	Subscribe() (<-chan control.ClickerStateChanged, func())
	Notify()
}

// StatsSource reports activity history.
type StatsSource interface {
	GetStats(timeRange string) tracker.Stats
}

type Server struct {
	ctrl   Controller
	stats  StatsSource
	logger *slog.Logger
	mux    *http.ServeMux
}

// New builds the server. stats may be nil when history is disabled.
func New(ctrl Controller, stats StatsSource, logger *slog.Logger) *Server {
	s := &Server{ctrl: ctrl, stats: stats, logger: logger, mux: http.NewServeMux()}
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.registerAPI()
	s.registerDashboard()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Listen opens the listening socket so callers learn the bound address
// before serving starts.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return ln, nil
}

// Serve serves on ln until ctx is done. Request contexts derive from ctx,
// so open event streams end with it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Starting server", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// URL returns the settings page address for a listener.
func URL(ln net.Listener) string {
	host, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		return "http://" + ln.Addr().String() + "/"
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
