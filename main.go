package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/getlantern/systray"
	"github.com/urfave/cli/v2"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/config"
	"github.com/victortrac/stashclicker/internal/control"
	"github.com/victortrac/stashclicker/internal/coordinator"
	"github.com/victortrac/stashclicker/internal/hook"
	"github.com/victortrac/stashclicker/internal/inject"
	"github.com/victortrac/stashclicker/internal/macro"
	"github.com/victortrac/stashclicker/internal/server"
	"github.com/victortrac/stashclicker/internal/tracker"
	"github.com/victortrac/stashclicker/internal/ui"
	"github.com/victortrac/stashclicker/internal/ui/desktop"
)

// The settings window and the tray both need the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:  "stashclicker",
		Usage: "autoclicker and stash/quick-use macros driven by global hotkeys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "address of the settings and metrics server",
				Value: "127.0.0.1:2112",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "input source: gohook or evdev (linux only)",
				Value: "gohook",
			},
			&cli.StringFlag{
				Name:    "defaults",
				Aliases: []string{"d"},
				Usage:   "YAML file with startup defaults (read only)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory for the activity history database (default $XDG_DATA_HOME/stashclicker)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "run without the settings window and tray",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "stashclicker:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, err := config.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, level)

	defaults, err := config.LoadDefaults(c.String("defaults"))
	if err != nil {
		return err
	}

	dataDir := c.String("data-dir")
	if dataDir == "" {
		if dataDir, err = tracker.DefaultDataDir(); err != nil {
			return err
		}
	}
	tr, err := tracker.Open(dataDir, logger)
	if err != nil {
		return err
	}
	defer tr.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The final flush must finish before the deferred Close.
	trDone := make(chan struct{})
	go func() {
		defer close(trDone)
		tr.Run(ctx)
	}()
	defer func() {
		stop()
		<-trDone
	}()

	dev := hook.NewDevice()
	switch source := c.String("source"); source {
	case "gohook":
		go hook.RunGohook(ctx, dev, logger)
	case "evdev":
		go func() {
			if err := hook.RunEvdev(ctx, dev, logger); err != nil {
				logger.Error("Input hook failed", "err", err)
				stop()
			}
		}()
	default:
		return fmt.Errorf("unknown input source %q", source)
	}

	injector := inject.New(logger)
	clickerStore := clicker.NewStore(defaults.Clicker)
	macroStore := macro.NewStore(defaults.Macro)
	flag := &macro.ActiveFlag{}

	engine := clicker.NewEngine(clickerStore, flag, injector, logger)
	engine.Recorder = tr
	runner := macro.NewRunner(injector, logger)
	runner.Recorder = tr

	broker := control.NewBroker(logger)
	ctrl := control.New(clickerStore, macroStore, dev, broker, logger)
	ctrl.Gauge = tr
	tr.SetEnabled(clickerStore.Snapshot().Enabled)

	ln, err := server.Listen(c.String("addr"))
	if err != nil {
		return err
	}
	srv := server.New(ctrl, tr, logger)
	go func() {
		if err := srv.Serve(ctx, ln); err != nil {
			logger.Error("Server failed", "err", err)
		}
	}()

	loop := &coordinator.Loop{
		Poller:   dev,
		Clicker:  clickerStore,
		Macros:   macroStore,
		Flag:     flag,
		Runner:   runner,
		Notifier: broker,
		Tracker:  tr,
		Logger:   logger,
	}

	go engine.Run(ctx)

	if c.Bool("headless") {
		go loop.Run(ctx)
		logger.Info("StashClicker started", "ui", false, "settings", server.URL(ln))
		<-ctx.Done()
		logger.Info("StashClicker exiting")
		return nil
	}

	return runDesktop(ctx, loop, ctrl, server.URL(ln), logger)
}

// runDesktop shows the settings window on the main thread and returns when
// it is closed. Closing the window ends the process.
func runDesktop(ctx context.Context, loop *coordinator.Loop, ctrl *control.Controller, url string, logger *slog.Logger) error {
	win, err := desktop.NewWindow(ctx, ctrl, url, logger)
	if err != nil {
		return fmt.Errorf("open settings window: %w", err)
	}
	tray := desktop.NewTray(ctrl, logger)
	toggler := ui.NewToggler(win, tray, logger)
	tray.OnShowWindow = toggler.ShowMain
	tray.OnQuit = win.Quit
	loop.Visibility = toggler

	systray.Register(func() { tray.Ready(ctx) }, func() {})
	go loop.Run(ctx)
	go func() {
		<-ctx.Done()
		win.Quit()
	}()

	logger.Info("StashClicker started", "ui", true, "settings", url)
	win.Run()
	logger.Info("Window closed, exiting")
	return nil
}
