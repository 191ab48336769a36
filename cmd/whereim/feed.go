package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whereim/internal/feed"
	"github.com/vovakirdan/whereim/internal/game"
	"github.com/vovakirdan/whereim/internal/viewer"
)

var (
	flagHTTPAddr  string
	flagAutoStart bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Serve the game over HTTP and websocket",
	Long: `Run a headless game and serve it to external renderers.

Endpoints:
  GET  /api/state     - Current view as JSON
  POST /api/start     - Start a game, optional {"center":{"lat":..,"lon":..}} body
  POST /api/stop      - End the running game
  POST /api/viewport  - Move the viewer before a game
  GET  /ws            - Websocket stream of start/tick/stop events
  GET  /metrics       - Prometheus metrics
  GET  /healthz       - Liveness probe

Examples:
  whereim feed
  whereim feed --http :9000 --start
  curl -X POST localhost:8090/api/start`,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config)")
	feedCmd.Flags().BoolVar(&flagAutoStart, "start", false, "Start a game immediately")
}

func runFeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger("whereim-feed", false)
	if err != nil {
		return err
	}
	defer closeLog()

	addr := cfg.Server.HTTPAddress
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	ctrl, err := game.New(cfg, nil, flagSeed)
	if err != nil {
		return err
	}
	defer ctrl.End()

	srv, err := feed.NewServer(ctrl, feed.Options{Address: addr, Logger: logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := viewer.NewProvider(cfg.Location, flagSeed)
	if err != nil {
		return err
	}
	go viewer.Follow(ctx, provider, ctrl.Tracker(), srv.NotifyViewport)

	if flagAutoStart {
		if err := ctrl.Start(); err != nil {
			return err
		}
		logger.Info("game started", "level", ctrl.Session().Level())
	}

	fmt.Printf("Serving whereim feed on %s\n", addr)
	return srv.ListenAndServe(ctx)
}
