package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whereim/internal/feed"
	"github.com/vovakirdan/whereim/internal/game"
	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/platform/tui"
	"github.com/vovakirdan/whereim/internal/storage"
	"github.com/vovakirdan/whereim/internal/viewer"
)

var flagPlayFeed string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Open the map at your location and play.

Controls:
  Enter/S        - Start game
  X/Esc          - End game
  Arrows/hjkl    - Pan the map (before a game)
  +/-            - Zoom (before a game)
  T              - Toggle car table
  ?              - More keys
  Q/Ctrl+C       - Quit

Examples:
  whereim play
  whereim play --difficulty easy
  whereim play --seed 42
  whereim play --feed :8090    # also stream this game over HTTP`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayFeed, "feed", "", "Also serve this game over HTTP on the given address")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger("whereim", true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open app-state database", "error", err)
	} else {
		defer store.Close()
		if _, err := store.ResetScreens(); err != nil {
			logger.Warn("could not reset screens", "error", err)
		}
	}

	ctrl, err := game.New(cfg, nil, flagSeed)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var onViewport func(geo.Region)
	if flagPlayFeed != "" {
		srv, err := feed.NewServer(ctrl, feed.Options{Address: flagPlayFeed, Logger: logger})
		if err != nil {
			return err
		}
		onViewport = srv.NotifyViewport
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				logger.Error("feed server stopped", "error", err)
			}
		}()
	}

	provider, err := viewer.NewProvider(cfg.Location, flagSeed)
	if err != nil {
		return err
	}
	go viewer.Follow(ctx, provider, ctrl.Tracker(), onViewport)

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return tui.Run(ctrl, tui.Options{
		Owner:  currentUser(),
		Store:  store,
		Logger: logger,
		Width:  width,
		Height: height,
	})
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
