// whereim is a location-based mini-game: cars spawn around the spot you are
// looking at and drive toward a star at its center.
//
// Usage:
//
//	whereim play     - Play in this terminal
//	whereim serve    - Start SSH server for remote play
//	whereim feed     - Serve the game over HTTP and websocket
//	whereim config   - Print the effective configuration
//	whereim state    - List saved screens
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.whereim/configs, ./configs)
//	--difficulty <name>  - Preset: easy, normal, hard
//	--seed <value>       - RNG seed for reproducible spawns
//	--db <path>          - App-state database path
//	--lat/--lon <deg>    - Starting location
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagLat        float64
	flagLon        float64
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whereim",
	Short: "Where I'm - cars converge on your location",
	Long: `Where I'm shows a map around your location with a star at its center.
Start a game and a wave of cars spawns nearby and drives toward the star.
Every new game adds one more car.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  feed     - Serve the game over HTTP and websocket
  config   - Print the effective configuration
  state    - List saved screens

Examples:
  whereim play
  whereim play --difficulty hard --lat 48.8584 --lon 2.2945
  whereim serve --ssh :2222
  whereim feed --http :8090
  whereim config > ~/.whereim/configs/whereim.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to app-state database (default from config)")
	rootCmd.PersistentFlags().Float64Var(&flagLat, "lat", 0, "Starting latitude (default from config)")
	rootCmd.PersistentFlags().Float64Var(&flagLon, "lon", 0, "Starting longitude (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(stateCmd)
}
