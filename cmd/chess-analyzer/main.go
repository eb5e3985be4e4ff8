// chess-analyzer reviews chess games and positions with a UCI engine:
// it classifies every move of a game, detects tactical motifs in a
// position, and checks single moves for blunders.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chesskit/analyzer-go/internal/analysis"
	"github.com/chesskit/analyzer-go/internal/config"
	"github.com/chesskit/analyzer-go/internal/uci"
)

const programVersion = "0.1.0"

var (
	configFile string
	enginePath string
	depth      int
	moveTimeMS int
	skillLevel int
	workers    int
	jsonOutput bool
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "chess-analyzer",
		Short:   "Analyze chess games and positions with a UCI engine",
		Version: programVersion,
		Long: `chess-analyzer reviews games and positions.

Examples:
  # Full review of a game
  chess-analyzer analyze game.pgn

  # Tactical motifs in a position
  chess-analyzer tactics "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Was this move a blunder?
  chess-analyzer blunder "<fen>" Qxf7+

  # Review every game in a file, concurrently
  chess-analyzer batch games.pgn --workers 4`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML config file")
	flags.StringVar(&enginePath, "engine", "", "UCI engine binary (default: auto-discover Stockfish)")
	flags.IntVar(&depth, "depth", 0, "search depth per query")
	flags.IntVar(&moveTimeMS, "movetime", 0, "time per query in milliseconds")
	flags.IntVar(&skillLevel, "skill", -1, "engine skill level 0-20")
	flags.IntVar(&workers, "workers", 0, "concurrent game analyses in batch mode")
	flags.BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log engine and analysis events to stderr")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newTacticsCmd())
	root.AddCommand(newBlunderCmd())
	root.AddCommand(newAssessCmd())

	return root
}

// loadConfig merges the config file, defaults, and command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if enginePath != "" {
		cfg.EnginePath = enginePath
	}
	if depth > 0 {
		cfg.Depth = depth
	}
	if moveTimeMS > 0 {
		cfg.MoveTimeMS = moveTimeMS
	}
	if skillLevel >= 0 {
		cfg.SkillLevel = skillLevel
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, cfg.Validate()
}

// newEngine opens one evaluator session from the configuration.
func newEngine(cfg *config.Config) (*uci.Engine, error) {
	path := cfg.EnginePath
	if path == "" {
		found, err := uci.FindEngine()
		if err != nil {
			return nil, fmt.Errorf("%w (install stockfish or pass --engine)", err)
		}
		path = found
	}
	return uci.New(path,
		uci.WithDepth(cfg.Depth),
		uci.WithMoveTime(cfg.MoveTimeMS),
		uci.WithSkillLevel(cfg.SkillLevel),
		uci.WithLogger(newLogger()),
	)
}

func newLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "chess-analyzer: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func analyzerOptions() []analysis.Option {
	return []analysis.Option{analysis.WithLogger(newLogger())}
}

// newSpinner returns a running spinner with the given status line. It is a
// no-op writer in JSON mode so machine output stays clean.
func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	if !jsonOutput {
		s.Start()
	}
	return s
}

// classificationColor maps move grades to display colours.
func classificationColor(c analysis.Classification) *color.Color {
	switch c {
	case analysis.Brilliant:
		return color.New(color.FgHiCyan, color.Bold)
	case analysis.Great:
		return color.New(color.FgCyan)
	case analysis.Best:
		return color.New(color.FgHiGreen)
	case analysis.Good:
		return color.New(color.FgGreen)
	case analysis.Inaccuracy:
		return color.New(color.FgYellow)
	case analysis.Mistake:
		return color.New(color.FgHiYellow)
	case analysis.Blunder:
		return color.New(color.FgHiRed, color.Bold)
	}
	return color.New(color.FgWhite)
}

// readInput reads a file argument, with "-" meaning stdin.
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
