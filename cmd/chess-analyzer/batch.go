package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chesskit/analyzer-go/internal/analysis"
	"github.com/chesskit/analyzer-go/internal/output"
	"github.com/chesskit/analyzer-go/internal/worker"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Analyze every game in a PGN file concurrently",
		Long: `Split a PGN file into games and analyze them in parallel. Each worker
owns its own engine session; results are reported in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
}

// batchResult is the JSON wire form of one batch entry.
type batchResult struct {
	Game     int                      `json:"game"`
	Error    string                   `json:"error,omitempty"`
	Analysis *output.JSONGameAnalysis `json:"analysis,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	games := splitPGN(text)
	if len(games) == 0 {
		return fmt.Errorf("no games found in %s", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newSpinner(fmt.Sprintf("Analyzing %d games with %d workers...", len(games), cfg.Workers))
	pool := worker.NewPool(cfg.Workers, func() (analysis.Evaluator, error) {
		return newEngine(cfg)
	}, analyzerOptions()...)
	results, err := pool.AnalyzeAll(cmd.Context(), games)
	s.Stop()
	if err != nil {
		return err
	}

	if jsonOutput {
		out := make([]batchResult, 0, len(results))
		for _, r := range results {
			br := batchResult{Game: r.Index + 1}
			if r.Err != nil {
				br.Error = r.Err.Error()
			} else {
				br.Analysis = output.GameAnalysisToJSON(r.Analysis)
			}
			out = append(out, br)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, r := range results {
		fmt.Printf("=== Game %d ===\n", r.Index+1)
		if r.Err != nil {
			color.Red("analysis failed: %v", r.Err)
		} else {
			fmt.Println(r.Analysis.Summary)
		}
		fmt.Println()
	}
	return nil
}

// splitPGN splits a multi-game PGN text at the tag section of each game.
// Bare movetext with no tags is treated as a single game.
func splitPGN(text string) []string {
	var games []string
	var current []string
	seenMoves := false

	flush := func() {
		joined := strings.TrimSpace(strings.Join(current, "\n"))
		if joined != "" {
			games = append(games, joined)
		}
		current = nil
		seenMoves = false
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[Event ") && seenMoves {
			flush()
		}
		if trimmed != "" && !strings.HasPrefix(trimmed, "[") {
			seenMoves = true
		}
		current = append(current, line)
	}
	flush()
	return games
}
