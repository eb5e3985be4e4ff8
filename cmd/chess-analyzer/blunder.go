package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/chesskit/analyzer-go/internal/analysis"
)

func newBlunderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blunder FEN MOVE",
		Short: "Check a single move for a blunder",
		Long: `Evaluate a position before and after one move and report how much
evaluation the move gives away. MOVE is SAN (Qxf7+) or UCI (h5f7).`,
		Args: cobra.ExactArgs(2),
		RunE: runBlunder,
	}
}

func runBlunder(cmd *cobra.Command, args []string) error {
	pos, err := positionFromFEN(args[0])
	if err != nil {
		return err
	}
	move, err := decodeMove(pos, args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	s := newSpinner("Checking move...")
	analyzer := analysis.New(engine, analyzerOptions()...)
	check, err := analyzer.CheckBlunder(cmd.Context(), pos, move)
	s.Stop()
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(check)
	}

	if check.IsBlunder {
		color.Red("Blunder! %s loses %.0f centipawns.", args[1], check.EvalLoss)
		if check.BetterMove != "" {
			fmt.Printf("Better was %s.\n", check.BetterMove)
		}
	} else {
		color.Green("%s is fine (%.0f centipawns lost).", args[1], check.EvalLoss)
	}
	return nil
}

// decodeMove accepts SAN first, then UCI.
func decodeMove(pos *chess.Position, text string) (*chess.Move, error) {
	if m, err := (chess.AlgebraicNotation{}).Decode(pos, text); err == nil {
		return m, nil
	}
	m, err := (chess.UCINotation{}).Decode(pos, text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse move %q: %w", text, err)
	}
	return m, nil
}
