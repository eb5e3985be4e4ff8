package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chesskit/analyzer-go/internal/analysis"
	"github.com/chesskit/analyzer-go/internal/tactics"
)

func newAssessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess FEN",
		Short: "Quick assessment of a position",
		Long: `Report the engine evaluation, top candidate moves, material balance,
and tactical features of a position.`,
		Args: cobra.ExactArgs(1),
		RunE: runAssess,
	}
}

func runAssess(cmd *cobra.Command, args []string) error {
	pos, err := positionFromFEN(args[0])
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

	s := newSpinner("Assessing position...")
	analyzer := analysis.New(engine, analyzerOptions()...)
	assessment, err := analyzer.AssessPosition(cmd.Context(), pos)
	s.Stop()
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}

	fmt.Printf("Evaluation: %s", assessment.Evaluation)
	if assessment.IsTactical {
		fmt.Print("  (tactical)")
	}
	fmt.Println()
	fmt.Println(assessment.Material.Description)

	if len(assessment.BestMoves) > 0 {
		fmt.Println("\nBest moves:")
		for _, bm := range assessment.BestMoves {
			line := ""
			if len(bm.Line) > 0 {
				line = "  " + strings.Join(bm.Line, " ")
			}
			fmt.Printf("  %-8s %s%s\n", bm.Move, bm.Score, line)
		}
	}

	if summary := tactics.Summary(pos); summary != "" {
		fmt.Println()
		fmt.Println(summary)
	}
	return nil
}
