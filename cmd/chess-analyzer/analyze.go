package main

import (
	"fmt"
	"os"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/chesskit/analyzer-go/internal/analysis"
	"github.com/chesskit/analyzer-go/internal/output"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze FILE",
		Short: "Classify every move of a game",
		Long: `Replay a PGN game, querying the engine before and after every move,
and classify each move from brilliant to blunder. FILE may be - for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pgn, err := readInput(args[0])
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

	s := newSpinner("Analyzing game...")
	analyzer := analysis.New(engine, analyzerOptions()...)
	ga, err := analyzer.AnalyzeGame(cmd.Context(), pgn)
	s.Stop()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.WriteGameAnalysis(os.Stdout, ga)
	}
	printGameAnalysis(ga)
	return nil
}

func printGameAnalysis(ga *analysis.GameAnalysis) {
	for _, m := range ga.Moves {
		number := fmt.Sprintf("%d.", m.MoveNumber)
		if m.Colour == chess.Black {
			number = fmt.Sprintf("%d...", m.MoveNumber)
		}
		grade := classificationColor(m.Classification).Sprint(m.Classification)
		fmt.Printf("%-6s %-8s %+6.2f (%+5.2f)  %-10s %s\n",
			number, m.MoveSAN, m.EvalAfter, m.EvalChange, grade, m.Comment)
	}
	fmt.Println()
	fmt.Println(ga.Summary)
}
