package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/chesskit/analyzer-go/internal/output"
	"github.com/chesskit/analyzer-go/internal/tactics"
)

func newTacticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tactics FEN",
		Short: "Detect tactical motifs in a position",
		Long: `Scan a position for pins, forks, skewers, and hanging pieces. This is
a pure board scan and needs no engine.`,
		Args: cobra.ExactArgs(1),
		RunE: runTactics,
	}
}

func runTactics(cmd *cobra.Command, args []string) error {
	pos, err := positionFromFEN(args[0])
	if err != nil {
		return err
	}

	motifs := tactics.AnalyzePosition(pos)

	if jsonOutput {
		return output.WriteMotifs(os.Stdout, motifs)
	}

	if len(motifs) == 0 {
		fmt.Println("No immediate tactical threats detected.")
		return nil
	}
	for _, m := range motifs {
		tag := severityColor(m.Severity).Sprintf("[%s]", m.Severity)
		fmt.Printf("%s %s: %s\n", tag, m.Type, m.Description)
	}
	return nil
}

func severityColor(s tactics.Severity) *color.Color {
	switch s {
	case tactics.Critical:
		return color.New(color.FgHiRed, color.Bold)
	case tactics.Warning:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgHiBlack)
}

// positionFromFEN builds a position from a FEN string.
func positionFromFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}
