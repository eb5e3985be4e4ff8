// Package output serialises analysis results for consuming layers. The
// core data structures are in-process values; JSON here is a convenience
// for the CLI and any UI that reads its output.
package output

import (
	"encoding/json"
	"io"

	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/analysis"
	"github.com/chesskit/analyzer-go/internal/tactics"
)

func colourString(c chess.Color) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// JSONMotif is the wire form of a tactical motif.
type JSONMotif struct {
	Type        string   `json:"type"`
	Attacker    string   `json:"attacker"`
	Targets     []string `json:"targets"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
}

// JSONMoveAnalysis is the wire form of a single analysed move.
type JSONMoveAnalysis struct {
	MoveNumber     int     `json:"moveNumber"`
	Color          string  `json:"color"`
	SAN            string  `json:"san"`
	EvalBefore     float64 `json:"evalBefore"`
	EvalAfter      float64 `json:"evalAfter"`
	EvalChange     float64 `json:"evalChange"`
	BestMove       string  `json:"bestMove,omitempty"`
	BestEval       float64 `json:"bestEval"`
	Classification string  `json:"classification"`
	Comment        string  `json:"comment"`
	IsCapture      bool    `json:"isCapture,omitempty"`
	IsCheck        bool    `json:"isCheck,omitempty"`
	IsSacrifice    bool    `json:"isSacrifice,omitempty"`
	FENAfter       string  `json:"fenAfter,omitempty"`
}

// JSONGameAnalysis is the wire form of a full game analysis.
type JSONGameAnalysis struct {
	Moves             []JSONMoveAnalysis `json:"moves"`
	WhiteBlunders     int                `json:"whiteBlunders"`
	WhiteMistakes     int                `json:"whiteMistakes"`
	WhiteInaccuracies int                `json:"whiteInaccuracies"`
	BlackBlunders     int                `json:"blackBlunders"`
	BlackMistakes     int                `json:"blackMistakes"`
	BlackInaccuracies int                `json:"blackInaccuracies"`
	CriticalMoments   []int              `json:"criticalMoments,omitempty"`
	Summary           string             `json:"summary"`
}

// MotifsToJSON converts motifs to their wire form.
func MotifsToJSON(motifs []tactics.Motif) []JSONMotif {
	out := make([]JSONMotif, 0, len(motifs))
	for _, m := range motifs {
		targets := make([]string, 0, len(m.Targets))
		for _, sq := range m.Targets {
			targets = append(targets, sq.String())
		}
		out = append(out, JSONMotif{
			Type:        m.Type.String(),
			Attacker:    m.Attacker.String(),
			Targets:     targets,
			Description: m.Description,
			Severity:    m.Severity.String(),
		})
	}
	return out
}

// WriteMotifs writes motifs as indented JSON.
func WriteMotifs(w io.Writer, motifs []tactics.Motif) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(MotifsToJSON(motifs))
}

// GameAnalysisToJSON converts a game analysis to its wire form.
func GameAnalysisToJSON(ga *analysis.GameAnalysis) *JSONGameAnalysis {
	out := &JSONGameAnalysis{
		Moves:             make([]JSONMoveAnalysis, 0, len(ga.Moves)),
		WhiteBlunders:     ga.WhiteBlunders,
		WhiteMistakes:     ga.WhiteMistakes,
		WhiteInaccuracies: ga.WhiteInaccuracies,
		BlackBlunders:     ga.BlackBlunders,
		BlackMistakes:     ga.BlackMistakes,
		BlackInaccuracies: ga.BlackInaccuracies,
		CriticalMoments:   ga.CriticalMoments,
		Summary:           ga.Summary,
	}
	for _, m := range ga.Moves {
		out.Moves = append(out.Moves, JSONMoveAnalysis{
			MoveNumber:     m.MoveNumber,
			Color:          colourString(m.Colour),
			SAN:            m.MoveSAN,
			EvalBefore:     m.EvalBefore,
			EvalAfter:      m.EvalAfter,
			EvalChange:     m.EvalChange,
			BestMove:       m.BestMove,
			BestEval:       m.BestEval,
			Classification: m.Classification.String(),
			Comment:        m.Comment,
			IsCapture:      m.IsCapture,
			IsCheck:        m.IsCheck,
			IsSacrifice:    m.IsSacrifice,
			FENAfter:       m.FENAfter,
		})
	}
	return out
}

// WriteGameAnalysis writes a game analysis as indented JSON.
func WriteGameAnalysis(w io.Writer, ga *analysis.GameAnalysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameAnalysisToJSON(ga))
}
