// Package tactics detects tactical motifs in chess positions: pins, forks,
// skewers, and hanging pieces. Detection is a pure board scan with no
// engine dependency, so it can run on any snapshot, before or after a
// hypothetical move.
package tactics

import (
	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/board"
)

// MotifType identifies a kind of tactical pattern.
type MotifType int

const (
	Pin MotifType = iota
	Fork
	Skewer
	HangingPiece
)

// String returns the wire-friendly name of a motif type.
func (t MotifType) String() string {
	switch t {
	case Pin:
		return "pin"
	case Fork:
		return "fork"
	case Skewer:
		return "skewer"
	case HangingPiece:
		return "hanging_piece"
	}
	return "unknown"
}

// Severity grades how urgent a motif is.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

// String returns the wire-friendly name of a severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}
	return "unknown"
}

// Motif is a detected tactical pattern. Motifs are plain values with no
// identity beyond their fields; Targets is never empty.
type Motif struct {
	Type        MotifType
	Attacker    chess.Square
	Targets     []chess.Square
	Description string
	Severity    Severity
}

// Analyze scans a position view for all tactical motifs. The four detectors
// are independent; their results are concatenated in a stable order, but
// callers must not rely on ordering between categories.
func Analyze(v *board.View) []Motif {
	var motifs []Motif
	motifs = append(motifs, FindPins(v)...)
	motifs = append(motifs, FindForks(v)...)
	motifs = append(motifs, FindHangingPieces(v)...)
	motifs = append(motifs, FindSkewers(v)...)
	return motifs
}

// AnalyzePosition is a convenience wrapper over Analyze.
func AnalyzePosition(pos *chess.Position) []Motif {
	return Analyze(board.NewView(pos))
}

var pieceNames = map[chess.PieceType]string{
	chess.Pawn:   "pawn",
	chess.Knight: "knight",
	chess.Bishop: "bishop",
	chess.Rook:   "rook",
	chess.Queen:  "queen",
	chess.King:   "king",
}

func pieceName(t chess.PieceType) string {
	if name, ok := pieceNames[t]; ok {
		return name
	}
	return "piece"
}

func colourName(c chess.Color) string {
	if c == chess.White {
		return "White"
	}
	return "Black"
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

var bothColours = []chess.Color{chess.White, chess.Black}
