package tactics

import (
	"strings"

	"github.com/notnil/chess"
)

// MoveImpact describes the tactical consequences of a move: the motifs
// present after it and which of them the move created.
type MoveImpact struct {
	CreatesThreat bool
	NewThreats    []Motif
	Motifs        []Motif // all motifs in the post-move position
}

// AnalyzeMove compares the motifs before and after a move. A motif counts
// as new when no pre-move motif has the same type and target squares.
func AnalyzeMove(pos *chess.Position, move *chess.Move) MoveImpact {
	before := AnalyzePosition(pos)
	after := AnalyzePosition(pos.Update(move))

	var created []Motif
	for _, m := range after {
		if !containsMotif(before, m) {
			created = append(created, m)
		}
	}

	return MoveImpact{
		CreatesThreat: len(created) > 0,
		NewThreats:    created,
		Motifs:        after,
	}
}

func containsMotif(motifs []Motif, m Motif) bool {
	for _, other := range motifs {
		if other.Type == m.Type && sameSquares(other.Targets, m.Targets) {
			return true
		}
	}
	return false
}

func sameSquares(a, b []chess.Square) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Summary renders a short human-readable report of the tactical features in
// a position: up to three critical threats, then up to three warnings.
func Summary(pos *chess.Position) string {
	motifs := AnalyzePosition(pos)
	if len(motifs) == 0 {
		return "No immediate tactical threats detected."
	}

	var critical, warnings []Motif
	for _, m := range motifs {
		switch m.Severity {
		case Critical:
			critical = append(critical, m)
		case Warning:
			warnings = append(warnings, m)
		}
	}

	var lines []string
	if len(critical) > 0 {
		lines = append(lines, "Critical threats:")
		for _, m := range truncate(critical, 3) {
			lines = append(lines, "  - "+m.Description)
		}
	}
	if len(warnings) > 0 {
		lines = append(lines, "Tactical features:")
		for _, m := range truncate(warnings, 3) {
			lines = append(lines, "  - "+m.Description)
		}
	}
	if len(lines) == 0 {
		return "No immediate tactical threats detected."
	}
	return strings.Join(lines, "\n")
}

func truncate(motifs []Motif, n int) []Motif {
	if len(motifs) > n {
		return motifs[:n]
	}
	return motifs
}
