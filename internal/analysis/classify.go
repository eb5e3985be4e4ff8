// Package analysis classifies played moves and drives full-game analysis
// against a position evaluator. The classifier and comment generator are
// pure functions; the game analyzer threads evaluator state explicitly so
// independent analyses can run concurrently with their own sessions.
package analysis

import "fmt"

// Classification grades a played move, best to worst.
type Classification int

const (
	Brilliant Classification = iota
	Great
	Best
	Good
	Book // assigned by opening-book lookup in a consuming layer, never computed here
	Inaccuracy
	Mistake
	Blunder
)

// String returns the wire-friendly name of a classification.
func (c Classification) String() string {
	switch c {
	case Brilliant:
		return "brilliant"
	case Great:
		return "great"
	case Best:
		return "best"
	case Good:
		return "good"
	case Book:
		return "book"
	case Inaccuracy:
		return "inaccuracy"
	case Mistake:
		return "mistake"
	case Blunder:
		return "blunder"
	}
	return "unknown"
}

// Classification thresholds in pawns of evaluation lost by the mover.
const (
	inaccuracyThreshold = 0.50
	mistakeThreshold    = 1.00
	blunderThreshold    = 2.00
)

// MoveContext carries everything the classifier needs. EvalChange is from
// the mover's perspective in pawns (negative means the mover lost ground);
// EvalBefore and EvalAfter are absolute evaluations from White's
// perspective. IsOnlyGoodMove means the played move was the evaluator's top
// choice and rescued a losing position.
type MoveContext struct {
	EvalChange     float64
	HadBetterMove  bool
	IsSacrifice    bool
	EvalBefore     float64
	EvalAfter      float64
	IsOnlyGoodMove bool
}

// Classify maps a move context to a classification. It is total and
// deterministic: the first matching rule wins, which also resolves the case
// where both brilliancy heuristics could fire.
func Classify(mc MoveContext) Classification {
	// Brilliant: a sacrifice that gains ground, or the only move that
	// saves a losing position.
	if mc.IsSacrifice && mc.EvalChange >= 0.5 {
		return Brilliant
	}
	if mc.IsOnlyGoodMove && mc.EvalBefore < -1.0 && mc.EvalAfter > 0 {
		return Brilliant
	}

	// Great: a significant improvement the evaluator agrees with.
	if mc.EvalChange >= 1.0 && !mc.HadBetterMove {
		return Great
	}

	// Best or good: minimal or no loss.
	if mc.EvalChange >= -0.10 {
		if mc.HadBetterMove {
			return Good
		}
		return Best
	}

	switch {
	case mc.EvalChange >= -inaccuracyThreshold:
		return Good
	case mc.EvalChange >= -mistakeThreshold:
		return Inaccuracy
	case mc.EvalChange >= -blunderThreshold:
		return Mistake
	}
	return Blunder
}

// Comment renders the template comment for a classification. bestMove is
// the evaluator's choice in SAN, empty when the played move was best or no
// better move is known.
func Comment(c Classification, evalChange float64, bestMove string, isSacrifice bool) string {
	switch c {
	case Brilliant:
		if isSacrifice {
			return "Brilliant sacrifice!"
		}
		return "Brilliant! The only winning move."
	case Great:
		return fmt.Sprintf("Great move! Gains %.1f pawns.", evalChange)
	case Best:
		return "Best move."
	case Good:
		return "Good move."
	case Book:
		return "Book move."
	case Inaccuracy:
		if bestMove != "" {
			return fmt.Sprintf("Inaccuracy. %s was better.", bestMove)
		}
		return "Slight inaccuracy."
	case Mistake:
		if bestMove != "" {
			return fmt.Sprintf("Mistake! %s was much better (%.1f pawns lost).", bestMove, -evalChange)
		}
		return fmt.Sprintf("Mistake! (%.1f pawns lost)", -evalChange)
	case Blunder:
		if bestMove != "" {
			return fmt.Sprintf("Blunder! %s was winning. (%.1f pawns lost)", bestMove, -evalChange)
		}
		return fmt.Sprintf("Blunder! (%.1f pawns lost)", -evalChange)
	}
	return ""
}
