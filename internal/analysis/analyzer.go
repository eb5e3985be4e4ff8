package analysis

import (
	"context"
	"io"
	"log"

	"github.com/notnil/chess"
)

// EngineResult is one evaluator answer for a position. Scores are strings
// in pawns from White's perspective ("0.4", "-2.35") or mate markers
// ("M3", "M-2"); ParseEval turns them into numbers.
type EngineResult struct {
	BestMoveUCI string
	Score       string
	Depth       int
	PV          []string // UCI moves, engine's expected continuation
}

// Evaluator is the external position evaluator. Implementations own one
// engine session and must serialise requests on it; the analyzer issues at
// most one query at a time per Evaluator.
type Evaluator interface {
	BestMove(ctx context.Context, fen string) (*EngineResult, error)
}

// MultiPVEvaluator is an Evaluator that can report several candidate moves
// for one position.
type MultiPVEvaluator interface {
	Evaluator
	TopMoves(ctx context.Context, fen string, n int) ([]EngineResult, error)
}

// Analyzer classifies moves and analyses games. The evaluator is injected
// so each analysis call can use its own session; there is no shared global
// engine handle.
type Analyzer struct {
	eval   Evaluator
	logger *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for non-fatal anomalies such as
// malformed scores. The default discards log output.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Analyzer around an evaluator session.
func New(eval Evaluator, opts ...Option) *Analyzer {
	a := &Analyzer{
		eval:   eval,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// evalOrNeutral parses a score string, degrading to a neutral 0.0 with a
// log line when the evaluator returned something unparseable. A single
// flaky score must not abort a whole game analysis.
func (a *Analyzer) evalOrNeutral(score string) float64 {
	v, err := ParseEval(score)
	if err != nil {
		a.logger.Printf("analysis: %v, using neutral evaluation", err)
		return 0
	}
	return v
}

// sanOf encodes a move in SAN for the given position.
func sanOf(pos *chess.Position, m *chess.Move) string {
	return chess.AlgebraicNotation{}.Encode(pos, m)
}

// uciToSAN converts an engine move in UCI notation to SAN. It returns the
// empty string when the move does not parse on the position.
func uciToSAN(pos *chess.Position, uci string) string {
	if uci == "" {
		return ""
	}
	m, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return ""
	}
	return sanOf(pos, m)
}

// pvToSAN converts the leading moves of a principal variation to SAN,
// stopping at the first move that does not apply.
func pvToSAN(pos *chess.Position, pv []string, maxMoves int) []string {
	var out []string
	cur := pos
	for _, uci := range pv {
		if len(out) == maxMoves {
			break
		}
		m, err := chess.UCINotation{}.Decode(cur, uci)
		if err != nil {
			break
		}
		out = append(out, sanOf(cur, m))
		cur = cur.Update(m)
	}
	return out
}

func colourString(c chess.Color) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
