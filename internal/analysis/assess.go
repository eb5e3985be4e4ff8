package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/board"
	apperrors "github.com/chesskit/analyzer-go/internal/errors"
)

// blunderThresholdCP is the default eval-loss threshold for the quick
// single-move check, in centipawns.
const blunderThresholdCP = 100.0

// BlunderCheck is the result of a quick single-move check, usable live
// during play. EvalLoss is in centipawns from the mover's perspective.
// BetterMove is set only when the move crosses the threshold and differs
// from the evaluator's choice.
type BlunderCheck struct {
	IsBlunder  bool
	BetterMove string
	EvalLoss   float64
}

// CheckBlunder evaluates the position before and after a single move and
// reports whether the move loses more than the threshold.
func (a *Analyzer) CheckBlunder(ctx context.Context, pos *chess.Position, move *chess.Move) (*BlunderCheck, error) {
	if a.eval == nil {
		return nil, apperrors.ErrEvaluatorUnavailable
	}

	before, err := a.eval.BestMove(ctx, pos.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
	}
	evalBefore := a.evalOrNeutral(before.Score)
	bestSAN := uciToSAN(pos, before.BestMoveUCI)

	posAfter := pos.Update(move)
	after, err := a.eval.BestMove(ctx, posAfter.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
	}
	evalAfter := a.evalOrNeutral(after.Score)

	// Loss from the mover's perspective, in centipawns.
	loss := (evalBefore - evalAfter) * 100
	if pos.Turn() == chess.Black {
		loss = (evalAfter - evalBefore) * 100
	}

	check := &BlunderCheck{
		IsBlunder: loss > blunderThresholdCP,
		EvalLoss:  loss,
	}
	if check.IsBlunder && bestSAN != "" && sanOf(pos, move) != bestSAN {
		check.BetterMove = bestSAN
	}
	return check, nil
}

// AssessedMove is one engine candidate with its expected continuation.
type AssessedMove struct {
	Move  string // SAN
	Score string
	Line  []string // SAN continuation, at most four moves
}

// Assessment is a quick snapshot of a position: evaluation, engine
// candidates, whether the position is tactical, and the material balance.
type Assessment struct {
	Evaluation string
	BestMoves  []AssessedMove
	IsTactical bool
	Material   MaterialBalance
}

// AssessPosition queries the evaluator for the position's evaluation and
// top candidate moves. When the evaluator supports MultiPV the top three
// candidates are reported, otherwise just the best move.
func (a *Analyzer) AssessPosition(ctx context.Context, pos *chess.Position) (*Assessment, error) {
	if a.eval == nil {
		return nil, apperrors.ErrEvaluatorUnavailable
	}

	var results []EngineResult
	if mpv, ok := a.eval.(MultiPVEvaluator); ok {
		top, err := mpv.TopMoves(ctx, pos.String(), 3)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
		}
		results = top
	} else {
		best, err := a.eval.BestMove(ctx, pos.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
		}
		results = []EngineResult{*best}
	}

	assessment := &Assessment{
		Evaluation: "0.0",
		Material:   Material(board.NewView(pos)),
	}

	for i, res := range results {
		san := uciToSAN(pos, res.BestMoveUCI)
		if san == "" {
			continue
		}
		assessment.BestMoves = append(assessment.BestMoves, AssessedMove{
			Move:  san,
			Score: res.Score,
			Line:  pvToSAN(pos, res.PV, 4),
		})
		if i == 0 {
			assessment.Evaluation = res.Score
			assessment.IsTactical = isTacticalScore(res.Score)
		}
	}

	return assessment, nil
}

// isTacticalScore reports whether an evaluation suggests forcing play: a
// mate score or a swing beyond 1.5 pawns.
func isTacticalScore(score string) bool {
	if len(score) > 0 && score[0] == 'M' {
		return true
	}
	v, err := ParseEval(score)
	if err != nil {
		return false
	}
	return math.Abs(v) > 1.5
}
