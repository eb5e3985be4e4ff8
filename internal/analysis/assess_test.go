package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/notnil/chess"

	apperrors "github.com/chesskit/analyzer-go/internal/errors"
	"github.com/chesskit/analyzer-go/internal/testutil"
)

// mockMultiPV extends the mock evaluator with canned MultiPV candidates.
type mockMultiPV struct {
	mockEvaluator
	top []EngineResult
}

func (m *mockMultiPV) TopMoves(_ context.Context, fen string, n int) ([]EngineResult, error) {
	if n < len(m.top) {
		return m.top[:n], nil
	}
	return m.top, nil
}

func decodeSAN(t *testing.T, pos *chess.Position, san string) *chess.Move {
	t.Helper()
	m, err := chess.AlgebraicNotation{}.Decode(pos, san)
	if err != nil {
		t.Fatalf("bad move %q: %v", san, err)
	}
	return m
}

func assertClose(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCheckBlunder_WhiteLosesGround(t *testing.T) {
	pos := chess.NewGame().Position()
	move := decodeSAN(t, pos, "f3")
	posAfter := pos.Update(move)

	mock := &mockEvaluator{responses: map[string]*EngineResult{
		pos.String():      {BestMoveUCI: "e2e4", Score: "0.30"},
		posAfter.String(): {Score: "-1.20"},
	}}

	check, err := New(mock).CheckBlunder(context.Background(), pos, move)
	testutil.AssertNoError(t, err)

	testutil.AssertTrue(t, check.IsBlunder, "IsBlunder")
	testutil.AssertEqual(t, check.BetterMove, "e4")
	assertClose(t, check.EvalLoss, 150)
}

func TestCheckBlunder_FineMove(t *testing.T) {
	pos := chess.NewGame().Position()
	move := decodeSAN(t, pos, "e4")
	posAfter := pos.Update(move)

	mock := &mockEvaluator{responses: map[string]*EngineResult{
		pos.String():      {BestMoveUCI: "e2e4", Score: "0.30"},
		posAfter.String(): {Score: "0.30"},
	}}

	check, err := New(mock).CheckBlunder(context.Background(), pos, move)
	testutil.AssertNoError(t, err)

	testutil.AssertFalse(t, check.IsBlunder, "IsBlunder")
	testutil.AssertEqual(t, check.BetterMove, "")
	assertClose(t, check.EvalLoss, 0)
}

func TestCheckBlunder_BlackPerspective(t *testing.T) {
	start := chess.NewGame().Position()
	pos := start.Update(decodeSAN(t, start, "e4"))
	move := decodeSAN(t, pos, "Na6")
	posAfter := pos.Update(move)

	mock := &mockEvaluator{responses: map[string]*EngineResult{
		pos.String():      {BestMoveUCI: "e7e5", Score: "0.30"},
		posAfter.String(): {Score: "1.50"},
	}}

	check, err := New(mock).CheckBlunder(context.Background(), pos, move)
	testutil.AssertNoError(t, err)

	testutil.AssertTrue(t, check.IsBlunder, "IsBlunder")
	testutil.AssertEqual(t, check.BetterMove, "e5")
	assertClose(t, check.EvalLoss, 120)
}

func TestCheckBlunder_NilEvaluator(t *testing.T) {
	pos := chess.NewGame().Position()
	_, err := New(nil).CheckBlunder(context.Background(), pos, decodeSAN(t, pos, "e4"))

	testutil.AssertError(t, err)
	if !errors.Is(err, apperrors.ErrEvaluatorUnavailable) {
		t.Errorf("error = %v, want ErrEvaluatorUnavailable", err)
	}
}

func TestAssessPosition_SingleCandidate(t *testing.T) {
	pos := chess.NewGame().Position()
	mock := &mockEvaluator{responses: map[string]*EngineResult{
		pos.String(): {BestMoveUCI: "e2e4", Score: "0.40", PV: []string{"e2e4", "e7e5", "g1f3"}},
	}}

	assessment, err := New(mock).AssessPosition(context.Background(), pos)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, assessment.Evaluation, "0.40")
	testutil.AssertFalse(t, assessment.IsTactical, "IsTactical")
	testutil.AssertEqual(t, assessment.Material.Description, "Material is equal")

	if len(assessment.BestMoves) != 1 {
		t.Fatalf("got %d candidates, want 1", len(assessment.BestMoves))
	}
	testutil.AssertEqual(t, assessment.BestMoves[0].Move, "e4")
	testutil.AssertEqual(t, assessment.BestMoves[0].Line, []string{"e4", "e5", "Nf3"})
}

func TestAssessPosition_MultiPV(t *testing.T) {
	pos := chess.NewGame().Position()
	mock := &mockMultiPV{top: []EngineResult{
		{BestMoveUCI: "e2e4", Score: "M2", PV: []string{"e2e4"}},
		{BestMoveUCI: "d2d4", Score: "0.50"},
		{BestMoveUCI: "g1f3", Score: "0.40"},
	}}

	assessment, err := New(mock).AssessPosition(context.Background(), pos)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, assessment.Evaluation, "M2")
	testutil.AssertTrue(t, assessment.IsTactical, "IsTactical")
	if len(assessment.BestMoves) != 3 {
		t.Fatalf("got %d candidates, want 3", len(assessment.BestMoves))
	}
	testutil.AssertEqual(t, assessment.BestMoves[0].Move, "e4")
	testutil.AssertEqual(t, assessment.BestMoves[1].Move, "d4")
	testutil.AssertEqual(t, assessment.BestMoves[2].Move, "Nf3")
}

func TestIsTacticalScore(t *testing.T) {
	tests := []struct {
		score string
		want  bool
	}{
		{"M2", true},
		{"M-3", true},
		{"2.00", true},
		{"-2.00", true},
		{"1.50", false},
		{"0.40", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			if got := isTacticalScore(tt.score); got != tt.want {
				t.Errorf("isTacticalScore(%q) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}
