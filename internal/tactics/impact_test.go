package tactics

import (
	"strings"
	"testing"

	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/testutil"
)

// mustPosition builds a position from a FEN string.
func mustPosition(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return chess.NewGame(opt).Position()
}

// mustMove decodes a SAN move on a position.
func mustMove(t *testing.T, pos *chess.Position, san string) *chess.Move {
	t.Helper()
	m, err := chess.AlgebraicNotation{}.Decode(pos, san)
	if err != nil {
		t.Fatalf("bad move %q: %v", san, err)
	}
	return m
}

func TestAnalyzeMove_CreatesFork(t *testing.T) {
	// The knight hop to f7 forks the queen on d8 and the king on h8.
	pos := mustPosition(t, "3q3k/8/8/4N3/8/8/8/K7 w - - 0 1")
	move := mustMove(t, pos, "Nf7+")

	impact := AnalyzeMove(pos, move)

	testutil.AssertTrue(t, impact.CreatesThreat, "CreatesThreat")
	if len(impact.NewThreats) == 0 {
		t.Fatal("AnalyzeMove() reported no new threats")
	}

	var fork *Motif
	for i := range impact.NewThreats {
		if impact.NewThreats[i].Type == Fork {
			fork = &impact.NewThreats[i]
		}
	}
	if fork == nil {
		t.Fatalf("new threats %v do not include a fork", impact.NewThreats)
	}
	testutil.AssertEqual(t, fork.Severity, Critical)
	testutil.AssertEqual(t, fork.Attacker, chess.F7)
}

func TestAnalyzeMove_QuietMove(t *testing.T) {
	pos := mustPosition(t, "3q3k/8/8/4N3/8/8/8/K7 w - - 0 1")
	move := mustMove(t, pos, "Nc4")

	impact := AnalyzeMove(pos, move)

	testutil.AssertFalse(t, impact.CreatesThreat, "CreatesThreat")
	if len(impact.NewThreats) != 0 {
		t.Errorf("NewThreats = %v, want none", impact.NewThreats)
	}
}

func TestAnalyzeMove_DoesNotMutatePosition(t *testing.T) {
	pos := mustPosition(t, "3q3k/8/8/4N3/8/8/8/K7 w - - 0 1")
	fenBefore := pos.String()

	AnalyzeMove(pos, mustMove(t, pos, "Nf7+"))

	testutil.AssertEqual(t, pos.String(), fenBefore)
}

func TestSummary(t *testing.T) {
	t.Run("quiet position", func(t *testing.T) {
		got := Summary(mustPosition(t, "k7/8/8/8/8/8/8/K7 w - - 0 1"))
		testutil.AssertEqual(t, got, "No immediate tactical threats detected.")
	})

	t.Run("critical threats listed first", func(t *testing.T) {
		got := Summary(mustPosition(t, "k7/8/8/4q3/3P4/3K4/8/8 w - - 0 1"))
		testutil.AssertContains(t, got, "Critical threats:")
		testutil.AssertContains(t, got, "Black queen on e5 is undefended and attacked")
	})

	t.Run("info motifs are omitted", func(t *testing.T) {
		// The only motif here is an info-level pin of the knight on d8.
		got := Summary(mustPosition(t, "R2nk3/8/8/8/8/8/8/4K3 b - - 0 1"))
		testutil.AssertEqual(t, got, "No immediate tactical threats detected.")
	})

	t.Run("sections by severity", func(t *testing.T) {
		// A hanging queen (critical) and a hanging knight (warning).
		got := Summary(mustPosition(t, "k7/8/1n6/P7/8/5q2/6P1/K7 b - - 0 1"))
		testutil.AssertContains(t, got, "Critical threats:")
		testutil.AssertContains(t, got, "Black queen on f3 is undefended and attacked")
		testutil.AssertContains(t, got, "Tactical features:")
		testutil.AssertContains(t, got, "Black knight on b6 is undefended and attacked")
		if lines := strings.Count(got, "  - "); lines != 2 {
			t.Errorf("Summary() lists %d motifs, want 2:\n%s", lines, got)
		}
	})
}
