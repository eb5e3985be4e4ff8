package board

import (
	"testing"

	"github.com/notnil/chess"
)

// mustView builds a view from a FEN string, failing the test on bad input.
func mustView(t *testing.T, fen string) *View {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return NewView(chess.NewGame(opt).Position())
}

func containsSquare(squares []chess.Square, sq chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func TestRankAndFile(t *testing.T) {
	tests := []struct {
		sq   chess.Square
		rank int
		file int
	}{
		{chess.A1, 0, 0},
		{chess.H1, 0, 7},
		{chess.A8, 7, 0},
		{chess.H8, 7, 7},
		{chess.E4, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.sq.String(), func(t *testing.T) {
			if got := RankOf(tt.sq); got != tt.rank {
				t.Errorf("RankOf(%s) = %d, want %d", tt.sq, got, tt.rank)
			}
			if got := FileOf(tt.sq); got != tt.file {
				t.Errorf("FileOf(%s) = %d, want %d", tt.sq, got, tt.file)
			}
		})
	}
}

func TestSameLine(t *testing.T) {
	tests := []struct {
		name string
		a, b chess.Square
		want bool
	}{
		{"same file", chess.A1, chess.A8, true},
		{"same rank", chess.A1, chess.H1, true},
		{"long diagonal", chess.A1, chess.H8, true},
		{"anti-diagonal", chess.H1, chess.A8, true},
		{"knight offset", chess.A1, chess.B3, false},
		{"unrelated", chess.C2, chess.E5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameLine(tt.a, tt.b); got != tt.want {
				t.Errorf("SameLine(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		from, to chess.Square
		want     int
		ok       bool
	}{
		{"north", chess.E4, chess.E8, North, true},
		{"south", chess.E4, chess.E1, South, true},
		{"east", chess.E4, chess.H4, East, true},
		{"west", chess.E4, chess.A4, West, true},
		{"northeast", chess.E4, chess.H7, NorthEast, true},
		{"southwest", chess.E4, chess.B1, SouthWest, true},
		{"off line", chess.E4, chess.D6, 0, false},
		{"same square", chess.E4, chess.E4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Direction(tt.from, tt.to)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Direction(%s, %s) = (%d, %v), want (%d, %v)",
					tt.from, tt.to, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// TestStep exercises the board-edge cases, in particular the file wraps
// where the flat index stays in range but the square is on the other side
// of the board.
func TestStep(t *testing.T) {
	tests := []struct {
		name string
		sq   chess.Square
		dir  int
		want chess.Square
		ok   bool
	}{
		{"interior north", chess.E4, North, chess.E5, true},
		{"interior southwest", chess.E4, SouthWest, chess.D3, true},
		{"east off h-file", chess.H4, East, 0, false},
		{"west off a-file", chess.A4, West, 0, false},
		{"south off rank 1", chess.A1, South, 0, false},
		{"north off rank 8", chess.H8, North, 0, false},
		{"northeast wrap from h-file", chess.H5, NorthEast, 0, false},
		{"southeast wrap from h-file", chess.H4, SouthEast, 0, false},
		{"northwest wrap from a-file", chess.A4, NorthWest, 0, false},
		{"southwest wrap from a-file", chess.A4, SouthWest, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Step(tt.sq, tt.dir)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Step(%s, %d) = (%s, %v), want (%s, %v)",
					tt.sq, tt.dir, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPieceValue(t *testing.T) {
	tests := []struct {
		pieceType chess.PieceType
		want      int
	}{
		{chess.Pawn, 1},
		{chess.Knight, 3},
		{chess.Bishop, 3},
		{chess.Rook, 5},
		{chess.Queen, 9},
		{chess.King, 100},
	}

	for _, tt := range tests {
		if got := PieceValue(tt.pieceType); got != tt.want {
			t.Errorf("PieceValue(%v) = %d, want %d", tt.pieceType, got, tt.want)
		}
	}
}

func TestKingSquare(t *testing.T) {
	v := NewView(chess.NewGame().Position())

	white, ok := v.KingSquare(chess.White)
	if !ok || white != chess.E1 {
		t.Errorf("KingSquare(White) = (%s, %v), want (e1, true)", white, ok)
	}
	black, ok := v.KingSquare(chess.Black)
	if !ok || black != chess.E8 {
		t.Errorf("KingSquare(Black) = (%s, %v), want (e8, true)", black, ok)
	}
}

func TestAttacks_SliderStopsAtBlocker(t *testing.T) {
	// White rook on d4, black pawn on d5. The pawn's square is attacked
	// but nothing beyond it.
	v := mustView(t, "7k/8/8/3p4/3R4/8/8/K7 w - - 0 1")
	attacks := v.Attacks(chess.D4)

	for _, want := range []chess.Square{chess.D5, chess.D1, chess.A4, chess.H4} {
		if !containsSquare(attacks, want) {
			t.Errorf("rook on d4 should attack %s", want)
		}
	}
	if containsSquare(attacks, chess.D6) {
		t.Error("rook on d4 should not attack d6 through the pawn on d5")
	}
}

func TestAttacks_PawnDiagonalsOnly(t *testing.T) {
	v := mustView(t, "7k/8/8/p2p4/P3P3/8/8/K7 w - - 0 1")

	tests := []struct {
		name    string
		sq      chess.Square
		want    []chess.Square
		exclude []chess.Square
	}{
		{"white pawn e4", chess.E4, []chess.Square{chess.D5, chess.F5}, []chess.Square{chess.E5}},
		{"black pawn d5", chess.D5, []chess.Square{chess.C4, chess.E4}, []chess.Square{chess.D4}},
		{"white pawn on a-file", chess.A4, []chess.Square{chess.B5}, []chess.Square{chess.H5}},
		{"black pawn on a-file", chess.A5, []chess.Square{chess.B4}, []chess.Square{chess.H4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacks := v.Attacks(tt.sq)
			for _, sq := range tt.want {
				if !containsSquare(attacks, sq) {
					t.Errorf("pawn on %s should attack %s", tt.sq, sq)
				}
			}
			for _, sq := range tt.exclude {
				if containsSquare(attacks, sq) {
					t.Errorf("pawn on %s should not attack %s", tt.sq, sq)
				}
			}
		})
	}
}

func TestAttacks_KnightFromCorner(t *testing.T) {
	v := mustView(t, "7k/8/8/8/8/8/8/N6K w - - 0 1")
	attacks := v.Attacks(chess.A1)

	if len(attacks) != 2 {
		t.Fatalf("knight on a1 attacks %d squares, want 2", len(attacks))
	}
	for _, want := range []chess.Square{chess.B3, chess.C2} {
		if !containsSquare(attacks, want) {
			t.Errorf("knight on a1 should attack %s", want)
		}
	}
}

func TestAttacks_EmptySquare(t *testing.T) {
	v := mustView(t, "7k/8/8/8/8/8/8/K7 w - - 0 1")
	if attacks := v.Attacks(chess.E4); attacks != nil {
		t.Errorf("Attacks(empty square) = %v, want nil", attacks)
	}
}

func TestAttackers(t *testing.T) {
	// White pawn on b5 attacks the black knight on c6.
	v := mustView(t, "7k/8/2n5/1P6/8/8/8/7K w - - 0 1")

	white := v.Attackers(chess.C6, chess.White)
	if len(white) != 1 || white[0] != chess.B5 {
		t.Errorf("Attackers(c6, White) = %v, want [b5]", white)
	}
	if black := v.Attackers(chess.C6, chess.Black); len(black) != 0 {
		t.Errorf("Attackers(c6, Black) = %v, want none", black)
	}
}

func TestAttackers_SliderBlocked(t *testing.T) {
	// The rook's path to g1 is blocked by its own pawn on e1.
	v := mustView(t, "7k/8/8/8/8/7K/8/R3P3 w - - 0 1")

	if attackers := v.Attackers(chess.G1, chess.White); len(attackers) != 0 {
		t.Errorf("Attackers(g1, White) = %v, want none through the blocker", attackers)
	}
	if attackers := v.Attackers(chess.D1, chess.White); !containsSquare(attackers, chess.A1) {
		t.Errorf("Attackers(d1, White) = %v, should include a1", attackers)
	}
}
