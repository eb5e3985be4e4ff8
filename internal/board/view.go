// Package board provides a read-only view over a chess position with the
// square geometry and attack queries needed for tactical analysis.
//
// Squares are addressed as flat 0-63 indices (rank = sq/8, file = sq%8),
// which keeps direction-vector arithmetic simple. There is no wraparound:
// any ray step that changes the file by more than one square has left the
// board, and every scan checks for that explicitly.
package board

import (
	"github.com/notnil/chess"
)

// Direction deltas on a flat 0-63 board.
const (
	North     = 8
	South     = -8
	East      = 1
	West      = -1
	NorthEast = 9
	NorthWest = 7
	SouthEast = -7
	SouthWest = -9
)

// StraightDirs are the rook directions.
var StraightDirs = []int{North, South, East, West}

// DiagonalDirs are the bishop directions.
var DiagonalDirs = []int{NorthEast, NorthWest, SouthEast, SouthWest}

// RankOf returns the 0-based rank of a square.
func RankOf(sq chess.Square) int {
	return int(sq) / 8
}

// FileOf returns the 0-based file of a square.
func FileOf(sq chess.Square) int {
	return int(sq) % 8
}

// SameLine reports whether two squares share a rank, file, or diagonal.
func SameLine(a, b chess.Square) bool {
	dr := RankOf(a) - RankOf(b)
	df := FileOf(a) - FileOf(b)
	return dr == 0 || df == 0 || abs(dr) == abs(df)
}

// Direction returns the unit direction delta from one square toward
// another. It reports false if the squares coincide or do not share a
// rank, file, or diagonal.
func Direction(from, to chess.Square) (int, bool) {
	if from == to || !SameLine(from, to) {
		return 0, false
	}
	dr := sign(RankOf(to) - RankOf(from))
	df := sign(FileOf(to) - FileOf(from))
	return dr*8 + df, true
}

// Step advances one square in the given direction. It reports false when
// the step leaves the board, including file wraps at the a/h edges.
func Step(sq chess.Square, dir int) (chess.Square, bool) {
	next := int(sq) + dir
	if next < 0 || next > 63 {
		return 0, false
	}
	if abs(next%8-int(sq)%8) > 1 {
		return 0, false
	}
	return chess.Square(next), true
}

// IsStraight reports whether a direction delta is a rook direction.
func IsStraight(dir int) bool {
	return dir == North || dir == South || dir == East || dir == West
}

// IsDiagonal reports whether a direction delta is a bishop direction.
func IsDiagonal(dir int) bool {
	return dir == NorthEast || dir == NorthWest || dir == SouthEast || dir == SouthWest
}

// PieceValue returns the conventional material value of a piece type,
// used for comparisons only (pawn 1, minor 3, rook 5, queen 9, king 100).
func PieceValue(t chess.PieceType) int {
	switch t {
	case chess.Pawn:
		return 1
	case chess.Knight, chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	case chess.King:
		return 100
	}
	return 0
}

// View is a read-only accessor over a single position. It answers
// piece-at-square, side-to-move, and attack queries. Views are cheap to
// construct and safe to use concurrently.
type View struct {
	board *chess.Board
	turn  chess.Color
}

// NewView creates a view over a position.
func NewView(pos *chess.Position) *View {
	return &View{board: pos.Board(), turn: pos.Turn()}
}

// NewBoardView creates a view over a bare board. The side to move is
// reported as White; attack queries do not depend on it.
func NewBoardView(b *chess.Board) *View {
	return &View{board: b, turn: chess.White}
}

// Turn returns the side to move.
func (v *View) Turn() chess.Color {
	return v.turn
}

// PieceAt returns the piece on a square, or chess.NoPiece.
func (v *View) PieceAt(sq chess.Square) chess.Piece {
	return v.board.Piece(sq)
}

// KingSquare returns the square of the given side's king. It reports
// false if the board has no such king.
func (v *View) KingSquare(c chess.Color) (chess.Square, bool) {
	for sq := chess.Square(0); sq < 64; sq++ {
		p := v.board.Piece(sq)
		if p != chess.NoPiece && p.Type() == chess.King && p.Color() == c {
			return sq, true
		}
	}
	return 0, false
}

// Attacks returns every square attacked by the piece on the given square.
// For sliding pieces the scan stops at (and includes) the first occupied
// square in each direction. An empty square yields no attacks.
func (v *View) Attacks(from chess.Square) []chess.Square {
	p := v.board.Piece(from)
	if p == chess.NoPiece {
		return nil
	}

	var out []chess.Square
	switch p.Type() {
	case chess.Pawn:
		dir := North
		if p.Color() == chess.Black {
			dir = South
		}
		for _, d := range []int{dir + East, dir + West} {
			if sq, ok := Step(from, d); ok {
				out = append(out, sq)
			}
		}
	case chess.Knight:
		out = v.leaperAttacks(from, knightOffsets)
	case chess.King:
		out = v.leaperAttacks(from, kingOffsets)
	case chess.Bishop:
		out = v.sliderAttacks(from, DiagonalDirs)
	case chess.Rook:
		out = v.sliderAttacks(from, StraightDirs)
	case chess.Queen:
		out = append(v.sliderAttacks(from, StraightDirs), v.sliderAttacks(from, DiagonalDirs)...)
	}
	return out
}

// Attackers returns the squares of all pieces of the given colour that
// attack the target square.
func (v *View) Attackers(target chess.Square, by chess.Color) []chess.Square {
	var out []chess.Square
	for sq := chess.Square(0); sq < 64; sq++ {
		p := v.board.Piece(sq)
		if p == chess.NoPiece || p.Color() != by {
			continue
		}
		if v.attacksSquare(sq, target) {
			out = append(out, sq)
		}
	}
	return out
}

// attacksSquare reports whether the piece on from attacks to.
func (v *View) attacksSquare(from, to chess.Square) bool {
	p := v.board.Piece(from)
	if p == chess.NoPiece || from == to {
		return false
	}

	dr := RankOf(to) - RankOf(from)
	df := FileOf(to) - FileOf(from)

	switch p.Type() {
	case chess.Pawn:
		fwd := 1
		if p.Color() == chess.Black {
			fwd = -1
		}
		return dr == fwd && abs(df) == 1
	case chess.Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case chess.King:
		return abs(df) <= 1 && abs(dr) <= 1
	case chess.Bishop:
		return abs(df) == abs(dr) && v.pathClear(from, to)
	case chess.Rook:
		return (df == 0 || dr == 0) && v.pathClear(from, to)
	case chess.Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && v.pathClear(from, to)
	}
	return false
}

// pathClear reports whether all squares strictly between from and to are
// empty. The squares must share a rank, file, or diagonal.
func (v *View) pathClear(from, to chess.Square) bool {
	dir, ok := Direction(from, to)
	if !ok {
		return false
	}
	sq := from
	for {
		next, ok := Step(sq, dir)
		if !ok || next == to {
			return ok
		}
		if v.board.Piece(next) != chess.NoPiece {
			return false
		}
		sq = next
	}
}

// sliderAttacks walks rays in each direction until the board edge or the
// first occupied square, which is included.
func (v *View) sliderAttacks(from chess.Square, dirs []int) []chess.Square {
	var out []chess.Square
	for _, dir := range dirs {
		sq := from
		for {
			next, ok := Step(sq, dir)
			if !ok {
				break
			}
			out = append(out, next)
			if v.board.Piece(next) != chess.NoPiece {
				break
			}
			sq = next
		}
	}
	return out
}

// offset is a (file, rank) delta for non-sliding pieces.
type offset struct{ df, dr int }

var knightOffsets = []offset{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = []offset{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
	{0, 1}, {1, -1}, {1, 0}, {1, 1},
}

func (v *View) leaperAttacks(from chess.Square, offsets []offset) []chess.Square {
	var out []chess.Square
	f, r := FileOf(from), RankOf(from)
	for _, o := range offsets {
		nf, nr := f+o.df, r+o.dr
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		out = append(out, chess.Square(nr*8+nf))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
