package analysis

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/board"
)

// MaterialBalance summarises material on the board in conventional points
// (pawn 1, minor 3, rook 5, queen 9; kings excluded).
type MaterialBalance struct {
	White       int
	Black       int
	Balance     int // white minus black
	Description string
}

// Material computes the material balance for a position view.
func Material(v *board.View) MaterialBalance {
	var white, black int
	for sq := chess.Square(0); sq < 64; sq++ {
		p := v.PieceAt(sq)
		if p == chess.NoPiece || p.Type() == chess.King {
			continue
		}
		if p.Color() == chess.White {
			white += board.PieceValue(p.Type())
		} else {
			black += board.PieceValue(p.Type())
		}
	}

	balance := white - black
	return MaterialBalance{
		White:       white,
		Black:       black,
		Balance:     balance,
		Description: describeBalance(balance),
	}
}

// describeBalance renders a human-readable material summary.
func describeBalance(balance int) string {
	if balance == 0 {
		return "Material is equal"
	}

	side := "White"
	points := balance
	if balance < 0 {
		side = "Black"
		points = -balance
	}

	switch {
	case points >= 9:
		return fmt.Sprintf("%s is up a queen (%d points)", side, points)
	case points >= 5:
		return fmt.Sprintf("%s is up a rook (%d points)", side, points)
	case points >= 3:
		return fmt.Sprintf("%s is up a minor piece (%d points)", side, points)
	}
	return fmt.Sprintf("%s is up %d pawn(s)", side, points)
}
