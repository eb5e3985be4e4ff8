package tactics

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/board"
)

// FindPins reports every piece pinned against its own king. A piece is
// pinned when it shares a rank, file, or diagonal with the king and the
// first piece beyond it along that line is an enemy slider that attacks
// along the line's direction class.
func FindPins(v *board.View) []Motif {
	var motifs []Motif

	for _, colour := range bothColours {
		kingSq, ok := v.KingSquare(colour)
		if !ok {
			continue
		}

		for sq := chess.Square(0); sq < 64; sq++ {
			p := v.PieceAt(sq)
			if p == chess.NoPiece || p.Color() != colour || sq == kingSq {
				continue
			}

			attacker, ok := findPinner(v, sq, kingSq, colour.Other())
			if !ok {
				continue
			}

			severity := Info
			if p.Type() == chess.Queen || p.Type() == chess.Rook {
				severity = Warning
			}
			motifs = append(motifs, Motif{
				Type:     Pin,
				Attacker: attacker,
				Targets:  []chess.Square{sq, kingSq},
				Description: fmt.Sprintf("%s on %s is pinned to the king by %s",
					capitalise(pieceName(p.Type())), sq, pieceName(v.PieceAt(attacker).Type())),
				Severity: severity,
			})
		}
	}

	return motifs
}

// findPinner scans outward from the potentially pinned piece, away from the
// king, and returns the square of a pinning slider if one is found first.
func findPinner(v *board.View, pinnedSq, kingSq chess.Square, attackerColour chess.Color) (chess.Square, bool) {
	if !board.SameLine(pinnedSq, kingSq) {
		return 0, false
	}
	dir, ok := board.Direction(kingSq, pinnedSq)
	if !ok {
		return 0, false
	}

	cur := pinnedSq
	for {
		next, ok := board.Step(cur, dir)
		if !ok {
			return 0, false
		}
		cur = next

		p := v.PieceAt(cur)
		if p == chess.NoPiece {
			continue
		}
		if p.Color() != attackerColour {
			return 0, false // own piece blocks the line
		}
		if canAttackAlong(p.Type(), dir) {
			return cur, true
		}
		return 0, false
	}
}

// canAttackAlong reports whether a piece type attacks along a direction
// class: rooks and queens on straight lines, bishops and queens on
// diagonals.
func canAttackAlong(t chess.PieceType, dir int) bool {
	switch t {
	case chess.Queen:
		return true
	case chess.Rook:
		return board.IsStraight(dir)
	case chess.Bishop:
		return board.IsDiagonal(dir)
	}
	return false
}

// FindForks reports pieces attacking two or more valuable enemy pieces at
// once. Valuable means queen, rook, or king; for a pawn attacker, minor
// pieces count too.
func FindForks(v *board.View) []Motif {
	var motifs []Motif

	for _, colour := range bothColours {
		for sq := chess.Square(0); sq < 64; sq++ {
			p := v.PieceAt(sq)
			if p == chess.NoPiece || p.Color() != colour {
				continue
			}

			var targets []chess.Square
			hasKing := false
			for _, targetSq := range v.Attacks(sq) {
				target := v.PieceAt(targetSq)
				if target == chess.NoPiece || target.Color() == colour {
					continue
				}
				switch target.Type() {
				case chess.Queen, chess.Rook, chess.King:
					targets = append(targets, targetSq)
					if target.Type() == chess.King {
						hasKing = true
					}
				case chess.Knight, chess.Bishop:
					if p.Type() == chess.Pawn {
						targets = append(targets, targetSq)
					}
				}
			}

			if len(targets) < 2 {
				continue
			}

			severity := Warning
			if hasKing {
				severity = Critical
			}
			motifs = append(motifs, Motif{
				Type:     Fork,
				Attacker: sq,
				Targets:  targets,
				Description: fmt.Sprintf("%s on %s forks %s",
					capitalise(pieceName(p.Type())), sq, describeTargets(v, targets)),
				Severity: severity,
			})
		}
	}

	return motifs
}

// describeTargets names the first three fork targets.
func describeTargets(v *board.View, targets []chess.Square) string {
	names := make([]string, 0, 3)
	for _, sq := range targets {
		if len(names) == 3 {
			break
		}
		names = append(names, fmt.Sprintf("%s on %s", pieceName(v.PieceAt(sq).Type()), sq))
	}
	return strings.Join(names, " and ")
}

// FindHangingPieces reports non-pawn pieces that are attacked and have no
// defenders.
func FindHangingPieces(v *board.View) []Motif {
	var motifs []Motif

	for sq := chess.Square(0); sq < 64; sq++ {
		p := v.PieceAt(sq)
		if p == chess.NoPiece || p.Type() == chess.Pawn {
			continue
		}

		colour := p.Color()
		attackers := v.Attackers(sq, colour.Other())
		if len(attackers) == 0 {
			continue
		}
		if len(v.Attackers(sq, colour)) > 0 {
			continue
		}

		severity := Warning
		if p.Type() == chess.Queen || p.Type() == chess.Rook {
			severity = Critical
		}
		motifs = append(motifs, Motif{
			Type:     HangingPiece,
			Attacker: attackers[0],
			Targets:  []chess.Square{sq},
			Description: fmt.Sprintf("%s %s on %s is undefended and attacked",
				colourName(colour), pieceName(p.Type()), sq),
			Severity: severity,
		})
	}

	return motifs
}

// FindSkewers reports skewers: a slider attacking a valuable enemy piece
// with a less valuable enemy piece behind it on the same line.
func FindSkewers(v *board.View) []Motif {
	var motifs []Motif

	for _, colour := range bothColours {
		for sq := chess.Square(0); sq < 64; sq++ {
			p := v.PieceAt(sq)
			if p == chess.NoPiece || p.Color() != colour {
				continue
			}

			var dirs []int
			switch p.Type() {
			case chess.Rook:
				dirs = board.StraightDirs
			case chess.Bishop:
				dirs = board.DiagonalDirs
			case chess.Queen:
				dirs = append(append([]int{}, board.StraightDirs...), board.DiagonalDirs...)
			default:
				continue
			}

			for _, dir := range dirs {
				front, back, ok := skewerAlong(v, sq, dir, colour)
				if !ok {
					continue
				}
				motifs = append(motifs, Motif{
					Type:     Skewer,
					Attacker: sq,
					Targets:  []chess.Square{front, back},
					Description: fmt.Sprintf("%s skewers %s to %s",
						capitalise(pieceName(p.Type())),
						pieceName(v.PieceAt(front).Type()),
						pieceName(v.PieceAt(back).Type())),
					Severity: Warning,
				})
			}
		}
	}

	return motifs
}

// skewerAlong walks one direction from a slider. The first enemy piece met
// is the front piece; a second enemy piece behind it completes a skewer if
// the front piece is worth more. An own piece stops the scan.
func skewerAlong(v *board.View, attackerSq chess.Square, dir int, colour chess.Color) (front, back chess.Square, ok bool) {
	var frontPiece chess.Piece
	haveFront := false

	cur := attackerSq
	for {
		next, stepped := board.Step(cur, dir)
		if !stepped {
			return 0, 0, false
		}
		cur = next

		p := v.PieceAt(cur)
		if p == chess.NoPiece {
			continue
		}
		if p.Color() == colour {
			return 0, 0, false
		}
		if !haveFront {
			frontPiece = p
			front = cur
			haveFront = true
			continue
		}
		if board.PieceValue(frontPiece.Type()) > board.PieceValue(p.Type()) {
			return front, cur, true
		}
		return 0, 0, false
	}
}
