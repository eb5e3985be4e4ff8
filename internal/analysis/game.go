package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/chesskit/analyzer-go/internal/board"
	apperrors "github.com/chesskit/analyzer-go/internal/errors"
)

// MoveAnalysis is the analysis of a single half-move. Evaluations are in
// pawns from White's perspective; EvalChange is from the mover's
// perspective. BestMove is set only when a strictly better move existed.
type MoveAnalysis struct {
	MoveNumber     int
	Colour         chess.Color
	MoveSAN        string
	EvalBefore     float64
	EvalAfter      float64
	EvalChange     float64
	BestMove       string
	BestEval       float64
	Classification Classification
	Comment        string
	IsCapture      bool
	IsCheck        bool
	IsSacrifice    bool
	FENAfter       string
}

// GameAnalysis is the complete analysis of one game. It is produced in a
// single call and never mutated afterwards.
type GameAnalysis struct {
	Moves []MoveAnalysis

	WhiteBlunders     int
	WhiteMistakes     int
	WhiteInaccuracies int
	BlackBlunders     int
	BlackMistakes     int
	BlackInaccuracies int

	CriticalMoments []int // full-move numbers of blunders, mistakes, and brilliancies
	Summary         string
}

// AnalyzeGame replays a PGN game, querying the evaluator before and after
// every half-move, and classifies each move.
//
// Failure policy: an unparseable game aborts with ErrInvalidGameRecord
// before any evaluator call; any evaluator failure mid-game aborts the
// whole analysis with ErrEvaluatorUnavailable rather than producing a
// partial result. A reply whose score string does not parse is treated as
// a neutral 0.0 and logged.
func (a *Analyzer) AnalyzeGame(ctx context.Context, pgn string) (*GameAnalysis, error) {
	if a.eval == nil {
		return nil, apperrors.ErrEvaluatorUnavailable
	}

	opt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidGameRecord, "%v", err)
	}
	game := chess.NewGame(opt)

	moves := game.Moves()
	positions := game.Positions()

	ga := &GameAnalysis{}
	moveNumber := 1
	prevEval := 0.0 // games start from an equal position

	for i, move := range moves {
		pos := positions[i]
		posAfter := positions[i+1]
		isWhite := pos.Turn() == chess.White
		moveSAN := sanOf(pos, move)
		ply := i + 1

		evalBefore := prevEval
		isCapture := move.HasTag(chess.Capture) || move.HasTag(chess.EnPassant)
		isCheck := move.HasTag(chess.Check)
		isSacrifice := isCapture && capturesWithMoreValuablePiece(pos, move)

		// Evaluator's choice on the pre-move position.
		best, err := a.eval.BestMove(ctx, pos.String())
		if err != nil {
			return nil, evaluatorFailure(err, ply, moveSAN)
		}
		bestSAN := uciToSAN(pos, best.BestMoveUCI)
		bestEval := a.evalOrNeutral(best.Score)

		// Evaluation of the position the move produced.
		after, err := a.eval.BestMove(ctx, posAfter.String())
		if err != nil {
			return nil, evaluatorFailure(err, ply, moveSAN)
		}
		evalAfter := a.evalOrNeutral(after.Score)

		// Evaluation change from the mover's perspective.
		evalChange := evalAfter - evalBefore
		if !isWhite {
			evalChange = evalBefore - evalAfter
		}

		playedBest := bestSAN != "" && moveSAN == bestSAN
		hadBetterMove := !playedBest
		isOnlyGoodMove := playedBest && evalBefore < -1.0 && evalAfter > -0.5

		classification := Classify(MoveContext{
			EvalChange:     evalChange,
			HadBetterMove:  hadBetterMove,
			IsSacrifice:    isSacrifice,
			EvalBefore:     evalBefore,
			EvalAfter:      evalAfter,
			IsOnlyGoodMove: isOnlyGoodMove,
		})

		betterMove := ""
		if hadBetterMove {
			betterMove = bestSAN
		}
		comment := Comment(classification, evalChange, betterMove, isSacrifice)

		ga.countError(classification, isWhite)
		if isCritical(classification) {
			ga.CriticalMoments = append(ga.CriticalMoments, moveNumber)
		}

		ga.Moves = append(ga.Moves, MoveAnalysis{
			MoveNumber:     moveNumber,
			Colour:         pos.Turn(),
			MoveSAN:        moveSAN,
			EvalBefore:     evalBefore,
			EvalAfter:      evalAfter,
			EvalChange:     evalChange,
			BestMove:       betterMove,
			BestEval:       bestEval,
			Classification: classification,
			Comment:        comment,
			IsCapture:      isCapture,
			IsCheck:        isCheck,
			IsSacrifice:    isSacrifice,
			FENAfter:       posAfter.String(),
		})

		prevEval = evalAfter
		if !isWhite {
			moveNumber++
		}
	}

	ga.Summary = buildSummary(ga)
	return ga, nil
}

// capturesWithMoreValuablePiece reports whether a capture gives up a more
// valuable piece than it takes. Kings count as zero: capturing with the
// king never sacrifices it.
func capturesWithMoreValuablePiece(pos *chess.Position, move *chess.Move) bool {
	b := pos.Board()
	moving := b.Piece(move.S1())
	if moving == chess.NoPiece {
		return false
	}

	capturedType := chess.Pawn // en passant captures a pawn off the target square
	if captured := b.Piece(move.S2()); captured != chess.NoPiece {
		capturedType = captured.Type()
	}

	return sacrificeValue(moving.Type()) > sacrificeValue(capturedType)
}

func sacrificeValue(t chess.PieceType) int {
	if t == chess.King {
		return 0
	}
	return board.PieceValue(t)
}

func isCritical(c Classification) bool {
	switch c {
	case Blunder, Mistake, Brilliant, Great:
		return true
	}
	return false
}

func (ga *GameAnalysis) countError(c Classification, isWhite bool) {
	switch c {
	case Blunder:
		if isWhite {
			ga.WhiteBlunders++
		} else {
			ga.BlackBlunders++
		}
	case Mistake:
		if isWhite {
			ga.WhiteMistakes++
		} else {
			ga.BlackMistakes++
		}
	case Inaccuracy:
		if isWhite {
			ga.WhiteInaccuracies++
		} else {
			ga.BlackInaccuracies++
		}
	}
}

func evaluatorFailure(err error, ply int, moveSAN string) error {
	return &apperrors.AnalysisError{
		PlyNum:   ply,
		MoveText: moveSAN,
		Err:      fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err),
	}
}

// buildSummary renders the per-colour error counts and the first five
// critical moments.
func buildSummary(ga *GameAnalysis) string {
	var b strings.Builder

	b.WriteString("Game Analysis Summary\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "White:\n  Blunders: %d\n  Mistakes: %d\n  Inaccuracies: %d\n\n",
		ga.WhiteBlunders, ga.WhiteMistakes, ga.WhiteInaccuracies)
	fmt.Fprintf(&b, "Black:\n  Blunders: %d\n  Mistakes: %d\n  Inaccuracies: %d\n",
		ga.BlackBlunders, ga.BlackMistakes, ga.BlackInaccuracies)

	var critical []MoveAnalysis
	for _, m := range ga.Moves {
		if isCritical(m.Classification) {
			critical = append(critical, m)
		}
	}
	if len(critical) > 0 {
		b.WriteString("\nCritical moments:\n")
		if len(critical) > 5 {
			critical = critical[:5]
		}
		for _, m := range critical {
			fmt.Fprintf(&b, "  Move %d. %s (%s): %s\n",
				m.MoveNumber, m.MoveSAN, colourString(m.Colour), m.Comment)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
