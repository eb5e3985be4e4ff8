// Package errors provides sentinel errors and error types for the chess
// analyzer. It defines common failure conditions and structured error types
// that preserve context while allowing error inspection with errors.Is()
// and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrEvaluatorUnavailable indicates the position evaluator could not be
	// reached or returned no result. Fatal to the current analysis call.
	ErrEvaluatorUnavailable = errors.New("position evaluator unavailable")

	// ErrInvalidGameRecord indicates the supplied game could not be parsed
	// or replayed.
	ErrInvalidGameRecord = errors.New("invalid game record")

	// ErrMalformedScore indicates an evaluator score string that is neither
	// a centipawn value nor a mate marker. Callers degrade to a neutral
	// evaluation rather than aborting.
	ErrMalformedScore = errors.New("malformed evaluator score")

	// ErrEngineNotFound indicates no UCI engine binary could be located.
	ErrEngineNotFound = errors.New("engine binary not found")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// AnalysisError wraps errors with game context: which game in a batch, the
// ply at which the failure occurred, and the move text involved. It
// implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type AnalysisError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in a batch (0 if not applicable)
	PlyNum   int    // Ply number where the error occurred (0 if not applicable)
	MoveText string // The move text involved (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *AnalysisError) Error() string {
	var parts []string

	if e.GameNum > 0 {
		parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the AnalysisError wrapper.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
