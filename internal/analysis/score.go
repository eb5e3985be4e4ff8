package analysis

import (
	"strconv"
	"strings"

	apperrors "github.com/chesskit/analyzer-go/internal/errors"
)

// mateEval is the evaluation assigned to mate scores, in pawns. It sits
// beyond every classification threshold.
const mateEval = 10.0

// ParseEval parses an evaluator score string into pawns from White's
// perspective. Plain numbers are pawns ("0.4", "-2.35"); mate scores use
// the "M<n>" marker with n negative when Black mates. Malformed input
// returns 0.0 together with ErrMalformedScore so callers can degrade to a
// neutral evaluation instead of aborting.
func ParseEval(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.Wrap(apperrors.ErrMalformedScore, "empty score")
	}

	if s[0] == 'M' {
		mateIn, err := strconv.Atoi(s[1:])
		if err != nil || mateIn == 0 {
			return 0, apperrors.Wrapf(apperrors.ErrMalformedScore, "bad mate marker %q", s)
		}
		if mateIn > 0 {
			return mateEval, nil
		}
		return -mateEval, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrMalformedScore, "bad score %q", s)
	}
	return v, nil
}
