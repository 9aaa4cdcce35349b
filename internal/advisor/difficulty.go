package advisor

import (
	"strings"

	"grade-advisor/internal/schema"
)

// Difficulty bands. The mapping from class average to difficulty is
// intentionally coarse so that small average differences don't churn the
// ranking.
const (
	DifficultyEasy         = 1.5
	DifficultyModerateEasy = 2.0
	DifficultyModerate     = 2.5
	DifficultyChallenging  = 3.0
	DifficultyVeryHard     = 3.5
)

// DifficultyScore maps a course's historical average onto one of the five
// bands. Higher averages mean lower difficulty. A course with no usable
// average lands on the moderate band.
func (e *Engine) DifficultyScore(ds *schema.Dataset, code string) float64 {
	avg, ok := ds.AverageFor(strings.ToUpper(strings.TrimSpace(code)))
	if !ok {
		return DifficultyModerate
	}
	switch {
	case avg >= 3.7:
		return DifficultyEasy
	case avg >= 3.3:
		return DifficultyModerateEasy
	case avg >= 3.0:
		return DifficultyModerate
	case avg >= 2.7:
		return DifficultyChallenging
	default:
		return DifficultyVeryHard
	}
}
