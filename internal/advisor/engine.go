package advisor

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"grade-advisor/internal/domain"
	"grade-advisor/internal/schema"
)

// Engine scores courses against a dataset and an optional student profile.
// It is safe for concurrent use; every method is a pure function of its
// arguments and the config.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger
}

// NewEngine validates the config and builds an engine. A nil config means
// the tuned defaults.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("advisor: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "advisor").Logger(),
	}, nil
}

// PredictGrade estimates the grade the student would earn in a course,
// along with a confidence score. The confidence is an additive heuristic in
// [0,1] reflecting how much profile evidence informed the estimate; it is
// not a calibrated probability. A course absent from the dataset, or one
// with no recorded average at all, yields the (0, 0) no-data sentinel. The
// profile may be nil; profile-dependent adjustments are then skipped.
func (e *Engine) PredictGrade(ds *schema.Dataset, profile *domain.StudentProfile, code string) (float64, float64) {
	code = strings.ToUpper(strings.TrimSpace(code))

	base, ok := ds.AverageFor(code)
	if !ok {
		return 0, 0
	}

	grade := base
	confidence := e.cfg.BaseConfidence

	if profile != nil {
		grade += (profile.CurrentGPA - e.cfg.AnchorGPA) * e.cfg.GPAWeight
		confidence += e.cfg.ProfileConfidence

		if profile.IsStrongSubject(domain.SubjectOf(code)) {
			grade += e.cfg.SubjectBonus
			confidence += e.cfg.SubjectConfidence
		}

		difficulty := e.DifficultyScore(ds, code)
		if math.Abs(difficulty-profile.DifficultyPreference.Numeric()) <= 1 {
			confidence += e.cfg.FitConfidence
		}
	}

	return clamp(grade, 0, 4), clamp(confidence, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
