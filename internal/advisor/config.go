// Package advisor implements grade prediction, difficulty scoring and
// course ranking over a normalized dataset. Every call is a pure function
// of the dataset, the profile and the config; the engine holds no state
// between calls, so one engine may serve concurrent requests.
package advisor

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default scoring weights. The values were tuned by inspection against the
// crowd-sourced sheet; treat them as data, not as something to re-derive.
const (
	// DefaultAnchorGPA is the GPA treated as typical: predictions shift up
	// or down from the class average by GPAWeight per grade point the
	// student sits away from it.
	DefaultAnchorGPA = 2.7
	DefaultGPAWeight = 0.3

	// DefaultSubjectBonus is added to the prediction when the course falls
	// in one of the student's strong subjects.
	DefaultSubjectBonus = 0.2

	DefaultBaseConfidence    = 0.3
	DefaultProfileConfidence = 0.2
	DefaultSubjectConfidence = 0.3
	DefaultFitConfidence     = 0.2

	// DefaultDifficultyPenalty scales the ranking penalty for courses far
	// from moderate difficulty.
	DefaultDifficultyPenalty = 0.1
)

// Config holds the scoring weights. Zero values are not defaulted at use
// time; build configs through DefaultConfig or the config package.
type Config struct {
	AnchorGPA float64 `koanf:"anchor_gpa" validate:"gte=0,lte=4"`
	GPAWeight float64 `koanf:"gpa_weight" validate:"gte=0,lte=1"`

	SubjectBonus float64 `koanf:"subject_bonus" validate:"gte=0,lte=1"`

	BaseConfidence    float64 `koanf:"base_confidence" validate:"gte=0,lte=1"`
	ProfileConfidence float64 `koanf:"profile_confidence" validate:"gte=0,lte=1"`
	SubjectConfidence float64 `koanf:"subject_confidence" validate:"gte=0,lte=1"`
	FitConfidence     float64 `koanf:"fit_confidence" validate:"gte=0,lte=1"`

	DifficultyPenalty float64 `koanf:"difficulty_penalty" validate:"gte=0,lte=1"`
}

// DefaultConfig returns the tuned weights.
func DefaultConfig() *Config {
	return &Config{
		AnchorGPA:         DefaultAnchorGPA,
		GPAWeight:         DefaultGPAWeight,
		SubjectBonus:      DefaultSubjectBonus,
		BaseConfidence:    DefaultBaseConfidence,
		ProfileConfidence: DefaultProfileConfidence,
		SubjectConfidence: DefaultSubjectConfidence,
		FitConfidence:     DefaultFitConfidence,
		DifficultyPenalty: DefaultDifficultyPenalty,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every weight is in range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("advisor: invalid config: %w", err)
	}
	return nil
}
