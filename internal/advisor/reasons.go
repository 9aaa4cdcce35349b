package advisor

import (
	"fmt"
	"math"

	"grade-advisor/internal/domain"
)

// Rule thresholds for the reason and warning generators. The rules run
// independently, in fixed order; every matching rule appends one string.
const (
	highGradeFloor   = 3.5
	highAverageFloor = 3.5
	fitReasonWindow  = 0.5
	easyCeiling      = 2.0

	hardFloor       = 3.2
	lowGradeCeiling = 2.7
	riskGPACeiling  = 3.0
	riskDifficulty  = 3.0
)

func (e *Engine) reasons(profile *domain.StudentProfile, row domain.CourseRow, grade, difficulty float64) []string {
	var reasons []string

	if grade >= highGradeFloor {
		reasons = append(reasons, fmt.Sprintf("High predicted grade (%.1f)", grade))
	}
	if row.HasAverage && row.ClassAverage >= highAverageFloor {
		reasons = append(reasons, fmt.Sprintf("Historically high class average (%.1f)", row.ClassAverage))
	}
	if profile != nil {
		if subject := row.Subject(); profile.IsStrongSubject(subject) {
			reasons = append(reasons, fmt.Sprintf("Matches your strength in %s", subject))
		}
		if math.Abs(difficulty-profile.DifficultyPreference.Numeric()) <= fitReasonWindow {
			reasons = append(reasons, "Good difficulty match for your preferences")
		}
	}
	if difficulty <= easyCeiling {
		reasons = append(reasons, "Manageable difficulty level")
	}

	return reasons
}

func (e *Engine) warnings(profile *domain.StudentProfile, grade, difficulty float64) []string {
	var warnings []string

	if difficulty >= hardFloor {
		warnings = append(warnings, "High difficulty course - plan accordingly")
	}
	if grade < lowGradeCeiling {
		warnings = append(warnings, "Below-average predicted performance")
	}
	if profile != nil && profile.CurrentGPA < riskGPACeiling && difficulty > riskDifficulty {
		warnings = append(warnings, "May be challenging given current GPA")
	}

	return warnings
}
