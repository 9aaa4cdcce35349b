package advisor

import (
	"math"
	"sort"
	"strings"

	"grade-advisor/internal/domain"
	"grade-advisor/internal/schema"
)

// Options control one ranking request.
type Options struct {
	// Count caps the number of recommendations; zero means the default.
	Count int

	// ExcludeCompleted drops courses the profile already completed.
	// Ignored when the profile is nil.
	ExcludeCompleted bool

	// MinCredits drops courses whose recorded credits fall below it.
	// Courses with no recorded credits pass the filter.
	MinCredits int

	// Subjects restricts candidates to these subject prefixes. Empty means
	// all subjects.
	Subjects []string
}

const defaultCount = 8

// fallbackCredits is shown when the sheet carried no credit value for the
// recommended course.
const fallbackCredits = 3

// Recommend filters the dataset, scores every remaining course and returns
// the top entries by composite score. The composite is
// predicted_grade x confidence minus a small penalty for courses far from
// moderate difficulty. The sort is stable, so equal scores keep dataset
// order; two calls with identical inputs return identical output.
func (e *Engine) Recommend(ds *schema.Dataset, profile *domain.StudentProfile, opts Options) []domain.Recommendation {
	count := opts.Count
	if count <= 0 {
		count = defaultCount
	}

	subjectFilter := make(map[string]bool, len(opts.Subjects))
	for _, s := range opts.Subjects {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			subjectFilter[s] = true
		}
	}

	seen := make(map[string]bool)
	var recs []domain.Recommendation
	var scores []float64

	for _, row := range ds.Rows() {
		if seen[row.Course] {
			continue
		}
		if opts.ExcludeCompleted && profile != nil && profile.HasCompleted(row.Course) {
			continue
		}
		if len(subjectFilter) > 0 && !subjectFilter[row.Subject()] {
			continue
		}
		if row.HasCredits && row.Credits < opts.MinCredits {
			continue
		}
		seen[row.Course] = true

		grade, confidence := e.PredictGrade(ds, profile, row.Course)
		difficulty := e.DifficultyScore(ds, row.Course)

		credits := fallbackCredits
		if row.HasCredits {
			credits = row.Credits
		}
		term := row.Term
		if term == "" {
			term = "Unknown"
		}

		recs = append(recs, domain.Recommendation{
			Course:         row.Course,
			PredictedGrade: grade,
			Difficulty:     difficulty,
			ClassAverage:   row.ClassAverage,
			Credits:        credits,
			Confidence:     confidence,
			Reasons:        e.reasons(profile, row, grade, difficulty),
			Warnings:       e.warnings(profile, grade, difficulty),
			Term:           term,
		})
		scores = append(scores, grade*confidence-e.cfg.DifficultyPenalty*math.Abs(DifficultyModerate-difficulty))
	}

	order := make([]int, len(recs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > count {
		order = order[:count]
	}
	out := make([]domain.Recommendation, len(order))
	for i, idx := range order {
		out[i] = recs[idx]
	}

	e.logger.Debug().
		Int("candidates", len(recs)).
		Int("returned", len(out)).
		Msg("ranking complete")

	return out
}
