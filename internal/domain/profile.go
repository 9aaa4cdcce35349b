package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DifficultyLevel is a student's stated appetite for hard courses.
type DifficultyLevel int

const (
	Easy DifficultyLevel = iota + 1
	Moderate
	Challenging
	VeryHard
)

func (d DifficultyLevel) String() string {
	switch d {
	case Easy:
		return "easy"
	case Moderate:
		return "moderate"
	case Challenging:
		return "challenging"
	case VeryHard:
		return "very_hard"
	default:
		return "unknown"
	}
}

// Numeric projects the level onto the same scale the difficulty scorer
// uses, so a preference and a course difficulty can be compared directly.
func (d DifficultyLevel) Numeric() float64 {
	return float64(d)
}

// ParseDifficultyLevel maps user input to a level. The empty string means
// the student did not say, which defaults to moderate.
func ParseDifficultyLevel(s string) (DifficultyLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "", "moderate":
		return Moderate, nil
	case "challenging":
		return Challenging, nil
	case "very_hard", "very-hard", "veryhard":
		return VeryHard, nil
	}
	return 0, fmt.Errorf("domain: unknown difficulty level %q", s)
}

// StudentProfile describes the student asking for predictions. The advisor
// only reads it; the owner may mutate CompletedCourses but must call
// RefreshStrongSubjects afterwards.
type StudentProfile struct {
	Name  string `json:"name"`
	Major string `json:"major,omitempty"`
	Year  int    `json:"year,omitempty" validate:"omitempty,min=1,max=7"`

	CurrentGPA float64 `json:"current_gpa" validate:"gte=0,lte=4"`
	TargetGPA  float64 `json:"target_gpa,omitempty" validate:"omitempty,gte=0,lte=4"`

	CompletedCourses []string `json:"completed_courses"`
	Interests        []string `json:"interests,omitempty"`

	DifficultyPreference DifficultyLevel `json:"difficulty_preference" validate:"min=1,max=4"`
	CreditsPerSemester   int             `json:"credits_per_semester,omitempty"`

	// StrongSubjects is derived from CompletedCourses, not set by callers.
	StrongSubjects []string `json:"strong_subjects,omitempty"`
}

// NewStudentProfile normalizes the completed course codes and derives the
// strong subjects once.
func NewStudentProfile(name string, completed []string, gpa float64, pref DifficultyLevel) *StudentProfile {
	p := &StudentProfile{
		Name:                 name,
		CurrentGPA:           gpa,
		DifficultyPreference: pref,
	}
	for _, c := range completed {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			p.CompletedCourses = append(p.CompletedCourses, c)
		}
	}
	p.RefreshStrongSubjects()
	return p
}

// strongSubjectLimit caps how many subjects count as strengths.
const strongSubjectLimit = 3

// RefreshStrongSubjects recomputes the top subjects by how often they appear
// among the completed courses. Ties break lexically so the result is stable
// across runs.
func (p *StudentProfile) RefreshStrongSubjects() {
	counts := make(map[string]int)
	for _, c := range p.CompletedCourses {
		if len(c) < 4 {
			continue
		}
		counts[c[:4]]++
	}

	subjects := make([]string, 0, len(counts))
	for s := range counts {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if counts[subjects[i]] != counts[subjects[j]] {
			return counts[subjects[i]] > counts[subjects[j]]
		}
		return subjects[i] < subjects[j]
	})

	if len(subjects) > strongSubjectLimit {
		subjects = subjects[:strongSubjectLimit]
	}
	p.StrongSubjects = subjects
}

// HasCompleted reports whether the student already took the course.
func (p *StudentProfile) HasCompleted(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range p.CompletedCourses {
		if c == code {
			return true
		}
	}
	return false
}

// IsStrongSubject reports whether the subject is among the derived strengths.
func (p *StudentProfile) IsStrongSubject(subject string) bool {
	for _, s := range p.StrongSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the field constraints (GPA range, preference range).
func (p *StudentProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("domain: invalid profile: %w", err)
	}
	return nil
}
