package domain

// CourseRow is the canonical representation of one grade-history record
// inside this service. The schema normalizer maps every raw sheet layout
// into this model, and the advisor only ever reads this model.
type CourseRow struct {
	Course string // uppercase, trimmed course code, e.g. "COMP250"

	ClassAverage float64 // historical mean grade on the 4.0 scale
	HasAverage   bool

	Credits    int
	HasCredits bool

	Term string // empty when the sheet had no term column
}

// Subject returns the row's 4-character subject prefix.
func (r CourseRow) Subject() string {
	return SubjectOf(r.Course)
}

// SubjectOf returns the leading 4 characters of a course code
// ("COMP250" -> "COMP"), or the whole code when it is shorter.
func SubjectOf(code string) string {
	if len(code) < 4 {
		return code
	}
	return code[:4]
}
