package domain

// Recommendation is one ranked course suggestion. Instances are built fresh
// per ranking call and never mutated afterwards.
type Recommendation struct {
	Course         string   `json:"course"`
	PredictedGrade float64  `json:"predicted_grade"`
	Difficulty     float64  `json:"difficulty"`
	ClassAverage   float64  `json:"class_average"`
	Credits        int      `json:"credits"`
	Confidence     float64  `json:"confidence"`
	Reasons        []string `json:"reasons,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Term           string   `json:"term"`
}
