package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"grade-advisor/internal/domain"
)

// Recommendation report template. Keep header order EXACT.
var reportHeader = []string{
	"COURSE",
	"PREDICTED_GRADE",
	"DIFFICULTY",
	"CLASS_AVERAGE",
	"CREDITS",
	"CONFIDENCE",
	"TERM",
	"REASONS",
	"WARNINGS",
}

// WriteReportCSV writes ranked recommendations, one row per course, in
// ranking order. Reasons and warnings are joined so the row stays flat.
func WriteReportCSV(w io.Writer, recs []domain.Recommendation) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		row := []string{
			rec.Course,
			strconv.FormatFloat(rec.PredictedGrade, 'f', 2, 64),
			strconv.FormatFloat(rec.Difficulty, 'f', 1, 64),
			strconv.FormatFloat(rec.ClassAverage, 'f', 2, 64),
			strconv.Itoa(rec.Credits),
			strconv.FormatFloat(rec.Confidence, 'f', 2, 64),
			rec.Term,
			// avoid commas to keep CSV clean
			strings.Join(cleanStrings(rec.Reasons), " | "),
			strings.Join(cleanStrings(rec.Warnings), " | "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReportFile writes the report CSV to path.
func WriteReportFile(path string, recs []domain.Recommendation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReportCSV(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		// avoid newlines breaking rows
		s = strings.ReplaceAll(s, "\n", " ")
		s = strings.ReplaceAll(s, "\r", " ")
		out = append(out, s)
	}
	return out
}
