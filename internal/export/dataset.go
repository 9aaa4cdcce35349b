package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"grade-advisor/internal/domain"
)

// Canonical dataset CSV template. Keep header order EXACT: ingest relies on
// these names when a normalized file is loaded again.
var datasetHeader = []string{
	"Course",
	"Class Ave",
	"Credits",
	"Term Name",
}

// WriteDatasetCSV writes normalized rows in the canonical layout. Absent
// averages and credits become empty cells.
func WriteDatasetCSV(w io.Writer, rows []domain.CourseRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(datasetHeader); err != nil {
		return err
	}
	for _, r := range rows {
		avg := ""
		if r.HasAverage {
			avg = strconv.FormatFloat(r.ClassAverage, 'f', -1, 64)
		}
		credits := ""
		if r.HasCredits {
			credits = strconv.Itoa(r.Credits)
		}
		if err := cw.Write([]string{r.Course, avg, credits, r.Term}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDatasetFile writes the canonical CSV to path.
func WriteDatasetFile(path string, rows []domain.CourseRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDatasetCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
