package schema

import (
	"math"
	"reflect"
	"testing"

	"grade-advisor/internal/domain"
)

func graded(course string, avg float64) domain.CourseRow {
	return domain.CourseRow{Course: course, ClassAverage: avg, HasAverage: true}
}

func TestDatasetStats(t *testing.T) {
	ds := NewDataset([]domain.CourseRow{
		graded("COMP250", 3.0),
		graded("COMP250", 3.4),
		graded("MATH240", 2.6),
		{Course: "PHYS101"}, // no recorded average
	})

	st := ds.Stats()
	if st.Records != 4 {
		t.Errorf("records = %d, want 4", st.Records)
	}
	if st.UniqueCourses != 3 {
		t.Errorf("unique = %d, want 3", st.UniqueCourses)
	}
	if st.Graded != 3 {
		t.Errorf("graded = %d, want 3", st.Graded)
	}
	if st.Min != 2.6 || st.Max != 3.4 {
		t.Errorf("min/max = %v/%v, want 2.6/3.4", st.Min, st.Max)
	}
	if math.Abs(st.Mean-3.0) > 1e-9 {
		t.Errorf("mean = %v, want 3.0", st.Mean)
	}
	if st.Median != 3.0 {
		t.Errorf("median = %v, want 3.0", st.Median)
	}
}

func TestDatasetStatsEvenCount(t *testing.T) {
	ds := NewDataset([]domain.CourseRow{
		graded("A1", 2.0),
		graded("B1", 3.0),
		graded("C1", 3.5),
		graded("D1", 4.0),
	})
	if got := ds.Stats().Median; got != 3.25 {
		t.Errorf("median = %v, want 3.25", got)
	}
}

func TestDatasetStatsEmpty(t *testing.T) {
	st := NewDataset(nil).Stats()
	if st.Records != 0 || st.Graded != 0 || st.Mean != 0 {
		t.Errorf("empty stats = %+v", st)
	}
}

func TestSubjectCounts(t *testing.T) {
	ds := NewDataset([]domain.CourseRow{
		graded("COMP250", 3.0),
		graded("COMP251", 3.1),
		graded("MATH240", 3.2),
		graded("BIOL111", 3.3),
	})

	got := ds.SubjectCounts()
	want := []SubjectCount{
		{Subject: "COMP", Rows: 2},
		{Subject: "BIOL", Rows: 1}, // ties break lexically
		{Subject: "MATH", Rows: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}
}

func TestCoursesBySubject(t *testing.T) {
	ds := NewDataset([]domain.CourseRow{
		graded("COMP250", 3.0),
		graded("COMP250", 3.4),
		{Course: "COMP251", Credits: 3, HasCredits: true},
		graded("MATH240", 3.2),
	})

	got := ds.CoursesBySubject("comp")
	if len(got) != 2 {
		t.Fatalf("summaries = %d, want 2", len(got))
	}
	if got[0].Course != "COMP250" || !got[0].HasAverage || got[0].ClassAverage != 3.2 {
		t.Errorf("COMP250 summary = %+v", got[0])
	}
	if got[1].Course != "COMP251" || got[1].HasAverage || !got[1].HasCredits || got[1].Credits != 3 {
		t.Errorf("COMP251 summary = %+v", got[1])
	}

	if ds.CoursesBySubject("") != nil {
		t.Error("empty prefix should return nil")
	}
	if ds.CoursesBySubject("CHEM") != nil {
		t.Error("unknown prefix should return nil")
	}
}

func TestAverageForUnknown(t *testing.T) {
	ds := NewDataset([]domain.CourseRow{{Course: "COMP250"}})
	if _, ok := ds.AverageFor("COMP250"); ok {
		t.Error("AverageFor should report false when no row has an average")
	}
	if _, ok := ds.AverageFor("NOPE100"); ok {
		t.Error("AverageFor should report false for an unknown course")
	}
}
