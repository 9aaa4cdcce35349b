package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseCleanCSV(t *testing.T) {
	data := []byte("Course,Class Ave,Credits\nCOMP250,3.2,3\nMATH240,3.5,3\n")

	table, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	wantHeader := []string{"Course", "Class Ave", "Credits"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("header = %v, want %v", table.Header, wantHeader)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Rows[0], []string{"COMP250", "3.2", "3"}) {
		t.Errorf("row 0 = %v", table.Rows[0])
	}
}

func TestParseQuotedCommas(t *testing.T) {
	data := []byte("Course,Notes\nCOMP250,\"hard, but fair\"\n")

	table, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := table.Rows[0][1]; got != "hard, but fair" {
		t.Errorf("quoted field = %q, want %q", got, "hard, but fair")
	}
}

func TestParseSkipsBadLines(t *testing.T) {
	// Row 2 has an unbalanced quote in the first column, which the strict
	// strategies reject outright; the skip-bad strategy drops it and keeps
	// the rest.
	data := []byte("Course,Ave\nCOMP250,3.2\n\"BROKEN,1,2,3,4\nMATH240,3.5\n")

	table, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(table.Rows) == 0 {
		t.Fatal("expected at least one surviving row")
	}
	for _, row := range table.Rows {
		if len(row) != 2 {
			t.Errorf("row %v has %d fields, want 2", row, len(row))
		}
	}
}

func TestParseSemicolonFallback(t *testing.T) {
	data := []byte("Course;Ave\nCOMP250;3.2\n")

	table, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// The comma strategies read this as single-column rows, which still
	// count as data, so the comma parse wins. The header stays intact.
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
}

func TestParseHeaderOnly(t *testing.T) {
	_, err := Parse([]byte("Course,Ave\n"))
	if !errors.Is(err, ErrNoUsableRows) {
		t.Errorf("err = %v, want ErrNoUsableRows", err)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, ErrNoUsableRows) {
		t.Errorf("err = %v, want ErrNoUsableRows", err)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "ingest: read") {
		t.Errorf("err = %v, want read wrap", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grades.csv")
	if err := os.WriteFile(path, []byte("Course,Ave\nCOMP250,3.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(table.Rows))
	}
}

func TestManualParsePadsAndTruncates(t *testing.T) {
	data := "Course,Ave,Credits\nCOMP250,3.2\nMATH240,3.5,3,extra\n\nPHYS101\n"

	table := manualParse(strings.NewReader(data))
	if table == nil {
		t.Fatal("manualParse returned nil")
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(table.Rows))
	}

	want := [][]string{
		{"COMP250", "3.2", ""},
		{"MATH240", "3.5", "3"},
		{"PHYS101", "", ""},
	}
	for i, row := range table.Rows {
		if !reflect.DeepEqual(row, want[i]) {
			t.Errorf("row %d = %v, want %v", i, row, want[i])
		}
	}
}

func TestManualParseAbortsCorruptTail(t *testing.T) {
	// A file that is still nearly empty after a thousand lines is not worth
	// scanning to the end. Data rows only start past the cutoff here, so the
	// scan stops shortly after crossing it.
	var b strings.Builder
	b.WriteString("Course,Ave\n")
	for i := 0; i < 995; i++ {
		b.WriteString("\n")
	}
	for i := 0; i < 20; i++ {
		b.WriteString("COMP250,3.2\n")
	}

	table := manualParse(strings.NewReader(b.String()))
	if table == nil {
		t.Fatal("manualParse returned nil")
	}
	if len(table.Rows) >= 20 {
		t.Errorf("rows = %d, want scan aborted before all 20", len(table.Rows))
	}
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `a,"b, c",d`, []string{"a", "b, c", "d"}},
		{"unterminated quote", `a,"b,c`, []string{"a", "b,c"}},
		{"whitespace trimmed", " a , b ", []string{"a", "b"}},
		{"empty fields", "a,,c", []string{"a", "", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitQuoted(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitQuoted(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
