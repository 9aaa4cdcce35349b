// Package ingest recovers a tabular dataset from the crowd-sourced grade
// sheet. The sheet is hand-edited by many contributors, so the bytes that
// reach us range from clean CSV to half-quoted, mixed-delimiter wrecks.
// Parse tries a list of increasingly tolerant CSV configurations and falls
// back to a line-by-line tokenizer before giving up. Whether the recovered
// cells make sense is not checked here; that is the schema package's job.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is the raw parsed dataset: a header row plus data rows. Rows from
// the CSV strategies keep whatever width the reader produced; rows from the
// manual fallback are padded or truncated to the header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// ErrNoUsableRows is returned when every strategy, including the manual
// fallback, produced zero data rows.
var ErrNoUsableRows = errors.New("ingest: no parsing strategy produced data rows")

// strategy is one encoding/csv configuration to attempt.
type strategy struct {
	comma    rune
	lazy     bool // tolerate stray quotes
	trimLead bool
	skipBad  bool // drop lines the reader rejects instead of failing
}

// Attempt order matters: the first strategy that parses cleanly and yields
// at least one data row wins, even when a later one would have made more
// sense of the bytes.
var strategies = []strategy{
	{comma: ','},
	{comma: ',', lazy: true, trimLead: true},
	{comma: ',', lazy: true, trimLead: true, skipBad: true},
	{comma: ';', lazy: true},
	{comma: '\t', lazy: true},
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse recovers a table from raw sheet bytes.
func Parse(data []byte) (*Table, error) {
	for _, s := range strategies {
		t, err := parseWith(bytes.NewReader(data), s)
		if err != nil || len(t.Rows) == 0 {
			continue
		}
		return t, nil
	}

	t := manualParse(bytes.NewReader(data))
	if t == nil || len(t.Rows) == 0 {
		return nil, ErrNoUsableRows
	}
	return t, nil
}

func parseWith(r io.Reader, s strategy) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.comma
	cr.LazyQuotes = s.lazy
	cr.TrimLeadingSpace = s.trimLead

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	if s.skipBad {
		cr.FieldsPerRecord = len(header)
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if s.skipBad {
				continue
			}
			return nil, err
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

const (
	// manualScanLimit bounds how far the fallback scans a file that is
	// yielding almost nothing; a sheet that corrupt is not worth reading
	// to the end.
	manualScanLimit = 1000
	manualMinRows   = 10
)

// manualParse is the last-resort tokenizer: split each line on commas
// outside double quotes, treat the first non-empty line as the header, and
// pad or truncate every data line to the header width. Blank lines are
// skipped entirely.
func manualParse(r io.Reader) *Table {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var t *Table
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := splitQuoted(line)
		if t == nil {
			t = &Table{Header: fields}
			continue
		}

		for len(fields) < len(t.Header) {
			fields = append(fields, "")
		}
		fields = fields[:len(t.Header)]
		t.Rows = append(t.Rows, fields)

		if lineNum > manualScanLimit && len(t.Rows) < manualMinRows {
			break
		}
	}
	return t
}

// splitQuoted splits one line on commas, treating text between double
// quotes as a single field. A quote toggles the quoted state and is not
// kept in the output.
func splitQuoted(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
