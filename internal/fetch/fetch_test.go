package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExportURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "share link",
			in:   "https://docs.google.com/spreadsheets/d/abc123/edit?usp=sharing",
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{
			name: "bare id after /d/",
			in:   "https://docs.google.com/spreadsheets/d/abc123",
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{
			name: "id with query, no path",
			in:   "https://docs.google.com/spreadsheets/d/abc123?gid=0",
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{name: "not a share url", in: "https://example.com/data.csv", wantErr: true},
		{name: "empty id", in: "https://docs.google.com/spreadsheets/d/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExportURL(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNotShareURL) {
					t.Errorf("err = %v, want ErrNotShareURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExportURL returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExportURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSVFetchesDirectURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/csv" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte("Course,Ave\nCOMP250,3.2\n"))
	}))
	defer srv.Close()

	body, err := CSV(context.Background(), srv.Client(), srv.URL+"/data.csv")
	if err != nil {
		t.Fatalf("CSV returned error: %v", err)
	}
	if string(body) != "Course,Ave\nCOMP250,3.2\n" {
		t.Errorf("body = %q", body)
	}
}

func TestCSVRewritesShareLink(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// The rewrite keeps the docs.google.com host, so point the test at the
	// already-rewritten form and check only that a /d/ URL with an export
	// suffix is fetched untouched.
	url := srv.URL + "/spreadsheets/d/abc123/export?format=csv"
	if _, err := CSV(context.Background(), srv.Client(), url); err != nil {
		t.Fatalf("CSV returned error: %v", err)
	}
	if gotPath != "/spreadsheets/d/abc123/export" || gotQuery != "format=csv" {
		t.Errorf("fetched %s?%s", gotPath, gotQuery)
	}
}
