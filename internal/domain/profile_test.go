package domain

import (
	"reflect"
	"testing"
)

func TestParseDifficultyLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyLevel
		wantErr bool
	}{
		{"easy", Easy, false},
		{"moderate", Moderate, false},
		{"", Moderate, false},
		{"  Challenging ", Challenging, false},
		{"very_hard", VeryHard, false},
		{"very-hard", VeryHard, false},
		{"VERYHARD", VeryHard, false},
		{"impossible", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDifficultyLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficultyLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficultyLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewStudentProfileNormalizes(t *testing.T) {
	p := NewStudentProfile("Alex", []string{" comp250 ", "MATH240", "", "  "}, 3.2, Moderate)

	want := []string{"COMP250", "MATH240"}
	if !reflect.DeepEqual(p.CompletedCourses, want) {
		t.Errorf("completed = %v, want %v", p.CompletedCourses, want)
	}
	if !p.HasCompleted("comp250") {
		t.Error("HasCompleted should match case-insensitively")
	}
	if p.HasCompleted("COMP251") {
		t.Error("HasCompleted reported an untaken course")
	}
}

func TestStrongSubjects(t *testing.T) {
	p := NewStudentProfile("", []string{
		"COMP250", "COMP251", "COMP302",
		"MATH240", "MATH241",
		"PHYS101", "PHYS102",
		"BIOL111",
	}, 3.0, Moderate)

	// COMP has 3, MATH and PHYS tie at 2 and both fit, BIOL's 1 falls off
	// the top three.
	want := []string{"COMP", "MATH", "PHYS"}
	if !reflect.DeepEqual(p.StrongSubjects, want) {
		t.Errorf("strong subjects = %v, want %v", p.StrongSubjects, want)
	}
	if !p.IsStrongSubject("COMP") {
		t.Error("COMP should be a strong subject")
	}
	if p.IsStrongSubject("BIOL") {
		t.Error("BIOL should not be a strong subject")
	}
}

func TestStrongSubjectsTieBreak(t *testing.T) {
	p := NewStudentProfile("", []string{
		"ZOOL100", "MATH100", "CHEM100", "BIOL100",
	}, 3.0, Moderate)

	// All tie at one course each; lexical order decides who makes the cut.
	want := []string{"BIOL", "CHEM", "MATH"}
	if !reflect.DeepEqual(p.StrongSubjects, want) {
		t.Errorf("strong subjects = %v, want %v", p.StrongSubjects, want)
	}
}

func TestStrongSubjectsSkipShortCodes(t *testing.T) {
	p := NewStudentProfile("", []string{"ART", "COMP250"}, 3.0, Moderate)
	if !reflect.DeepEqual(p.StrongSubjects, []string{"COMP"}) {
		t.Errorf("strong subjects = %v, want [COMP]", p.StrongSubjects)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile *StudentProfile
		wantErr bool
	}{
		{"valid", NewStudentProfile("", nil, 3.2, Moderate), false},
		{"gpa too high", NewStudentProfile("", nil, 4.5, Moderate), true},
		{"gpa negative", NewStudentProfile("", nil, -0.1, Moderate), true},
		{"no preference", &StudentProfile{CurrentGPA: 3.0}, true},
		{"bad year", &StudentProfile{CurrentGPA: 3.0, DifficultyPreference: Moderate, Year: 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.profile.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubjectOf(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"COMP250", "COMP"},
		{"MATH", "MATH"},
		{"CS1", "CS1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SubjectOf(tt.code); got != tt.want {
			t.Errorf("SubjectOf(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
