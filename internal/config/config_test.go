package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"DATASET_PATH", "DATASET_SNAPSHOT", "ADVISOR_DB", "DATASET_SHARE_URL",
		"LOG_LEVEL", "SFTP_HOST", "SFTP_PORT", "SFTP_DIR", "SFTP_INSECURE_IGNORE_HOSTKEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load()
	if cfg.DatasetPath != "ClassAverageCrowdSourcing.csv" {
		t.Errorf("DatasetPath = %q", cfg.DatasetPath)
	}
	if cfg.DBPath != "advisor.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("SFTPPort = %d", cfg.SFTPPort)
	}
	if cfg.SFTPDir != "/inbound" {
		t.Errorf("SFTPDir = %q", cfg.SFTPDir)
	}
	if !cfg.SFTPInsecureIgnoreHostKey {
		t.Error("SFTPInsecureIgnoreHostKey should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATASET_PATH", "grades.csv")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")

	cfg := Load()
	if cfg.DatasetPath != "grades.csv" {
		t.Errorf("DatasetPath = %q", cfg.DatasetPath)
	}
	if cfg.SFTPPort != 2222 {
		t.Errorf("SFTPPort = %d", cfg.SFTPPort)
	}
	if cfg.SFTPInsecureIgnoreHostKey {
		t.Error("SFTPInsecureIgnoreHostKey should be false")
	}
}

func TestGetenvIntBadValue(t *testing.T) {
	t.Setenv("SFTP_PORT", "not a number")
	if cfg := Load(); cfg.SFTPPort != 22 {
		t.Errorf("SFTPPort = %d, want default 22", cfg.SFTPPort)
	}
}

func TestLoadAdvisorDefaults(t *testing.T) {
	cfg, err := LoadAdvisor("")
	if err != nil {
		t.Fatalf("LoadAdvisor returned error: %v", err)
	}
	if cfg.AnchorGPA != 2.7 {
		t.Errorf("AnchorGPA = %v, want 2.7", cfg.AnchorGPA)
	}
	if cfg.DifficultyPenalty != 0.1 {
		t.Errorf("DifficultyPenalty = %v, want 0.1", cfg.DifficultyPenalty)
	}
}

func TestLoadAdvisorLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.yaml")
	yaml := "anchor_gpa: 3.0\nsubject_bonus: 0.25\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADVISOR_SUBJECT_BONUS", "0.4")

	cfg, err := LoadAdvisor(path)
	if err != nil {
		t.Fatalf("LoadAdvisor returned error: %v", err)
	}
	if cfg.AnchorGPA != 3.0 {
		t.Errorf("AnchorGPA = %v, want file override 3.0", cfg.AnchorGPA)
	}
	if cfg.SubjectBonus != 0.4 {
		t.Errorf("SubjectBonus = %v, want env override 0.4", cfg.SubjectBonus)
	}
	if cfg.GPAWeight != 0.3 {
		t.Errorf("GPAWeight = %v, want default 0.3", cfg.GPAWeight)
	}
}

func TestLoadAdvisorMissingFile(t *testing.T) {
	if _, err := LoadAdvisor(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
