package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Dataset locations
	DatasetPath  string
	SnapshotPath string
	DBPath       string
	ShareURL     string

	// Logging
	LogLevel string

	// SFTP drop
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

func Load() Config {
	return Config{
		DatasetPath:  getenv("DATASET_PATH", "ClassAverageCrowdSourcing.csv"),
		SnapshotPath: os.Getenv("DATASET_SNAPSHOT"),
		DBPath:       getenv("ADVISOR_DB", "advisor.db"),
		ShareURL:     os.Getenv("DATASET_SHARE_URL"),

		LogLevel: getenv("LOG_LEVEL", "info"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
