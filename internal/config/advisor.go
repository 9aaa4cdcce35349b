package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"grade-advisor/internal/advisor"
)

// LoadAdvisor builds the advisor configuration from three layers:
// built-in defaults, an optional YAML file, and ADVISOR_* environment
// variables (ADVISOR_ANCHOR_GPA overrides anchor_gpa, and so on).
// Precedence: env > file > defaults.
func LoadAdvisor(path string) (*advisor.Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(advisor.DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	envProvider := env.Provider("ADVISOR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ADVISOR_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &advisor.Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal advisor config: %w", err)
	}
	return cfg, nil
}
