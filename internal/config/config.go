package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/generator"
)

// Config is the server's file configuration. Every field has a default;
// a config file only overrides what it names, and CLI flags override the
// file.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Generator GeneratorConfig `yaml:"generator"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	DataDir  string `yaml:"data_dir"`
	Solver   string `yaml:"solver"`    // backtrack | dlx
	Storage  string `yaml:"storage"`   // fs | badger
	LogLevel string `yaml:"log_level"` // debug | info | warn | error
}

// GeneratorConfig overrides the difficulty tuning table. Tiers is keyed by
// difficulty name ("easy", "medium", "hard", "expert").
type GeneratorConfig struct {
	Attempts int                   `yaml:"attempts"`
	Tiers    map[string]TierConfig `yaml:"tiers"`
}

type TierConfig struct {
	MinGivens  int `yaml:"min_givens"`
	NodeBudget int `yaml:"node_budget"`
	MinGuesses int `yaml:"min_guesses"`
	MaxGuesses int `yaml:"max_guesses"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":8080",
			DataDir:  "./data",
			Solver:   "backtrack",
			Storage:  "fs",
			LogLevel: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Tuning converts the generator section into the tuning table, starting
// from the defaults and applying only the tiers the file names.
func (c Config) Tuning() (generator.Tuning, error) {
	t := generator.DefaultTuning()
	if c.Generator.Attempts > 0 {
		t.Attempts = c.Generator.Attempts
	}
	for name, tc := range c.Generator.Tiers {
		d, err := domain.ParseDifficulty(name)
		if err != nil {
			return t, fmt.Errorf("generator.tiers: %w", err)
		}
		p := t.Tiers[d]
		if tc.MinGivens > 0 {
			p.MinGivens = tc.MinGivens
		}
		if tc.NodeBudget > 0 {
			p.NodeBudget = tc.NodeBudget
		}
		if tc.MinGuesses > 0 {
			p.MinGuesses = tc.MinGuesses
		}
		if tc.MaxGuesses != 0 {
			p.MaxGuesses = tc.MaxGuesses
		}
		t.Tiers[d] = p
	}
	return t, nil
}
