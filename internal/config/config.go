package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the driver and REPL settings loaded from an optional
// YAML file. Every field has a usable default; a missing file is not an
// error.
type Config struct {
	// Prompt is the REPL prompt string.
	Prompt string `yaml:"prompt"`

	// HistoryFile is the path of the REPL history database. Empty
	// disables history persistence.
	HistoryFile string `yaml:"history_file"`

	// Color enables ANSI colors when the terminal supports them.
	Color bool `yaml:"color"`

	// ShowDisasm dumps the compiled bytecode before running a file.
	ShowDisasm bool `yaml:"show_disasm"`

	// ShowTokens dumps the token stream when inspecting non-source files.
	ShowTokens bool `yaml:"show_tokens"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Prompt:      ">> ",
		HistoryFile: defaultHistoryPath(),
		Color:       true,
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. A file that exists but does not parse is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = ">> "
	}
	return cfg, nil
}

// DefaultPath is where Load looks unless the caller overrides it.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".voltage.yaml"
	}
	return filepath.Join(home, ".voltage.yaml")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".voltage_history.db")
}
