package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL = "http://localhost:5000"
	EnvAPIURL     = "LEARNHUB_API_URL"
	fileName      = "config.yaml"
)

type Config struct {
	StateDir   string
	DBPath     string
	LogPath    string
	APIURL     string
	APITimeout time.Duration
	// AskLearningStyle adds the fourth onboarding step.
	AskLearningStyle bool
}

type fileConfig struct {
	API struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Onboarding struct {
		AskLearningStyle *bool `yaml:"ask_learning_style"`
	} `yaml:"onboarding"`
}

// New resolves configuration with precedence flag > env > config.yaml > default.
func New(stateDir, apiURLFlag string) (Config, error) {
	if stateDir == "" {
		return Config{}, fmt.Errorf("state path is required")
	}
	cfg := Config{
		StateDir:         stateDir,
		DBPath:           filepath.Join(stateDir, "state.db"),
		LogPath:          filepath.Join(stateDir, "learnhub.log"),
		APIURL:           DefaultAPIURL,
		AskLearningStyle: true,
	}

	fc, err := readFile(filepath.Join(stateDir, fileName))
	if err != nil {
		return Config{}, err
	}
	if fc.API.URL != "" {
		cfg.APIURL = fc.API.URL
	}
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse api.timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("api.timeout must be non-negative")
		}
		cfg.APITimeout = d
	}
	if fc.Onboarding.AskLearningStyle != nil {
		cfg.AskLearningStyle = *fc.Onboarding.AskLearningStyle
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(apiURLFlag); v != "" {
		cfg.APIURL = v
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}

// DefaultStateDir is ~/.learnhub, or .learnhub when no home is available.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".learnhub"
	}
	return filepath.Join(home, ".learnhub")
}

func readFile(path string) (fileConfig, error) {
	fc := fileConfig{}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("decode config: %w", err)
	}
	return fc, nil
}
