package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultConcurrency = 4

// Settings is the configuration for a monobump run.
type Settings struct {
	// Workspace forces a workspace tool ("pnpm", "npm") instead of auto-detection.
	Workspace      string `yaml:"workspace"       toml:"workspace"`
	LinkPrefix     string `yaml:"link_prefix"     toml:"link_prefix"`
	ReleaseMessage string `yaml:"release_message" toml:"release_message"`
	Concurrency    int    `yaml:"concurrency"     toml:"concurrency"`
	Changelog      bool   `yaml:"changelog"       toml:"changelog"`
	Commit         bool   `yaml:"commit"          toml:"commit"`
	Tag            bool   `yaml:"tag"             toml:"tag"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		LinkPrefix:     DefaultLinkPrefix,
		ReleaseMessage: DefaultReleaseMessage,
		Concurrency:    defaultConcurrency,
	}
}

// NewSettings reads a YAML or TOML configuration file (chosen by extension) on top of
// the defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, decodeErr := toml.Decode(string(data), settings); decodeErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", decodeErr)
		}
	default:
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// LoadSettings loads the given file, or the first config file found under root.
// A missing config file is not an error: defaults are used.
func LoadSettings(root, path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile(root)
		if err != nil {
			logger.Debugf("No config file found under %s, using defaults", root)
			return DefaultSettings(), nil //nolint:nilerr // absence means defaults
		}
		path = found
	}
	logger.Debugf("Using config file: %s", path)
	return NewSettings(path)
}

// FindConfigFile searches for a configuration file in standard locations under root.
func FindConfigFile(root string) (string, error) {
	locations := []string{
		".",
		".config",
		"configs",
	}

	patterns := []string{
		".monobump.yaml",
		".monobump.yml",
		".monobump.toml",
		"monobump.yaml",
		"monobump.yml",
		"monobump.toml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(root, loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) validate() error {
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}
	if strings.TrimSpace(s.LinkPrefix) == "" {
		return errors.New("link_prefix must not be empty")
	}
	if strings.TrimSpace(s.ReleaseMessage) == "" {
		return errors.New("release_message must not be empty")
	}
	return nil
}
