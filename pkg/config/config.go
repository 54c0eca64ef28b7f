// Package config loads jstap's run configuration from a YAML file,
// overridable by CLI flags, mirroring onedusk-pd's internal/config.Load
// pattern (optional file, zero-value fallback, gopkg.in/yaml.v3) and
// replacing the source's utility.py module-level constants
// (NUM_WORKERS, classification threshold) with one loaded struct.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by cmd/jstap-train and cmd/jstap-classify.
type Config struct {
	// Workers is the worker-pool size, mirroring utility.py's NUM_WORKERS.
	Workers int `yaml:"workers,omitempty"`
	// FileTimeoutSeconds bounds how long one file's PDG build + feature
	// extraction may run before the orchestrator cancels it.
	FileTimeoutSeconds int `yaml:"fileTimeoutSeconds,omitempty"`
	// ModelPath is where the trained random-forest predictor process (or
	// its serialized model file, passed through to it) lives.
	ModelPath string `yaml:"modelPath,omitempty"`
	// Threshold is the malicious-probability cutoff, mirroring
	// predict_labels_using_threshold's threshold parameter.
	Threshold float64 `yaml:"threshold,omitempty"`
	// DictionaryPath is where the trained feature dictionary (see
	// pkg/featurespace) is persisted.
	DictionaryPath string `yaml:"dictionaryPath,omitempty"`
	// StorePath is the SQLite-backed persisted-PDG store's file path.
	StorePath string `yaml:"storePath,omitempty"`
	// FeatureLevel selects which of the 7 PDG-traversal feature levels to
	// extract (see pkg/features.Level).
	FeatureLevel string `yaml:"featureLevel,omitempty"`
	// NGram is the n-gram window width feature extraction uses.
	NGram int `yaml:"ngram,omitempty"`
	// Confidence is the chi-square feature-selection confidence percentage
	// (e.g. 95), mirroring features_selection.py's confidence parameter.
	Confidence float64 `yaml:"confidence,omitempty"`
}

// Default returns the configuration used when no file and no flags
// override a field.
func Default() *Config {
	return &Config{
		Workers:            2,
		FileTimeoutSeconds: 60,
		Threshold:          0.5,
		FeatureLevel:       "pdg",
		NGram:              2,
		Confidence:         95,
	}
}

// Load reads jstap.yml or jstap.yaml from dir, returning Default() (not an
// error) if neither exists, mirroring onedusk-pd's config.Load.
func Load(dir string) (*Config, error) {
	cfg := Default()
	for _, name := range []string{"jstap.yml", "jstap.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, nil
	}
	return cfg, nil
}
