// Package config implements spec.md §6's configuration surface: the options
// a run of the evaluator needs (attacker budgets, program depth, the query
// row) bound to command-line flags via spf13/pflag, with an optional YAML
// override file via gopkg.in/yaml.v3 — the same two-tier shape cue-lang-cue
// and kanso favor (flags for interactive use, a file for reproducible runs).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"dtrobust/internal/training"
)

// Config is every option spec.md §6 names, plus dataset selection and log
// verbosity (ambient, not named by the core but required to run it).
type Config struct {
	Dataset string `yaml:"dataset"`
	DataDir string `yaml:"data_dir"`
	Depth   int    `yaml:"depth"`

	NumDropout int `yaml:"num_dropout"`

	NumAdd      int    `yaml:"num_add"`
	AddSensFrom string `yaml:"add_sens_from"`
	AddSensTo   string `yaml:"add_sens_to"`

	NumLabelsFlip int    `yaml:"num_labels_flip"`
	LabelSensFrom string `yaml:"label_sens_from"`
	LabelSensTo   string `yaml:"label_sens_to"`

	NumFeaturesFlip  int     `yaml:"num_features_flip"`
	FeatureFlipIndex int     `yaml:"feature_flip_index"`
	FeatureFlipAmt   float64 `yaml:"feature_flip_amt"`

	TestX string `yaml:"test_x"` // comma-separated feature vector

	Verbosity int `yaml:"verbosity"`
}

// Default returns the configuration a bare invocation runs with: depth 1,
// no perturbation budget, no feature selected for perturbation.
func Default() Config {
	return Config{
		Dataset:          "iris",
		DataDir:          "testdata/uci",
		Depth:            1,
		FeatureFlipIndex: -1,
	}
}

// LoadYAML reads and merges a YAML config file on top of c, returning the
// merged result. Fields absent from the file keep c's current value.
func LoadYAML(c Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}

// AddSens converts the add-sensitivity fields to a training.SensPair.
func (c Config) AddSens() training.SensPair {
	return sensPair(c.AddSensFrom, c.AddSensTo)
}

// LabelSens converts the label-sensitivity fields to a training.SensPair.
func (c Config) LabelSens() training.SensPair {
	return sensPair(c.LabelSensFrom, c.LabelSensTo)
}

func sensPair(from, to string) training.SensPair {
	if from == "" && to == "" {
		return training.AnySens
	}
	return training.SensPair{From: from, To: to}
}

// ParseTestX parses the comma-separated query vector. An empty string
// yields a nil vector; cmd/dtrobust then substitutes an all-zero vector of
// the schema's width.
func ParseTestX(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("config: test_x field %d (%q): %w", i, p, err)
		}
		out[i] = v
	}
	return out, nil
}
