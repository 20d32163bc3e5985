// Package config provides the evaluation options record and the loader for
// .legalmcp.yaml project-level configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file searched for from the
// working directory upward.
const ConfigFileName = ".legalmcp.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4096

	DefaultHistoryCapacity = 100

	DefaultCacheDir = ".legalmcp-cache"

	DefaultMinimumConfidence = 0.6
)

// EvaluationOptions are the recognized per-request options for a quality
// evaluation. Field names follow the wire format used by tool callers.
type EvaluationOptions struct {
	EnableDetailedScoring        bool    `json:"enableDetailedScoring" mapstructure:"enableDetailedScoring"`
	IncludeComparativeBenchmarks bool    `json:"includeComparativeBenchmarks" mapstructure:"includeComparativeBenchmarks"`
	StrictAccuracyMode           bool    `json:"strictAccuracyMode" mapstructure:"strictAccuracyMode"`
	MinimumConfidenceThreshold   float64 `json:"minimumConfidenceThreshold" mapstructure:"minimumConfidenceThreshold"`
	RequirePrecedentAnalysis     bool    `json:"requirePrecedentAnalysis" mapstructure:"requirePrecedentAnalysis"`
}

// DefaultEvaluationOptions returns the documented option defaults.
func DefaultEvaluationOptions() EvaluationOptions {
	return EvaluationOptions{
		EnableDetailedScoring:        true,
		IncludeComparativeBenchmarks: true,
		StrictAccuracyMode:           false,
		MinimumConfidenceThreshold:   DefaultMinimumConfidence,
		RequirePrecedentAnalysis:     true,
	}
}

// DecodeEvaluationOptions overlays caller-supplied option values onto the
// defaults. Unknown keys are rejected so callers notice typos instead of
// silently running with defaults.
func DecodeEvaluationOptions(raw map[string]any) (EvaluationOptions, error) {
	opts := DefaultEvaluationOptions()
	if raw == nil {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, err
	}
	if err := decoder.Decode(raw); err != nil {
		return opts, fmt.Errorf("invalid evaluation options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks option values are in range.
func (o EvaluationOptions) Validate() error {
	if o.MinimumConfidenceThreshold < 0 || o.MinimumConfidenceThreshold > 1 {
		return fmt.Errorf("minimumConfidenceThreshold %.3f outside [0, 1]", o.MinimumConfidenceThreshold)
	}
	return nil
}

// OracleConfig holds completion endpoint settings.
type OracleConfig struct {
	Model     string `yaml:"model,omitempty"`
	MaxTokens int    `yaml:"max_tokens,omitempty"`
}

// HistoryConfig holds trend history retention settings.
type HistoryConfig struct {
	Capacity int `yaml:"capacity,omitempty"`
}

// CacheConfig holds analysis cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .legalmcp.yaml.
type ProjectConfig struct {
	Oracle  OracleConfig  `yaml:"oracle,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
	Cache   CacheConfig   `yaml:"cache,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Oracle: OracleConfig{
			Model:     DefaultModel,
			MaxTokens: DefaultMaxTokens,
		},
		History: HistoryConfig{
			Capacity: DefaultHistoryCapacity,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Dir:     DefaultCacheDir,
		},
	}
}

// Load finds .legalmcp.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. If no config
// file is found, returns defaults with a nil error. Real I/O errors (e.g.
// permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .legalmcp.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Oracle.Model != "" {
		dst.Oracle.Model = src.Oracle.Model
	}
	if src.Oracle.MaxTokens != 0 {
		dst.Oracle.MaxTokens = src.Oracle.MaxTokens
	}
	if src.History.Capacity != 0 {
		dst.History.Capacity = src.History.Capacity
	}
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
}

func boolPtr(b bool) *bool {
	return &b
}
