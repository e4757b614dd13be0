// Package config holds the run configuration: defaults, YAML loading and
// validation.
//
// A Config is an explicit value passed into the pipeline; nothing here is
// process-global. Validation fails fast, before any pool is read or graph is
// built, and every failure wraps ErrInvalid.
//
// Example file:
//
//	target_count: 10000
//	sequence_length: 20
//	min_gc_fraction: 0.45
//	max_gc_fraction: 0.55
//	min_edit_distance: 8
//	strategy: min-degree-elimination
//	random_seed: 246
//	use_precomputed_edges: true
//	edges_file: edges.bin
//	workers: 0
//	distance_cache_size: 100000
//	progress_interval: 2s
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/primerlib/extract"
	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/primer"
)

// ErrInvalid classifies every configuration failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Defaults.
const (
	DefaultTargetCount = 10000
	DefaultSeed        = 246
	DefaultProgress    = 2 * time.Second
)

// Config is the full set of recognized options.
type Config struct {
	// TargetCount is the library size the run aims for. It is reported as
	// reached or not; strategies do not stop at it.
	TargetCount int `yaml:"target_count" validate:"gte=0"`

	SequenceLength int     `yaml:"sequence_length" validate:"gt=0"`
	MinGCFraction  float64 `yaml:"min_gc_fraction" validate:"gte=0,lte=1"`
	MaxGCFraction  float64 `yaml:"max_gc_fraction" validate:"gte=0,lte=1,gtefield=MinGCFraction"`

	// MinEditDistance is the pairwise threshold; 0 means round(0.4 × length).
	MinEditDistance int `yaml:"min_edit_distance" validate:"gte=0,ltefield=SequenceLength"`

	Strategy   string `yaml:"strategy" validate:"required,strategy"`
	RandomSeed int64  `yaml:"random_seed"`

	UsePrecomputedEdges bool   `yaml:"use_precomputed_edges"`
	EdgesFile           string `yaml:"edges_file" validate:"required_if=UsePrecomputedEdges true"`

	// Workers bounds parallel stages; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0"`

	// DistanceCacheSize is the LRU capacity of the greedy distance cache;
	// 0 disables caching.
	DistanceCacheSize int `yaml:"distance_cache_size" validate:"gte=0"`

	// ProgressInterval throttles progress logs; 0 disables them.
	ProgressInterval time.Duration `yaml:"progress_interval" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TargetCount:       DefaultTargetCount,
		SequenceLength:    primer.DefaultLength,
		MinGCFraction:     primer.DefaultMinGC,
		MaxGCFraction:     primer.DefaultMaxGC,
		Strategy:          string(extract.Greedy),
		RandomSeed:        DefaultSeed,
		DistanceCacheSize: levenshtein.DefaultCacheSize,
		ProgressInterval:  DefaultProgress,
	}
}

// Load reads the YAML file at path over Default(). Unknown keys are rejected.
// A missing file is an error; callers wanting defaults use Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg, keeping fields absent from data, then
// validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg.Validate()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report YAML key names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "strategy", func(fl validator.FieldLevel) bool {
		_, err := extract.ParseName(fl.Field().String())
		return err == nil
	})
	return v
}

// mustRegister panics when a custom tag cannot be registered; the validator
// is built once at package init.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("config: register %q validation: %v", tag, err))
	}
}

// Validate checks every option and cross-field rule.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "strategy":
		return fmt.Sprintf("%s: unknown strategy %q (want one of %s)", fe.Field(), fe.Value(), strategyList())
	case "required_if":
		return fmt.Sprintf("%s: required when use_precomputed_edges is true", fe.Field())
	case "gtefield":
		return fmt.Sprintf("%s: must be >= min_gc_fraction", fe.Field())
	case "ltefield":
		return fmt.Sprintf("%s: must not exceed sequence_length", fe.Field())
	case "required":
		return fmt.Sprintf("%s: required", fe.Field())
	default:
		return fmt.Sprintf("%s: must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
}

func strategyList() string {
	names := extract.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// StrategyName returns the normalized strategy; call after Validate.
func (c *Config) StrategyName() extract.Name {
	n, _ := extract.ParseName(c.Strategy)
	return n
}

// Constraints returns the per-sequence constraints.
func (c *Config) Constraints() primer.Constraints {
	return primer.Constraints{Length: c.SequenceLength, MinGC: c.MinGCFraction, MaxGC: c.MaxGCFraction}
}

// Threshold returns the pairwise minimum edit distance.
func (c *Config) Threshold() int {
	if c.MinEditDistance == 0 {
		return primer.DefaultThreshold(c.SequenceLength)
	}
	return c.MinEditDistance
}
