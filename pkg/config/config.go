// Package config loads and validates a runner's star times.
//
// A config file records, per star, the times a runner has achieved, the
// 100 coin stars they collect together with another star, and which stars
// must be collected before others:
//
//	[times]
//	BOB1 = [31.2, 30.8]
//	DDD1 = [45.0]
//
//	[hundred_coin_times.DDD_100]
//	times = [80.5]
//	combined_with = "DDD1"
//
//	[prerequisites]
//	DDD2 = ["DDD1"]
//
// TOML is the default format. Files ending in .yaml or .yml are read as YAML
// with the same keys, and the HTTP API accepts the same shape as JSON.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/dag"
	"github.com/matzehuels/starroute/pkg/errors"
)

const (
	// DefaultPath is where the CLI looks for a config file.
	DefaultPath = "config.toml"

	// ExamplePath is the example config shipped with the repository.
	ExamplePath = "config.toml.example"
)

// HundredCoin holds the times for one 100 coin star.
type HundredCoin struct {
	Times        []float64 `toml:"times" yaml:"times" json:"times"`
	CombinedWith string    `toml:"combined_with" yaml:"combined_with" json:"combined_with"`
}

// Config is a runner's star data.
type Config struct {
	Times            map[string][]float64   `toml:"times" yaml:"times" json:"times"`
	HundredCoinTimes map[string]HundredCoin `toml:"hundred_coin_times" yaml:"hundred_coin_times" json:"hundred_coin_times"`
	Prerequisites    map[string][]string    `toml:"prerequisites" yaml:"prerequisites" json:"prerequisites"`
}

// Load reads the config at path. The format is chosen by file extension.
// A missing file yields ErrCodeConfigNotFound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err,
			"could not find config at %s; copy %s to %s and add your times", path, ExamplePath, path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseTOML(data)
	}
}

// ParseTOML decodes a TOML config. Unknown keys are rejected.
func ParseTOML(data []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	c.normalize()
	return &c, nil
}

// ParseYAML decodes a YAML config. Unknown keys are rejected.
func ParseYAML(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	c.normalize()
	return &c, nil
}

// normalize replaces missing tables with empty ones.
func (c *Config) normalize() {
	if c.Times == nil {
		c.Times = make(map[string][]float64)
	}
	if c.HundredCoinTimes == nil {
		c.HundredCoinTimes = make(map[string]HundredCoin)
	}
	if c.Prerequisites == nil {
		c.Prerequisites = make(map[string][]string)
	}
}

// Validate checks c against the stars in cat.
//
// Star IDs must exist, 100 coin stars must be combined with a regular star of
// their own course, the prerequisites must not form a cycle, and the root
// star (or its 100 coin alternative) must have times.
func (c *Config) Validate(cat *catalog.Catalog) error {
	c.normalize()

	stars := dag.NewSet(cat.StarIDs(true)...)
	courseStars := dag.NewSet(cat.StarIDs(false)...)
	hundred := dag.NewSet(cat.HundredCoinIDs()...)

	for _, id := range sortedKeys(c.Times) {
		if !stars.Has(id) {
			return errors.New(errors.ErrCodeInvalidConfig, "times: unknown star %q", id)
		}
		if err := checkTimes(id, c.Times[id]); err != nil {
			return err
		}
	}

	combined := make(map[string]string)
	for _, id := range sortedKeys(c.HundredCoinTimes) {
		h := c.HundredCoinTimes[id]
		if !hundred.Has(id) {
			return errors.New(errors.ErrCodeInvalidConfig, "hundred_coin_times: unknown 100 coin star %q", id)
		}
		if !courseStars.Has(h.CombinedWith) {
			return errors.New(errors.ErrCodeInvalidConfig, "hundred_coin_times.%s: combined_with %q is not a course star", id, h.CombinedWith)
		}
		if catalog.CourseOf(h.CombinedWith) != catalog.CourseOf(id) {
			return errors.New(errors.ErrCodeInvalidConfig, "hundred_coin_times.%s: combined_with %q is in another course", id, h.CombinedWith)
		}
		if other, ok := combined[h.CombinedWith]; ok {
			return errors.New(errors.ErrCodeInvalidConfig, "%s and %s are both combined with %s", other, id, h.CombinedWith)
		}
		combined[h.CombinedWith] = id
		if err := checkTimes(id, h.Times); err != nil {
			return err
		}
	}

	for _, id := range sortedKeys(c.Prerequisites) {
		if !stars.Has(id) {
			return errors.New(errors.ErrCodeInvalidConfig, "prerequisites: unknown star %q", id)
		}
		for _, p := range c.Prerequisites[id] {
			if !stars.Has(p) {
				return errors.New(errors.ErrCodeInvalidConfig, "prerequisites.%s: unknown star %q", id, p)
			}
		}
	}
	if _, err := dag.DetectCycle(c.Prerequisites); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "prerequisites")
	}
	if len(c.Prerequisites[catalog.RootStar]) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "prerequisites: %s cannot have prerequisites", catalog.RootStar)
	}

	if !c.HasRootTimes() {
		return errors.New(errors.ErrCodeInvalidConfig, "no times found for %s or a 100 coin alternative", catalog.RootStar)
	}
	return nil
}

// HasRootTimes reports whether the root star, or a 100 coin star combined
// with it, has times.
func (c *Config) HasRootTimes() bool {
	if len(c.Times[catalog.RootStar]) > 0 {
		return true
	}
	h, ok := c.HundredCoinTimes[catalog.RootAlternate]
	return ok && h.CombinedWith == catalog.RootStar && len(h.Times) > 0
}

func checkTimes(id string, times []float64) error {
	for _, t := range times {
		if t < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: negative time %v", id, t)
		}
	}
	return nil
}

// Alternates maps each star to the 100 coin star collected with it.
func (c *Config) Alternates() map[string]string {
	m := make(map[string]string, len(c.HundredCoinTimes))
	for id, h := range c.HundredCoinTimes {
		m[h.CombinedWith] = id
	}
	return m
}

// AverageTimes returns the mean recorded time per star, including 100 coin
// stars. Stars without times are omitted.
func (c *Config) AverageTimes() map[string]float64 {
	m := make(map[string]float64)
	for id, times := range c.Times {
		if len(times) > 0 {
			m[id] = mean(times)
		}
	}
	for id, h := range c.HundredCoinTimes {
		if len(h.Times) > 0 {
			m[id] = mean(h.Times)
		}
	}
	return m
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// String renders c as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
