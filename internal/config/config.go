// Package config handles qaoatn configuration loading.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeta1999/quantum-optimization/gate"
	"github.com/zeta1999/quantum-optimization/qaoa"
	"github.com/zeta1999/quantum-optimization/tree"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Problem       ProblemConfig `yaml:"problem"`
	Sweep         SweepConfig   `yaml:"sweep"`
	Logging       LogConfig     `yaml:"logging"`
	GateCacheSize int           `yaml:"gate_cache_size"`
}

// ProblemConfig describes the tree and the QAOA circuit on it.
type ProblemConfig struct {
	Degree int       `yaml:"degree"`
	Depth  int       `yaml:"depth"`
	Betas  []float64 `yaml:"betas"`
	Gammas []float64 `yaml:"gammas"`

	// Observables maps a dotted branch path to a Pauli name. The empty
	// path is the root, "1.0" is child 0 of the root's child 1.
	Observables map[string]string `yaml:"observables"`
}

// SweepConfig is a grid over the angles of a one-layer circuit.
type SweepConfig struct {
	Beta    RangeConfig `yaml:"beta"`
	Gamma   RangeConfig `yaml:"gamma"`
	Workers int         `yaml:"workers"`
}

// RangeConfig is Steps evenly spaced values from Min to Max inclusive.
type RangeConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	Path  string `yaml:"path"` // empty logs to stderr
}

// Default returns the default configuration: X on the root of a two-layer
// circuit on the depth-2 tree of a 3-regular graph.
func Default() *Config {
	return &Config{
		Problem: ProblemConfig{
			Degree:      3,
			Depth:       2,
			Betas:       []float64{0.9, -0.4},
			Gammas:      []float64{1.3, 0.25},
			Observables: map[string]string{"": "X"},
		},
		Sweep: SweepConfig{
			Beta:    RangeConfig{Min: 0, Max: 1.5, Steps: 7},
			Gamma:   RangeConfig{Min: 0, Max: 1.5, Steps: 7},
			Workers: 4,
		},
		GateCacheSize: gate.DefaultCacheSize,
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	// yaml merges into existing maps; observables replace the default
	defaults := cfg.Problem.Observables
	cfg.Problem.Observables = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if cfg.Problem.Observables == nil {
		cfg.Problem.Observables = defaults
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Validate checks the ranges of every setting.
func (c *Config) Validate() error {
	p := c.Problem
	switch {
	case p.Degree < 2:
		return errors.Wrapf(ErrInvalid, "degree %d < 2", p.Degree)
	case p.Depth < 1:
		return errors.Wrapf(ErrInvalid, "depth %d < 1", p.Depth)
	case len(p.Betas) == 0 || len(p.Betas) != len(p.Gammas):
		return errors.Wrapf(ErrInvalid, "%d betas, %d gammas", len(p.Betas), len(p.Gammas))
	case c.Sweep.Beta.Steps < 1 || c.Sweep.Gamma.Steps < 1:
		return errors.Wrap(ErrInvalid, "sweep needs at least one step per angle")
	case c.Sweep.Workers < 1:
		return errors.Wrapf(ErrInvalid, "workers %d < 1", c.Sweep.Workers)
	case c.GateCacheSize < 1:
		return errors.Wrapf(ErrInvalid, "gate cache size %d < 1", c.GateCacheSize)
	}
	for _, path := range p.ObservablePaths() {
		if _, err := ParsePath(path); err != nil {
			return err
		}
		if _, err := gate.Named(p.Observables[path]); err != nil {
			return errors.Wrapf(err, "observable at %q", path)
		}
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}
	_, err = p.Operators(t)
	return err
}

// Tree builds the problem's regular tree.
func (p ProblemConfig) Tree() (*tree.Tree, error) {
	return tree.RegularPrefix(p.Degree, p.Depth)
}

// Operators resolves the observables against t. Observables a circuit of
// len(p.Betas) layers cannot evaluate fail with qaoa.ErrOutOfReach.
func (p ProblemConfig) Operators(t *tree.Tree) (qaoa.Operators, error) {
	ops := make(qaoa.Operators, len(p.Observables))
	for _, path := range p.ObservablePaths() {
		name := p.Observables[path]
		labels, err := ParsePath(path)
		if err != nil {
			return nil, err
		}
		n, err := t.Resolve(labels)
		if err != nil {
			return nil, errors.Wrapf(err, "observable at %q", path)
		}
		m, err := gate.Named(name)
		if err != nil {
			return nil, errors.Wrapf(err, "observable at %q", path)
		}
		ops[n] = m
	}
	if err := ops.CheckReach(t, len(p.Betas)); err != nil {
		return nil, err
	}
	return ops, nil
}

// ObservablePaths returns the configured observable paths in sorted order.
func (p ProblemConfig) ObservablePaths() []string {
	paths := make([]string, 0, len(p.Observables))
	for path := range p.Observables {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// ParsePath parses a dotted branch path such as "1.0". The empty string is
// the root.
func ParsePath(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	path := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, errors.Wrapf(ErrInvalid, "bad branch label %q in path %q", part, s)
		}
		path[i] = v
	}
	return path, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Values returns the grid points of r.
func (r RangeConfig) Values() []float64 {
	if r.Steps <= 1 {
		return []float64{r.Min}
	}
	out := make([]float64, r.Steps)
	step := (r.Max - r.Min) / float64(r.Steps-1)
	for i := range out {
		out[i] = r.Min + float64(i)*step
	}
	out[len(out)-1] = r.Max
	return out
}
