// Package config loads run settings for the gridgeom command from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/notargets/gridgeom/partitions"
)

type Output struct {
	Format string `yaml:"format" default:"yaml" validate:"oneof=yaml json"`
	Path   string `yaml:"path"` // empty writes to stdout
}

// Config controls how the geometry passes run and where results go
type Config struct {
	// Workers is the number of goroutines per pass, 1 runs serially
	Workers int `yaml:"workers" default:"1" validate:"min=1,max=1024"`
	// PartitionSize is the target number of elements per work partition, 0 picks one
	PartitionSize int    `yaml:"partition_size" validate:"min=0"`
	Strategy      string `yaml:"strategy" default:"block" validate:"oneof=block roundrobin round-robin weighted"`
	LogLevel      string `yaml:"log_level" default:"info" validate:"oneof=debug info warn error"`
	Output        Output `yaml:"output"`
	// ClosureTolerance bounds the relative closure residual accepted by check
	ClosureTolerance float64 `yaml:"closure_tolerance" default:"1e-10" validate:"gt=0"`
}

var validate = validator.New()

// Default returns a Config with every default applied
func Default() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		panic(err)
	}
	return c
}

// Load reads path, fills unset fields with defaults and validates the
// result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config: invalid YAML in %s: %w", path, err)
		}
	}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("config: applying defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate normalises the spelling of enumerated fields and checks field
// ranges; call it again after overriding fields
func (c *Config) Validate() error {
	c.Strategy = strings.ToLower(strings.TrimSpace(c.Strategy))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// PartitionStrategy maps Strategy onto the partitions package
func (c *Config) PartitionStrategy() (partitions.PartitionStrategy, error) {
	return partitions.ParseStrategy(c.Strategy)
}
