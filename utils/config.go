package utils

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-life/model"
)

const (
	DefaultRows         = 30
	DefaultCols         = 30
	DefaultTickInterval = 100 * time.Millisecond
	DefaultGenerations  = 100
	DefaultSeedPattern  = "default"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the game
type Config struct {
	Rows             int           `yaml:"rows"`
	Cols             int           `yaml:"cols"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	AliveProbability float64       `yaml:"alive_probability"`
	Parallel         bool          `yaml:"parallel"`
	Workers          int           `yaml:"workers"`
	UseMemoryPool    bool          `yaml:"use_memory_pool"`
	Seed             int64         `yaml:"seed"`
	Generations      int           `yaml:"generations"`
	SeedPattern      string        `yaml:"seed_pattern"`
	// Extra cells marked alive after the named seed pattern
	SeedCells []model.Coord `yaml:"seed_cells"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:             DefaultRows,
		Cols:             DefaultCols,
		TickInterval:     DefaultTickInterval,
		AliveProbability: model.DefaultAliveProbability,
		Parallel:         false,
		UseMemoryPool:    false,
		Seed:             0, // 0 means seed from the clock
		Generations:      DefaultGenerations,
		SeedPattern:      DefaultSeedPattern,
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid values in file: %+v", filename)
	}

	return config, nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(filename string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "[SaveConfig] failed to marshal config")
	}
	if err = os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "[SaveConfig] failed to write file: %+v", filename)
	}
	return nil
}

// WriteConfig encodes the configuration as YAML to w
func WriteConfig(w io.Writer, config Config) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(config); err != nil {
		return errors.Wrap(err, "[WriteConfig] failed to encode config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "[WriteConfig] failed to flush config")
	}
	return nil
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick_interval must be positive, got %v", c.TickInterval)
	case c.AliveProbability < 0 || c.AliveProbability > 1:
		return errors.Wrapf(ErrInvalidConfig, "alive_probability must be within [0, 1], got %v", c.AliveProbability)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative, got %d", c.Workers)
	case c.Generations < 0:
		return errors.Wrapf(ErrInvalidConfig, "generations must not be negative, got %d", c.Generations)
	}
	if c.SeedPattern != "" {
		if _, err := model.LookupPattern(c.SeedPattern); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "seed_pattern: %v", err)
		}
	}
	return nil
}

// InitialPattern returns the cells alive at startup: the named pattern followed by SeedCells
func (c Config) InitialPattern() []model.Coord {
	var cells []model.Coord
	if c.SeedPattern != "" {
		if p, err := model.LookupPattern(c.SeedPattern); err == nil {
			cells = append(cells, p...)
		}
	}
	return append(cells, c.SeedCells...)
}
