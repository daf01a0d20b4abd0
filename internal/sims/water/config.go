package water

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"water-ca/internal/core"
)

// Params holds the tunables of the leveling heuristic and of random seeding.
type Params struct {
	// MaxWaterLevel is the capacity of a single cell.
	MaxWaterLevel int
	// Margin widens the per-row potential step beyond MaxWaterLevel+1.
	Margin int
	// ThresholdGap is how much higher than the target a donor's potential
	// must be.
	ThresholdGap int
	Mode         Mode

	WallChance    float64
	PoolCount     int
	PoolRadiusMin int
	PoolRadiusMax int
}

// Config controls the water simulation dimensions and tunables.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  48,
		Height: 27,
		Seed:   1337,
		Params: Params{
			MaxWaterLevel: 16,
			Margin:        5,
			ThresholdGap:  2,
			Mode:          ModeRealtime,
			WallChance:    0.06,
			PoolCount:     3,
			PoolRadiusMin: 1,
			PoolRadiusMax: 3,
		},
	}
}

// Validate checks that the configuration can drive an engine.
func (c Config) Validate() error {
	if _, err := core.NewGrid(c.Width, c.Height); err != nil {
		return err
	}
	p := c.Params
	switch {
	case p.MaxWaterLevel < 1:
		return fmt.Errorf("%w: max_water_level %d must be at least 1", ErrInvalidConfig, p.MaxWaterLevel)
	case p.Margin < 0:
		return fmt.Errorf("%w: margin %d must not be negative", ErrInvalidConfig, p.Margin)
	case p.ThresholdGap < 2:
		return fmt.Errorf("%w: threshold_gap %d must be at least 2", ErrInvalidConfig, p.ThresholdGap)
	case !p.Mode.Valid():
		return fmt.Errorf("%w: %v", ErrInvalidMode, p.Mode)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys, unparseable and out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for key, v := range cfg {
		if set, ok := configKeys[key]; ok {
			_ = set(&c, v)
		}
	}
	c.fixRadii()
	return c
}

// ParseConfigMap is the strict form of FromMap: unknown keys and bad values
// are reported as ErrInvalidConfig and the result is validated.
func ParseConfigMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	for _, key := range sortedMapKeys(cfg) {
		set, ok := configKeys[key]
		if !ok {
			return Config{}, fmt.Errorf("%w: unknown parameter %q (known: %s)", ErrInvalidConfig, key, strings.Join(ConfigKeys(), ", "))
		}
		if err := set(&c, cfg[key]); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
		}
	}
	c.fixRadii()
	return c, c.Validate()
}

// ConfigKeys lists the keys FromMap and ParseConfigMap understand.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map is the inverse of FromMap.
func (c Config) Map() map[string]string {
	p := c.Params
	return map[string]string{
		"w":               strconv.Itoa(c.Width),
		"h":               strconv.Itoa(c.Height),
		"seed":            strconv.FormatInt(c.Seed, 10),
		"max_water_level": strconv.Itoa(p.MaxWaterLevel),
		"margin":          strconv.Itoa(p.Margin),
		"threshold_gap":   strconv.Itoa(p.ThresholdGap),
		"mode":            p.Mode.String(),
		"wall_chance":     strconv.FormatFloat(p.WallChance, 'f', -1, 64),
		"pool_count":      strconv.Itoa(p.PoolCount),
		"pool_radius_min": strconv.Itoa(p.PoolRadiusMin),
		"pool_radius_max": strconv.Itoa(p.PoolRadiusMax),
	}
}

func (c *Config) fixRadii() {
	if c.Params.PoolRadiusMax < c.Params.PoolRadiusMin {
		c.Params.PoolRadiusMax = c.Params.PoolRadiusMin
	}
}

// configSetter parses v into one field, leaving c untouched on error.
type configSetter func(c *Config, v string) error

var configKeys = map[string]configSetter{
	"w":               intField(func(c *Config) *int { return &c.Width }, 1),
	"h":               intField(func(c *Config) *int { return &c.Height }, 1),
	"max_water_level": intField(func(c *Config) *int { return &c.Params.MaxWaterLevel }, 1),
	"margin":          intField(func(c *Config) *int { return &c.Params.Margin }, 0),
	"threshold_gap":   intField(func(c *Config) *int { return &c.Params.ThresholdGap }, 2),
	"pool_count":      intField(func(c *Config) *int { return &c.Params.PoolCount }, 0),
	"pool_radius_min": intField(func(c *Config) *int { return &c.Params.PoolRadiusMin }, 0),
	"pool_radius_max": intField(func(c *Config) *int { return &c.Params.PoolRadiusMax }, 0),
	"seed": func(c *Config, v string) error {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		c.Seed = parsed
		return nil
	},
	"mode": func(c *Config, v string) error {
		parsed, err := ParseMode(v)
		if err != nil {
			return err
		}
		c.Params.Mode = parsed
		return nil
	},
	"wall_chance": func(c *Config, v string) error {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", v)
		}
		if parsed < 0 || parsed > 1 {
			return fmt.Errorf("%v not in [0,1]", parsed)
		}
		c.Params.WallChance = parsed
		return nil
	},
}

func intField(field func(c *Config) *int, least int) configSetter {
	return func(c *Config, v string) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		if parsed < least {
			return fmt.Errorf("%d is below the minimum %d", parsed, least)
		}
		*field(c) = parsed
		return nil
	}
}

func sortedMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
