package app

import (
	"flag"
	"fmt"
	"strconv"

	"water-ca/internal/core"
	"water-ca/internal/sims/water"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	Mode     string
	Scenario string
	Paused   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := water.DefaultConfig()
	return &Config{
		Scale:  16,
		TPS:    60,
		Seed:   def.Seed,
		Width:  def.Width,
		Height: def.Height,
		Mode:   def.Params.Mode.String(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random walls and pools")
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height")
	fs.StringVar(&c.Mode, "mode", c.Mode, "stepping mode (realtime, resolution, step)")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "YAML scenario to load instead of a random world")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start paused")
}

// Engine builds the engine described by the configuration.
func (c *Config) Engine() (*water.Engine, error) {
	mode, err := water.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	if c.Scenario != "" {
		sc, err := water.LoadScenario(c.Scenario)
		if err != nil {
			return nil, err
		}
		e, err := sc.Build()
		if err != nil {
			return nil, err
		}
		if sc.Mode == "" {
			if err := e.SetMode(mode); err != nil {
				return nil, err
			}
		}
		return e, nil
	}

	sim, err := core.New("water", map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
		"mode": mode.String(),
	})
	if err != nil {
		return nil, err
	}
	e, ok := sim.(*water.Engine)
	if !ok {
		return nil, fmt.Errorf("sim %q is not a water engine", sim.Name())
	}
	return e, nil
}
