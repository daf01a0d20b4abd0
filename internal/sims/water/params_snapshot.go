package water

import (
	"strconv"

	"water-ca/internal/core"
)

// Parameters describes the engine configuration for hosts and tooling.
func (e *Engine) Parameters() core.ParameterSnapshot {
	p := e.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", e.cfg.Width),
				intParam("h", "Height", e.cfg.Height),
				int64Param("seed", "Seed", e.cfg.Seed),
			},
		},
		{
			Name: "Leveling",
			Params: []core.Parameter{
				intParam("max_water_level", "Max water level", p.MaxWaterLevel),
				intParam("margin", "Potential margin", p.Margin),
				intParam("threshold_gap", "Donor threshold gap", p.ThresholdGap),
				{Key: "mode", Label: "Stepping mode", Type: core.ParamTypeString, Value: e.mode.String()},
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				floatParam("wall_chance", "Wall chance", p.WallChance),
				intParam("pool_count", "Pool count", p.PoolCount),
				intParam("pool_radius_min", "Pool radius min", p.PoolRadiusMin),
				intParam("pool_radius_max", "Pool radius max", p.PoolRadiusMax),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
