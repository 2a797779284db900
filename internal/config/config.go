// Package config loads tool configuration from YAML, merging an optional
// user file over embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"floodplan/internal/aco"
	"floodplan/internal/terrain"
	"floodplan/internal/water"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable the headless tools accept.
type Config struct {
	City   CityConfig   `yaml:"city"`
	Colony ColonyConfig `yaml:"colony"`
	Storm  StormConfig  `yaml:"storm"`
	Run    RunConfig    `yaml:"run"`
}

// CityConfig mirrors terrain generation settings.
type CityConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Seed         int64   `yaml:"seed"`
	NoiseScale   float64 `yaml:"noise_scale"`
	NoiseOctaves int     `yaml:"noise_octaves"`
	ElevationMax float64 `yaml:"elevation_max"`
	RoadSpacing  int     `yaml:"road_spacing"`
	RoadChance   float64 `yaml:"road_chance"`
	HouseMin     int     `yaml:"house_min"`
	HouseMax     int     `yaml:"house_max"`
	TreeMin      int     `yaml:"tree_min"`
	TreeMax      int     `yaml:"tree_max"`
	RockChance   float64 `yaml:"rock_chance"`
}

// ColonyConfig mirrors optimizer settings.
type ColonyConfig struct {
	NumAnts           int     `yaml:"num_ants"`
	Alpha             float64 `yaml:"alpha"`
	Beta              float64 `yaml:"beta"`
	EvaporationRate   float64 `yaml:"evaporation_rate"`
	PheromoneStrength float64 `yaml:"pheromone_strength"`
	DistanceWeight    float64 `yaml:"distance_weight"`
	SlopeCostWeight   float64 `yaml:"slope_cost_weight"`
	StepBudgetFactor  int     `yaml:"step_budget_factor"`
	StagnationLimit   int     `yaml:"stagnation_limit"`
}

// StormConfig mirrors water simulation settings.
type StormConfig struct {
	RainIntensity float64 `yaml:"rain_intensity"`
	DrainCapacity float64 `yaml:"drain_capacity"`
	FlowRate      float64 `yaml:"flow_rate"`
}

// RunConfig holds headless run orchestration settings.
type RunConfig struct {
	Seed          int64  `yaml:"seed"`
	Drains        int    `yaml:"drains"`
	MaxIterations int    `yaml:"max_iterations"`
	StormTicks    int    `yaml:"storm_ticks"`
	OutputDir     string `yaml:"output_dir"`
}

// Load reads configuration from a YAML file merged over the embedded
// defaults. An empty path uses defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	return cfg, nil
}

// WriteYAML saves the effective configuration alongside run output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// TerrainConfig converts the city section into generator settings.
func (c *Config) TerrainConfig() terrain.Config {
	return terrain.Config{
		Width:  c.City.Width,
		Height: c.City.Height,
		Seed:   c.City.Seed,
		Params: terrain.Params{
			NoiseScale:   c.City.NoiseScale,
			NoiseOctaves: c.City.NoiseOctaves,
			ElevationMax: c.City.ElevationMax,
			RoadSpacing:  c.City.RoadSpacing,
			RoadChance:   c.City.RoadChance,
			HouseMin:     c.City.HouseMin,
			HouseMax:     c.City.HouseMax,
			TreeMin:      c.City.TreeMin,
			TreeMax:      c.City.TreeMax,
			RockChance:   c.City.RockChance,
		},
	}
}

// ColonyParams converts the colony section into optimizer settings.
func (c *Config) ColonyParams() aco.Params {
	return aco.Params{
		NumAnts:           c.Colony.NumAnts,
		Alpha:             c.Colony.Alpha,
		Beta:              c.Colony.Beta,
		EvaporationRate:   c.Colony.EvaporationRate,
		PheromoneStrength: c.Colony.PheromoneStrength,
		DistanceWeight:    c.Colony.DistanceWeight,
		SlopeCostWeight:   c.Colony.SlopeCostWeight,
		StepBudgetFactor:  c.Colony.StepBudgetFactor,
		StagnationLimit:   c.Colony.StagnationLimit,
	}
}

// StormParams converts the storm section into simulator settings.
func (c *Config) StormParams() water.Params {
	return water.Params{
		RainIntensity: c.Storm.RainIntensity,
		DrainCapacity: c.Storm.DrainCapacity,
		FlowRate:      c.Storm.FlowRate,
	}
}
