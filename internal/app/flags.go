package app

import "flag"

// Config represents the command-line parameters for the GUI application.
type Config struct {
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 32, TPS: 10, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "optional YAML config file")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "engine ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the optimizer run")
}
