package terrain

// Params holds tunable knobs for city generation.
type Params struct {
	// Elevation noise shaping.
	NoiseScale   float64
	NoiseOctaves int
	ElevationMax float64

	// Road grid spacing and the chance each road cell actually exists.
	RoadSpacing int
	RoadChance  float64

	// Feature counts. Houses and rock become obstacles; trees stay open.
	HouseMin   int
	HouseMax   int
	TreeMin    int
	TreeMax    int
	RockChance float64
}

// Config controls city generation dimensions and determinism.
type Config struct {
	Width  int
	Height int
	Seed   int64

	Params Params
}

// DefaultConfig returns the standard generation settings for a small city.
func DefaultConfig() Config {
	return Config{
		Width:  15,
		Height: 15,
		Seed:   1337,
		Params: Params{
			NoiseScale:   0.12,
			NoiseOctaves: 3,
			ElevationMax: 100,
			RoadSpacing:  6,
			RoadChance:   0.8,
			HouseMin:     30,
			HouseMax:     50,
			TreeMin:      20,
			TreeMax:      40,
			RockChance:   0.02,
		},
	}
}
