package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the indicator and band table. It ships as a data asset
// (configs/scoring.yaml) so the scale can be tuned without a code change.
type Config struct {
	Indicators []Indicator `yaml:"indicators" json:"indicators"`
	Bands      []LevelBand `yaml:"bands" json:"bands"`
}

// Load reads and validates a scoring table from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MaxScore is the highest achievable score under this table.
func (c *Config) MaxScore() int {
	return MaxScore(c.Indicators)
}

// Export serializes the table back to YAML.
func (c *Config) Export() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the structural invariants the runtime lookups rely on:
// positive weights, ascending non-negative option values, unique keys, and
// bands tiling [0, MaxScore] contiguously with the last band unbounded or
// covering the maximum. A failure here is a fatal configuration error.
func (c *Config) Validate() error {
	if len(c.Indicators) == 0 {
		return fmt.Errorf("scoring: no indicators defined")
	}
	seen := make(map[string]bool, len(c.Indicators))
	for _, ind := range c.Indicators {
		if ind.Key == "" {
			return fmt.Errorf("scoring: indicator %q has an empty key", ind.Label)
		}
		if seen[ind.Key] {
			return fmt.Errorf("scoring: duplicate indicator key %q", ind.Key)
		}
		seen[ind.Key] = true
		if ind.Weight <= 0 {
			return fmt.Errorf("scoring: indicator %q has non-positive weight %d", ind.Key, ind.Weight)
		}
		if len(ind.Options) == 0 {
			return fmt.Errorf("scoring: indicator %q has no options", ind.Key)
		}
		prev := -1
		for _, o := range ind.Options {
			if o.Value < 0 || o.Points < 0 {
				return fmt.Errorf("scoring: indicator %q has a negative option", ind.Key)
			}
			if o.Value <= prev {
				return fmt.Errorf("scoring: indicator %q options not strictly ascending", ind.Key)
			}
			prev = o.Value
		}
	}

	if len(c.Bands) == 0 {
		return fmt.Errorf("scoring: no level bands defined")
	}
	if c.Bands[0].Min != 0 {
		return fmt.Errorf("scoring: first band must start at 0, got %d", c.Bands[0].Min)
	}
	for i, b := range c.Bands {
		if b.Label == "" {
			return fmt.Errorf("scoring: band %d has an empty label", i)
		}
		if i < len(c.Bands)-1 {
			if b.Max < b.Min {
				return fmt.Errorf("scoring: band %q has max %d below min %d", b.Label, b.Max, b.Min)
			}
			next := c.Bands[i+1]
			if next.Min != b.Max+1 {
				return fmt.Errorf("scoring: gap or overlap between bands %q and %q", b.Label, next.Label)
			}
		}
	}
	last := c.Bands[len(c.Bands)-1]
	if !last.Unbounded() && last.Max < c.MaxScore() {
		return fmt.Errorf("scoring: last band %q ends at %d but max achievable score is %d", last.Label, last.Max, c.MaxScore())
	}
	return nil
}

// Default is the table observed in production. Option points duplicate values
// on purpose; see Option.
func Default() *Config {
	freq := []Option{
		{Value: 0, Points: 0, Label: "Jamais"},
		{Value: 1, Points: 1, Label: "Parfois"},
		{Value: 2, Points: 2, Label: "Souvent"},
		{Value: 3, Points: 3, Label: "Toujours"},
	}
	return &Config{
		Indicators: []Indicator{
			{Key: "culte", Label: "Présence au culte", Weight: 3, Options: freq},
			{Key: "bergerie", Label: "Présence à la bergerie", Weight: 3, Options: freq},
			{Key: "priere", Label: "Vie de prière", Weight: 2, Options: freq},
			{Key: "offrande", Label: "Offrandes et dîmes", Weight: 2, Options: []Option{
				{Value: 0, Points: 0, Label: "Jamais"},
				{Value: 1, Points: 1, Label: "Occasionnelle"},
				{Value: 2, Points: 2, Label: "Régulière"},
			}},
			{Key: "formation", Label: "Formation des disciples", Weight: 2, Options: []Option{
				{Value: 0, Points: 0, Label: "Non commencée"},
				{Value: 1, Points: 1, Label: "En cours"},
				{Value: 2, Points: 2, Label: "Achevée"},
			}},
			{Key: "service", Label: "Service dans un département", Weight: 1, Options: []Option{
				{Value: 0, Points: 0, Label: "Aucun"},
				{Value: 1, Points: 1, Label: "Ponctuel"},
				{Value: 2, Points: 2, Label: "Engagé"},
			}},
			{Key: "evangelisation", Label: "Évangélisation", Weight: 1, Options: []Option{
				{Value: 0, Points: 0, Label: "Jamais"},
				{Value: 1, Points: 1, Label: "Parfois"},
				{Value: 2, Points: 2, Label: "Régulière"},
			}},
		},
		Bands: []LevelBand{
			{Min: 0, Max: 9, Label: "En éveil", Color: "#9e9e9e"},
			{Min: 10, Max: 18, Label: "En croissance", Color: "#2196f3"},
			{Min: 19, Max: 27, Label: "Engagé", Color: "#4caf50"},
			{Min: 28, Max: -1, Label: "Confirmé", Color: "#ff9800"},
		},
	}
}
