package iconbadge

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings of a batch run. It can be loaded from a TOML file.
type Config struct {
	Manifest    string  `toml:"manifest"`
	Output      string  `toml:"output"`
	Source      string  `toml:"source"`
	Size        int     `toml:"size"`
	Scale       float64 `toml:"scale"`
	Border      float64 `toml:"border"`
	Supersample int     `toml:"supersample"`
	Density     float64 `toml:"density"`
	Filter      string  `toml:"filter"`
	Subpaths    string  `toml:"subpaths"`
	Workers     int     `toml:"workers"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Manifest:    "model.json",
		Output:      "Documentation/images",
		Source:      DefaultURLTemplate,
		Size:        DefaultSize,
		Scale:       DefaultIconScale,
		Supersample: DefaultSupersample,
		Density:     DefaultDensity,
		Filter:      DefaultFilter,
		Subpaths:    SubpathExplicit.String(),
		Workers:     runtime.NumCPU(),
	}
}

// LoadConfig decodes the TOML file into cfg. Keys missing from the file keep their current value.
func LoadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("unable to load the config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return nil
}

// Processor returns a Processor configured from the settings.
func (c Config) Processor(src OutlineSource) (*Processor, error) {
	mode, err := ParseSubpathMode(c.Subpaths)
	if err != nil {
		return nil, err
	}
	if _, err := ResampleFilter(c.Filter); err != nil {
		return nil, err
	}
	if c.Density < 0 {
		return nil, fmt.Errorf("invalid sampling density: %g", c.Density)
	}
	if c.Supersample < 0 {
		return nil, fmt.Errorf("invalid supersampling factor: %d", c.Supersample)
	}

	p := NewProcessor(src)
	p.Subpaths = mode
	p.Filter = c.Filter
	if c.Density > 0 {
		p.Density = c.Density
	}
	if c.Supersample > 0 {
		p.Supersample = c.Supersample
	}
	return p, nil
}

// Ops returns the batch options of the settings.
func (c Config) Ops() *Ops {
	return &Ops{
		Dst:     c.Output,
		Workers: c.Workers,
		Size:    c.Size,
		Scale:   c.Scale,
		Border:  c.Border,
	}
}
