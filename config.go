package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"maxrects2d/rectpack"
)

// Config holds the packing options shared by every mode of the tool.
type Config struct {
	Width      int                `toml:"width"`
	Height     int                `toml:"height"`
	Heuristic  rectpack.Heuristic `toml:"heuristic"`
	Rotate     bool               `toml:"rotate"`
	Padding    int                `toml:"padding"`
	Online     bool               `toml:"online"`
	Sort       string             `toml:"sort"`
	Trim       bool               `toml:"trim"`
	Threshold  int                `toml:"threshold"`
	PowerOfTwo bool               `toml:"power_of_two"`
}

func defaultConfig() Config {
	return Config{
		Width:     rectpack.DefaultSize,
		Height:    rectpack.DefaultSize,
		Heuristic: rectpack.BestShortSideFit,
		Sort:      "none",
	}
}

// loadConfig overlays the TOML file at path onto base. Keys missing from the
// file keep the value they have in base.
func loadConfig(path string, base Config) (Config, error) {
	cfg := base
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("bin size must be positive (given %dx%d)", c.Width, c.Height))
	}
	if !c.Heuristic.Valid() {
		errs = append(errs, fmt.Errorf("%w: %d", rectpack.ErrUnknownHeuristic, uint8(c.Heuristic)))
	}
	if c.Padding < 0 {
		errs = append(errs, fmt.Errorf("padding must not be negative (given %d)", c.Padding))
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		errs = append(errs, fmt.Errorf("threshold must be 0-255 (given %d)", c.Threshold))
	}
	if _, err := rectpack.ParseSortFunc(c.Sort); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// newPacker builds a Packer configured from c.
func (c Config) newPacker() (*rectpack.Packer, error) {
	packer, err := rectpack.NewPacker(c.Width, c.Height, c.Heuristic)
	if err != nil {
		return nil, err
	}
	sortFunc, err := rectpack.ParseSortFunc(c.Sort)
	if err != nil {
		return nil, err
	}
	packer.AllowRotate(c.Rotate)
	packer.Sorter(sortFunc, false)
	packer.Padding = c.Padding
	packer.Online = c.Online
	return packer, nil
}
