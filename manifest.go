package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"maxrects2d/rectpack"
)

// Manifest describes a packing job in YAML:
//
//	bin:
//	  width: 256
//	  height: 256
//	  rotate: false
//	heuristic: BestAreaFit
//	items:
//	  - {id: 0, width: 30, height: 20}
type Manifest struct {
	Bin struct {
		Width  int  `yaml:"width"`
		Height int  `yaml:"height"`
		Rotate bool `yaml:"rotate"`
	} `yaml:"bin"`
	Heuristic *rectpack.Heuristic `yaml:"heuristic"`
	Items     []rectpack.Item     `yaml:"items"`
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Items) == 0 {
		return errors.New("no items")
	}
	seen := make(map[int]bool, len(m.Items))
	for _, item := range m.Items {
		if seen[item.ID] {
			return fmt.Errorf("duplicate item id %d", item.ID)
		}
		seen[item.ID] = true
		if item.Width <= 0 || item.Height <= 0 {
			return fmt.Errorf("item %d: %w (given %dx%d)", item.ID, rectpack.ErrInvalidSize, item.Width, item.Height)
		}
	}
	return nil
}

// apply copies the bin settings present in the manifest onto cfg.
func (m *Manifest) apply(cfg *Config) {
	if m.Bin.Width > 0 {
		cfg.Width = m.Bin.Width
	}
	if m.Bin.Height > 0 {
		cfg.Height = m.Bin.Height
	}
	if m.Bin.Rotate {
		cfg.Rotate = true
	}
	if m.Heuristic != nil {
		cfg.Heuristic = *m.Heuristic
	}
}
