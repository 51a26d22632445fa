package tech

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// fileFormat is the TOML shape of a technology file.
type fileFormat struct {
	Name        string               `toml:"name"`
	Description string               `toml:"description"`
	Layers      map[string]fileLayer `toml:"layers"`
	Rules       map[string]float64   `toml:"rules"`
}

type fileLayer struct {
	Number      int    `toml:"number"`
	Datatype    int    `toml:"datatype"`
	Description string `toml:"description"`
}

// Load reads a technology description in TOML format.
func Load(r io.Reader) (*Technology, error) {
	var f fileFormat
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode technology: %w", err)
	}
	return f.build()
}

// LoadFile reads a technology description from a TOML file.
func LoadFile(path string) (*Technology, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open technology file: %w", err)
	}
	defer file.Close()

	t, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (f *fileFormat) build() (*Technology, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("technology file is missing a name")
	}
	if len(f.Layers) == 0 {
		return nil, fmt.Errorf("technology %q defines no layers", f.Name)
	}

	layers := make(map[string]Layer, len(f.Layers))
	for role, fl := range f.Layers {
		if fl.Number < 0 || fl.Datatype < 0 {
			return nil, fmt.Errorf("technology %q: layer %q has a negative number or datatype", f.Name, role)
		}
		layers[role] = Layer{
			Name:        role,
			ID:          LayerID{Layer: fl.Number, Datatype: fl.Datatype},
			Description: fl.Description,
		}
	}

	rules := f.Rules
	if rules == nil {
		rules = map[string]float64{}
	}

	return &Technology{
		Name:        f.Name,
		Description: f.Description,
		Layers:      layers,
		Rules:       rules,
	}, nil
}
