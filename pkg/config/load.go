package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, decodes, defaults, and validates a YAML run description.
// Unknown fields anywhere in the document are rejected.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes a YAML document from memory. See Load.
func Parse(b []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	f.applyDefaults()
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// applyDefaults fills the optional fields the way the run expects them:
// unit global scale, isotropic aspect, shudder defaulting to the rotor
// distance, farm scale defaulting to the background scale.
func (f *File) applyDefaults() {
	if f.Refine.GlobalScale == 0 {
		f.Refine.GlobalScale = 1
	}
	if f.Domain.AspectRatio == 0 {
		f.Domain.AspectRatio = 1
	}
	if f.Refine.Placement == "" {
		f.Refine.Placement = "rectangular"
	}
	if f.Refine.Turbine.Shudder == nil {
		s := f.Refine.Turbine.RotorDistance
		f.Refine.Turbine.Shudder = &s
	}
	if f.Refine.Farm.LengthScale == 0 {
		f.Refine.Farm.LengthScale = f.Refine.BackgroundLengthScale
	}
}
