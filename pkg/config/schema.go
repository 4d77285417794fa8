// Package config loads and validates the YAML run description and resolves
// it into the typed input consumed by the refinement engine. The engine
// never sees raw configuration; everything is defaulted and checked here.
package config

// File is the top-level YAML document.
type File struct {
	Domain       DomainConfig   `yaml:"domain"`
	Refine       RefineConfig   `yaml:"refine"`
	RefineCustom []CustomConfig `yaml:"refine_custom"`
}

// DomainConfig describes the simulation region and the vertical anisotropy
// settings.
type DomainConfig struct {
	XRange         [2]float64     `yaml:"x_range"`
	YRange         [2]float64     `yaml:"y_range"`
	Height         float64        `yaml:"height"`
	Dimension      int            `yaml:"dimension"`
	AspectRatio    int            `yaml:"aspect_ratio"`
	AspectDistance float64        `yaml:"aspect_distance"`
	InflowAngle    float64        `yaml:"inflow_angle"` // degrees
	TwoTier        *TwoTierConfig `yaml:"two_tier"`
}

// TwoTierConfig blends two aspect ratios at a threshold elevation for
// custom-zone heights.
type TwoTierConfig struct {
	LowerAspect float64 `yaml:"lower_aspect"`
	UpperAspect float64 `yaml:"upper_aspect"`
	Threshold   float64 `yaml:"threshold"`
}

// RefineConfig holds the sizing scales and the turbine description.
type RefineConfig struct {
	BackgroundLengthScale float64       `yaml:"background_length_scale"`
	GlobalScale           float64       `yaml:"global_scale"`
	Placement             string        `yaml:"placement"`
	Farm                  FarmConfig    `yaml:"farm"`
	Turbine               TurbineConfig `yaml:"turbine"`
}

// FarmConfig sizes the farm-level wrapper zone.
type FarmConfig struct {
	LengthScale       float64 `yaml:"length_scale"`
	ThresholdDistance float64 `yaml:"threshold_distance"`
	Circular          bool    `yaml:"circular"`
}

// TurbineConfig holds the wake parameters shared by all turbines plus the
// per-turbine records.
type TurbineConfig struct {
	LengthScale         float64          `yaml:"length_scale"`
	UpstreamDistance    float64          `yaml:"threshold_upstream_distance"`
	DownstreamDistance  float64          `yaml:"threshold_downstream_distance"`
	RotorDistance       float64          `yaml:"threshold_rotor_distance"`
	Shudder             *float64         `yaml:"shudder"`
	HubHeight           float64          `yaml:"hub_height"`
	Instances           []TurbineInstance `yaml:"instances"`
}

// TurbineInstance is one turbine record. Wake is "x" or "y" and only
// matters for the rectangular placement strategy. Elevation overrides the
// terrain-derived hub elevation when set.
type TurbineInstance struct {
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Wake      string   `yaml:"wake"`
	Elevation *float64 `yaml:"elevation"`
}

// CustomConfig is one user-declared refinement region.
type CustomConfig struct {
	Type        string     `yaml:"type"` // box or cylinder
	XRange      [2]float64 `yaml:"x_range"`
	YRange      [2]float64 `yaml:"y_range"`
	XCenter     float64    `yaml:"x_center"`
	YCenter     float64    `yaml:"y_center"`
	Radius      float64    `yaml:"radius"`
	Height      float64    `yaml:"height"`
	LengthScale float64    `yaml:"length_scale"`
}
