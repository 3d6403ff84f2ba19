// Package config provides configuration loading and access for the rod field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Visual modes.
const (
	ModeRods  = "rods"
	ModeLines = "lines"
)

// Noise kinds.
const (
	NoiseSimplex     = "simplex"
	NoiseOpenSimplex = "opensimplex"
)

// Config holds every tunable of the field plus the ambient shell settings.
// The knob sections are live-editable; see Store.
type Config struct {
	DeadZone     DeadZoneConfig     `yaml:"dead_zone"`
	Wave         WaveConfig         `yaml:"wave"`
	Envelope     EnvelopeConfig     `yaml:"envelope"`
	Rotation     RotationConfig     `yaml:"rotation"`
	Rod          RodConfig          `yaml:"rod"`
	Displacement DisplacementConfig `yaml:"displacement"`
	BaseNoise    BaseNoiseConfig    `yaml:"base_noise"`
	Visibility   VisibilityConfig   `yaml:"visibility"`
	Highlight    HighlightConfig    `yaml:"highlight"`
	Mouse        MouseConfig        `yaml:"mouse"`
	Grid         GridConfig         `yaml:"grid"`
	Colors       ColorsConfig       `yaml:"colors"`
	Lines        LinesConfig        `yaml:"lines"`

	Mode      string          `yaml:"mode" inspect:"skip"` // rods or lines
	Noise     NoiseConfig     `yaml:"noise" inspect:"skip"`
	Screen    ScreenConfig    `yaml:"screen" inspect:"skip"`
	Camera    CameraConfig    `yaml:"camera" inspect:"skip"`
	Telemetry TelemetryConfig `yaml:"telemetry" inspect:"skip"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// DeadZoneConfig shapes the suppressed region around the pointer.
type DeadZoneConfig struct {
	BaseRadius      float64 `yaml:"base_radius" inspect:"max:400"`
	NoiseAmplitude  float64 `yaml:"noise_amplitude" inspect:"max:200"`
	TransitionWidth float64 `yaml:"transition_width" inspect:"max:400"`
	MinVisibility   float64 `yaml:"min_visibility" inspect:"max:1"`
	WanderAmplitude float64 `yaml:"wander_amplitude" inspect:"max:200"`
	WanderSpeed1    float64 `yaml:"wander_speed1" inspect:"max:3"`
	WanderSpeed2    float64 `yaml:"wander_speed2" inspect:"max:3"`
}

// WaveConfig shapes the breathing radial pulse.
type WaveConfig struct {
	MaxRange     float64 `yaml:"max_range" inspect:"max:1500"`
	Speed        float64 `yaml:"speed" inspect:"max:5"`
	BaseWidth    float64 `yaml:"base_width" inspect:"min:1,max:600"`
	WidthNoise   float64 `yaml:"width_noise" inspect:"max:200"`
	WarpStrength float64 `yaml:"warp_strength" inspect:"max:300"`
	WarpScale1   float64 `yaml:"warp_scale1" inspect:"max:0.02"`
	WarpScale2   float64 `yaml:"warp_scale2" inspect:"max:0.05"`
	WarpSpeed1   float64 `yaml:"warp_speed1" inspect:"max:2"`
	WarpSpeed2   float64 `yaml:"warp_speed2" inspect:"max:2"`
}

// EnvelopeConfig controls the distance decay of wave energy.
type EnvelopeConfig struct {
	DecayRate float64 `yaml:"decay_rate" inspect:"max:0.01"`
	Power     float64 `yaml:"power" inspect:"max:5"`
}

// RotationConfig controls the noise wobble on top of the pointer-facing angle.
type RotationConfig struct {
	NoiseScale float64 `yaml:"noise_scale" inspect:"max:0.02"`
	NoiseSpeed float64 `yaml:"noise_speed" inspect:"max:2"`
	MaxOffset  float64 `yaml:"max_offset" inspect:"max:3.14"`
}

// RodConfig holds rod sizing. Lengths are world units.
type RodConfig struct {
	BaseLength      float64 `yaml:"base_length" inspect:"max:40"`
	MaxLengthAdd    float64 `yaml:"max_length_add" inspect:"max:80"`
	BaseThickness   float64 `yaml:"base_thickness" inspect:"max:20"`
	MaxThicknessAdd float64 `yaml:"max_thickness_add" inspect:"max:20"`
}

// DisplacementConfig controls planar push and vertical lift.
type DisplacementConfig struct {
	PushStrength float64 `yaml:"push_strength" inspect:"max:150"`
	ZLift        float64 `yaml:"z_lift" inspect:"max:300"`
}

// BaseNoiseConfig controls the shared low-frequency noise.
type BaseNoiseConfig struct {
	Scale float64 `yaml:"scale" inspect:"max:0.01"`
	Speed float64 `yaml:"speed" inspect:"max:2"`
}

// VisibilityConfig mixes the visibility floor with wave energy.
type VisibilityConfig struct {
	Base    float64 `yaml:"base" inspect:"max:1"`
	WaveMin float64 `yaml:"wave_min" inspect:"max:1"`
	WaveMax float64 `yaml:"wave_max" inspect:"max:1"`
}

// HighlightConfig brightens rods above an intensity threshold.
type HighlightConfig struct {
	Threshold float64 `yaml:"threshold" inspect:"max:1"`
	Boost     float64 `yaml:"boost" inspect:"max:3"`
}

// MouseConfig holds pointer smoothing.
type MouseConfig struct {
	LerpSpeed float64 `yaml:"lerp_speed" inspect:"min:0.01,max:1"`
}

// GridConfig holds lattice generation parameters. Changes apply on regeneration.
type GridConfig struct {
	Spacing            float64 `yaml:"spacing" inspect:"min:10,max:200"`
	Size               float64 `yaml:"size" inspect:"min:100,max:6000"`
	PositionRandomness float64 `yaml:"position_randomness" inspect:"max:1"`
	Seed               int64   `yaml:"seed" inspect:"skip"`
}

// ColorsConfig holds hex colors.
type ColorsConfig struct {
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
}

// LinesConfig holds the line-grid mode constants.
type LinesConfig struct {
	Spacing       float64 `yaml:"spacing" inspect:"min:10,max:200"`
	Resolution    float64 `yaml:"resolution" inspect:"min:2,max:50"`
	NoiseScale    float64 `yaml:"noise_scale" inspect:"max:0.01"`
	NoiseSpeed    float64 `yaml:"noise_speed" inspect:"max:2"`
	Warp          float64 `yaml:"warp" inspect:"max:300"`
	Frequency     float64 `yaml:"frequency" inspect:"max:0.1"`
	Speed         float64 `yaml:"speed" inspect:"max:10"`
	PhaseNoise    float64 `yaml:"phase_noise" inspect:"max:5"`
	FineScale     float64 `yaml:"fine_scale" inspect:"max:0.05"`
	FineSpeed     float64 `yaml:"fine_speed" inspect:"max:2"`
	FineMix       float64 `yaml:"fine_mix" inspect:"max:1"`
	DecayRate     float64 `yaml:"decay_rate" inspect:"max:0.005"`
	ZAmplitude    float64 `yaml:"z_amplitude" inspect:"max:200"`
	ContrastPower float64 `yaml:"contrast_power" inspect:"max:8"`
	BaseAlpha     float64 `yaml:"base_alpha" inspect:"max:1"`
	WhiteMix      float64 `yaml:"white_mix" inspect:"max:1"`
}

// NoiseConfig selects the noise implementation.
type NoiseConfig struct {
	Kind string `yaml:"kind"` // simplex or opensimplex
	Seed int64  `yaml:"seed"` // opensimplex only
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	MSAA      bool `yaml:"msaa"`
}

// CameraConfig holds the perspective camera looking down -z at the field plane.
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	FovY     float64 `yaml:"fov_y"` // degrees
	Near     float64 `yaml:"near"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Color      colorful.Color
	Background colorful.Color
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	col, err := colorful.Hex(c.Colors.Color)
	if err != nil {
		return fmt.Errorf("parsing colors.color %q: %w", c.Colors.Color, err)
	}
	bg, err := colorful.Hex(c.Colors.Background)
	if err != nil {
		return fmt.Errorf("parsing colors.background %q: %w", c.Colors.Background, err)
	}
	c.Derived.Color = col
	c.Derived.Background = bg

	if c.Mode == "" {
		c.Mode = ModeRods
	}
	if c.Noise.Kind == "" {
		c.Noise.Kind = NoiseSimplex
	}
	return nil
}

// Clone returns an independent copy. Config holds no reference types, so a
// value copy is enough.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// YAML returns the configuration encoded as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Store publishes immutable configuration snapshots. Writers copy, edit and
// swap; the frame loop reads one snapshot per frame so no evaluation ever sees
// a half-applied edit.
type Store struct {
	cur atomic.Pointer[Config]
}

// NewStore creates a store holding a copy of cfg.
func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.cur.Store(cfg.Clone())
	return s
}

// Snapshot returns the current configuration. Callers must not mutate it.
func (s *Store) Snapshot() *Config {
	return s.cur.Load()
}

// Update applies fn to a copy of the current configuration and publishes it.
// A color edit that fails to parse keeps the previous derived colors.
func (s *Store) Update(fn func(*Config)) {
	for {
		old := s.cur.Load()
		next := old.Clone()
		fn(next)
		if err := next.computeDerived(); err != nil {
			next.Colors = old.Colors
			next.Derived = old.Derived
		}
		if s.cur.CompareAndSwap(old, next) {
			return
		}
	}
}

// Replace publishes cfg as the current configuration.
func (s *Store) Replace(cfg *Config) {
	s.cur.Store(cfg.Clone())
}
