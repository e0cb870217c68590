// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all aquarium configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Tank      TankConfig      `yaml:"tank"`
	School    SchoolConfig    `yaml:"school"`
	Flee      FleeConfig      `yaml:"flee"`
	Wander    WanderConfig    `yaml:"wander"`
	Camera    CameraConfig    `yaml:"camera"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly 3-component vector.
type Vec3 [3]float64

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`          // Fixed step for headless runs
	Epsilon    float64 `yaml:"epsilon"`     // Squared-length threshold for degenerate vectors
	WallMargin float64 `yaml:"wall_margin"` // Inward offset applied when clamping at a wall
}

// TankConfig holds the swimming volume.
type TankConfig struct {
	Min Vec3 `yaml:"min"`
	Max Vec3 `yaml:"max"`
}

// SchoolConfig holds agent creation parameters.
type SchoolConfig struct {
	Count    int     `yaml:"count"`
	Size     float64 `yaml:"size"`      // Render scale
	MinSpeed float64 `yaml:"min_speed"` // Cruise speed range lower bound
	MaxSpeed float64 `yaml:"max_speed"` // Cruise speed range upper bound
}

// FleeConfig holds threat response parameters.
type FleeConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// WanderConfig holds the idle turn jitter.
type WanderConfig struct {
	Enabled   bool    `yaml:"enabled"`
	TurnRate  float64 `yaml:"turn_rate"` // Max turn in radians per second
	Frequency float64 `yaml:"frequency"` // Noise samples per second
}

// CameraConfig holds camera placement and control parameters.
type CameraConfig struct {
	Position      Vec3    `yaml:"position"`
	Fov           float64 `yaml:"fov"` // radians
	Near          float64 `yaml:"near"`
	Far           float64 `yaml:"far"`
	Speed         float64 `yaml:"speed"`
	Sensitivity   float64 `yaml:"sensitivity"`
	FixedPosition Vec3    `yaml:"fixed_position"`
	FixedTarget   Vec3    `yaml:"fixed_target"`
}

// RendererConfig holds asset paths and lighting. Empty paths fall back to built-ins.
type RendererConfig struct {
	ModelPath      string   `yaml:"model_path"`
	TexturePath    string   `yaml:"texture_path"`
	VertexShader   string   `yaml:"vertex_shader"`
	FragmentShader string   `yaml:"fragment_shader"`
	LightPosition  Vec3     `yaml:"light_position"`
	LightColor     Vec3     `yaml:"light_color"`
	Background     [3]uint8 `yaml:"background"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	SweepPeriod         float64 `yaml:"sweep_period"` // Seconds per revolution of the scripted threat
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32
	Epsilon32   float32
	TankMin     mgl32.Vec3
	TankMax     mgl32.Vec3
	CameraPos   mgl32.Vec3
	FixedPos    mgl32.Vec3
	FixedTarget mgl32.Vec3
	Aspect      float32 // Screen.Width / Screen.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy with derived values recomputed.
func (c *Config) Clone() *Config {
	out := *c
	out.computeDerived()
	return &out
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.School.Count < 0 {
		return fmt.Errorf("school.count must be >= 0, got %d", c.School.Count)
	}
	if c.School.MinSpeed <= 0 || c.School.MaxSpeed < c.School.MinSpeed {
		return fmt.Errorf("school speed range invalid: [%g, %g]", c.School.MinSpeed, c.School.MaxSpeed)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be > 0, got %g", c.Physics.DT)
	}
	if c.Physics.Epsilon <= 0 {
		return fmt.Errorf("physics.epsilon must be > 0, got %g", c.Physics.Epsilon)
	}
	if c.Physics.WallMargin < 0 {
		return fmt.Errorf("physics.wall_margin must be >= 0, got %g", c.Physics.WallMargin)
	}
	if c.Flee.Radius < 0 || c.Flee.Strength < 0 {
		return fmt.Errorf("flee radius and strength must be >= 0, got %g and %g", c.Flee.Radius, c.Flee.Strength)
	}
	if c.Flee.MaxSpeed <= 0 {
		return fmt.Errorf("flee.max_speed must be > 0, got %g", c.Flee.MaxSpeed)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.Epsilon32 = float32(c.Physics.Epsilon)
	c.Derived.TankMin = c.Tank.Min.Vec()
	c.Derived.TankMax = c.Tank.Max.Vec()
	c.Derived.CameraPos = c.Camera.Position.Vec()
	c.Derived.FixedPos = c.Camera.FixedPosition.Vec()
	c.Derived.FixedTarget = c.Camera.FixedTarget.Vec()
	c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
}

// Vec converts to a float32 vector.
func (v Vec3) Vec() mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Fingerprint returns a stable hash of the effective configuration.
// Two runs with the same fingerprint and seed are reproducible.
func (c *Config) Fingerprint() (uint64, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("marshaling config: %w", err)
	}
	return xxhash.Sum64(data), nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
