// Package config loads the engine configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/scenecore/physics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Physics PhysicsConfig `toml:"physics"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	ObjectCapacity       int    `toml:"object_capacity"`
	DefaultScene         string `toml:"default_scene"`
	DefaultScenePath     string `toml:"default_scene_path"` // empty loads an empty scene
	SortComponentsByType bool   `toml:"sort_components_by_type"`
	FrameRate            int    `toml:"frame_rate"`
}

type PhysicsConfig struct {
	Enabled      bool       `toml:"enabled"`
	Gravity      [3]float32 `toml:"gravity"`
	GroundHeight float32    `toml:"ground_height"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json or console
}

// Load reads path on top of the defaults. Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			ObjectCapacity: 1024,
			DefaultScene:   "Default",
			FrameRate:      60,
		},
		Physics: PhysicsConfig{
			Enabled: true,
			Gravity: [3]float32{0, -9.81, 0},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	if c.Engine.ObjectCapacity <= 0 {
		return fmt.Errorf("engine.object_capacity must be positive, got %d", c.Engine.ObjectCapacity)
	}
	if c.Engine.DefaultScene == "" {
		return fmt.Errorf("engine.default_scene must not be empty")
	}
	if c.Engine.FrameRate <= 0 {
		return fmt.Errorf("engine.frame_rate must be positive, got %d", c.Engine.FrameRate)
	}
	return nil
}

// PhysicsWorld converts the physics section into the integrator's settings.
func (c PhysicsConfig) PhysicsWorld() physics.Config {
	cfg := physics.DefaultConfig()
	cfg.Gravity = mgl32.Vec3(c.Gravity)
	cfg.GroundHeight = c.GroundHeight
	return cfg
}

// NewLogger builds the process logger. The json format uses zap's production
// settings, anything else a compact colored console.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
