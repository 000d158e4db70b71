// Package config loads the machine configuration for the plotter and its
// host tools.
package config

import (
	"encoding/json"
	"time"
)

// Config is the complete machine configuration.
type Config struct {
	// Serial link to the robot.
	Device string `json:"device"`
	Baud   int    `json:"baud"`

	// Drive geometry and timing.
	StepsPerRev  int           `json:"steps_per_rev"`
	StepDelay    time.Duration `json:"step_delay_ns"`
	AngularRatio float64       `json:"angular_ratio"`
	LinearScale  float64       `json:"linear_scale"`
	PenUpAngle   int           `json:"pen_up_angle"`
	PenDownAngle int           `json:"pen_down_angle"`

	// Drawing surface span (units square) for traced artwork.
	Span float64 `json:"span"`

	// Host-side streaming: per-line pacing for the robot's small buffer.
	LineDelay time.Duration `json:"line_delay_ns"`
}

// Load parses a JSON configuration and fills in defaults for anything
// left unset.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration for the reference chassis.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Device == "" {
		cfg.Device = "/dev/ttyUSB0"
	}
	if cfg.Baud == 0 {
		cfg.Baud = 4800
	}
	if cfg.StepsPerRev == 0 {
		cfg.StepsPerRev = 4096
	}
	if cfg.StepDelay == 0 {
		cfg.StepDelay = 2 * time.Millisecond
	}
	if cfg.AngularRatio == 0 {
		cfg.AngularRatio = 2.25
	}
	if cfg.LinearScale == 0 {
		cfg.LinearScale = 20.0584
	}
	if cfg.PenUpAngle == 0 {
		cfg.PenUpAngle = 90
	}
	if cfg.PenDownAngle == 0 {
		cfg.PenDownAngle = 10
	}
	if cfg.Span == 0 {
		cfg.Span = 305 // 12 inches in mm
	}
	if cfg.LineDelay == 0 {
		cfg.LineDelay = time.Second
	}
}
