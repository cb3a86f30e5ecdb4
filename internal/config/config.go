// Package config provides YAML-based configuration loading for CyberGrid.
// The level table is fixed in code; this covers timing, audio and input feel.
package config

import (
	"fmt"
	"time"
)

// Config contains all tunable settings.
type Config struct {
	Timing TimingConfig `yaml:"timing"`
	Audio  AudioConfig  `yaml:"audio"`
	Input  InputConfig  `yaml:"input"`
}

// TimingConfig defines the periods of the runner and projectile timers.
type TimingConfig struct {
	RunnerRepeatMS   int `yaml:"runner_repeat_ms"`   // repeat period while a direction is held
	FireRepeatMS     int `yaml:"fire_repeat_ms"`     // repeat period while fire is held
	ProjectileStepMS int `yaml:"projectile_step_ms"` // one cell per step
	NoticeMS         int `yaml:"notice_ms"`          // how long a banner stays up
}

// RunnerRepeat returns the runner repeat period.
func (t TimingConfig) RunnerRepeat() time.Duration {
	return time.Duration(t.RunnerRepeatMS) * time.Millisecond
}

// FireRepeat returns the fire repeat period.
func (t TimingConfig) FireRepeat() time.Duration {
	return time.Duration(t.FireRepeatMS) * time.Millisecond
}

// ProjectileStep returns the projectile step period.
func (t TimingConfig) ProjectileStep() time.Duration {
	return time.Duration(t.ProjectileStepMS) * time.Millisecond
}

// Notice returns the banner display time.
func (t TimingConfig) Notice() time.Duration {
	return time.Duration(t.NoticeMS) * time.Millisecond
}

// AudioConfig defines the speaker sink.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`      // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"` // Hz
}

// InputConfig defines how terminal key presses map to held controls.
type InputConfig struct {
	// HoldMS is how long after the last key event a control still counts as
	// held. Terminals report repeats, not releases.
	HoldMS int `yaml:"hold_ms"`
}

// Hold returns the hold window.
func (i InputConfig) Hold() time.Duration {
	return time.Duration(i.HoldMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	timings := []struct {
		name string
		ms   int
	}{
		{"timing.runner_repeat_ms", c.Timing.RunnerRepeatMS},
		{"timing.fire_repeat_ms", c.Timing.FireRepeatMS},
		{"timing.projectile_step_ms", c.Timing.ProjectileStepMS},
		{"timing.notice_ms", c.Timing.NoticeMS},
		{"input.hold_ms", c.Input.HoldMS},
	}
	for _, t := range timings {
		if t.ms <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", t.name, t.ms)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}
