package config

import (
	_ "embed"
)

//go:embed defaults/cybergrid.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			RunnerRepeatMS:   200,
			FireRepeatMS:     300,
			ProjectileStepMS: 100,
			NoticeMS:         2000,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.7,
			SampleRate: 44100,
		},
		Input: InputConfig{
			HoldMS: 160,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
