// Package settings holds the CLI configuration. Values come from the config
// file, MICRO8_* environment variables and command line flags, in increasing
// order of precedence.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/micro8/pkg/bios"
	"github.com/Manu343726/micro8/pkg/hw/cpu/interpreter"
	"github.com/spf13/viper"
)

var ErrInvalidSettings = errors.New("invalid settings")

const EnvPrefix = "MICRO8"

// Configuration keys
const (
	KeyLogLevel    = "log.level"
	KeyLogFile     = "log.file"
	KeyCPUVerbose  = "cpu.verbose"
	KeyCPUMaxSteps = "cpu.max-steps"
	KeyCPUSlotSize = "cpu.slot-size"
)

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

type CPU struct {
	Verbose  bool `mapstructure:"verbose" yaml:"verbose"`
	MaxSteps int  `mapstructure:"max-steps" yaml:"max-steps"`
	SlotSize int  `mapstructure:"slot-size" yaml:"slot-size"`
}

type Settings struct {
	Log Log `mapstructure:"log" yaml:"log"`
	CPU CPU `mapstructure:"cpu" yaml:"cpu"`
}

// SetDefaults registers default values and environment bindings on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyCPUVerbose, false)
	v.SetDefault(KeyCPUMaxSteps, interpreter.DefaultMaxSteps)
	v.SetDefault(KeyCPUSlotSize, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the settings stored in v
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Settings) Validate() error {
	if s.CPU.MaxSteps < 0 {
		return fmt.Errorf("%w: %v must not be negative, got %d", ErrInvalidSettings, KeyCPUMaxSteps, s.CPU.MaxSteps)
	}
	if s.CPU.SlotSize < 0 {
		return fmt.Errorf("%w: %v must not be negative, got %d", ErrInvalidSettings, KeyCPUSlotSize, s.CPU.SlotSize)
	}
	if _, err := ParseLevel(s.Log.Level); err != nil {
		return err
	}

	return nil
}

// Machine returns the machine configuration described by the settings
func (s *Settings) Machine() bios.Config {
	return bios.Config{
		Verbose:  s.CPU.Verbose,
		MaxSteps: s.CPU.MaxSteps,
		SlotSize: s.CPU.SlotSize,
	}
}

var current = &Settings{
	Log: Log{Level: "warn"},
	CPU: CPU{MaxSteps: interpreter.DefaultMaxSteps},
}

// Current returns the settings loaded by the root command
func Current() *Settings {
	return current
}

// SetCurrent replaces the settings returned by Current
func SetCurrent(s *Settings) {
	current = s
}
