// Package config persists measurement test configurations as flat
// YAML documents: sweep and pulse parameters, instrument addresses,
// channel assignments, and device-under-test metadata. A document is
// self-describing via its TestType field so a loaded file can be
// checked against the panel it is applied to.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Version written into new documents.
const Version = "1.0"

// Config is one saved test setup.
type Config struct {
	// TestType identifies the measurement panel this configuration
	// belongs to, e.g. "CW_LI", "VPulse_LI", "IPulse_LIV".
	TestType string `yaml:"test_type"`
	Version  string `yaml:"version"`

	Directories Directories `yaml:"directories,omitempty"`
	Device      Device      `yaml:"device,omitempty"`

	// Pulse is set for VPulse_*/IPulse_* tests, Sweep for CW_* tests.
	Pulse *Pulse `yaml:"pulse,omitempty"`
	Sweep *Sweep `yaml:"sweep,omitempty"`

	Instruments Instruments `yaml:"instruments,omitempty"`
}

// Directories are the output locations for plots and raw data.
type Directories struct {
	PlotDir string `yaml:"plot_dir,omitempty"`
	TxtDir  string `yaml:"txt_dir,omitempty"`
}

// Device describes the device under test.
type Device struct {
	Name        string  `yaml:"name,omitempty"`
	Dimensions  string  `yaml:"dimensions,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
	TestLaser   bool    `yaml:"test_laser,omitempty"`
}

// Pulse holds pulsed-measurement settings.
type Pulse struct {
	StepSize         float64 `yaml:"step_size,omitempty"`
	Delay            float64 `yaml:"delay,omitempty"`
	PulseWidth       float64 `yaml:"pulse_width,omitempty"`  // us
	Frequency        float64 `yaml:"frequency,omitempty"`    // kHz
	SeriesResistance float64 `yaml:"series_resistance,omitempty"`
	StartVoltage     float64 `yaml:"start_voltage,omitempty"`
	StopVoltage      float64 `yaml:"stop_voltage,omitempty"`
	StartCurrent     float64 `yaml:"start_current,omitempty"`
	StopCurrent      float64 `yaml:"stop_current,omitempty"`
	CurrentLimit     float64 `yaml:"current_limit,omitempty"`
}

// Sweep holds continuous-wave sweep settings.
type Sweep struct {
	StepSize     float64 `yaml:"step_size,omitempty"`
	NumPoints    int     `yaml:"num_of_pts,omitempty"`
	Compliance   float64 `yaml:"compliance,omitempty"`
	SweepType    string  `yaml:"sweep_type,omitempty"` // Lin, Log, Linlog
	StartVoltage float64 `yaml:"start_voltage,omitempty"`
	StopVoltage  float64 `yaml:"stop_voltage,omitempty"`
	StartCurrent float64 `yaml:"start_current,omitempty"`
	StopCurrent  float64 `yaml:"stop_current,omitempty"`
}

// Instruments holds addresses and channel assignments.
type Instruments struct {
	KeithleyAddress string `yaml:"keithley_address,omitempty"`
	PulseAddress    string `yaml:"pulse_address,omitempty"`
	ScopeAddress    string `yaml:"scope_address,omitempty"`

	CurrentChannel int `yaml:"current_channel,omitempty"`
	VoltageChannel int `yaml:"voltage_channel,omitempty"`
	LightChannel   int `yaml:"light_channel,omitempty"`
	TriggerChannel int `yaml:"trigger_channel,omitempty"`

	CurrChannelImpedance  string `yaml:"curr_channel_impedance,omitempty"`
	VoltChannelImpedance  string `yaml:"volt_channel_impedance,omitempty"`
	LightChannelImpedance string `yaml:"light_channel_impedance,omitempty"`
}

// New returns a document for the given test type with the current
// format version.
func New(testType string) *Config {
	return &Config{TestType: testType, Version: Version}
}

// Load reads a configuration document from path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return &cfg, nil
}

// Save writes the document to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config dir")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "writing config")
	}
	return nil
}

// Matches reports whether the document belongs to the given test
// type. Loading a mismatched document is allowed (some settings still
// apply) but callers should warn.
func (c *Config) Matches(testType string) bool {
	return c.TestType == testType
}
