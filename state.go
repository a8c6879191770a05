// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

// SourceMode selects which quantity a source drives.
type SourceMode int

// Available source modes.
const (
	SourceCurrent SourceMode = iota
	SourceVoltage
)

func (m SourceMode) String() string {
	if m == SourceVoltage {
		return "VOLT"
	}
	return "CURR"
}

// Impedance is an oscilloscope channel input impedance setting.
type Impedance int

// Available channel impedances.
const (
	Fifty Impedance = iota
	HighZ
)

func (z Impedance) String() string {
	if z == HighZ {
		return "ONEM"
	}
	return "FIFT"
}

// Status tracks where a device sits in its configuration lifecycle.
type Status int

// Device lifecycle states. *RST returns to StatusReset, any
// configuring write moves to StatusConfigured, and OUTP ON/OFF toggles
// between StatusOutputEnabled and StatusConfigured.
const (
	StatusReset Status = iota
	StatusConfigured
	StatusOutputEnabled
)

func (s Status) String() string {
	switch s {
	case StatusConfigured:
		return "CONFIGURED"
	case StatusOutputEnabled:
		return "OUTPUT"
	}
	return "RESET"
}

// deviceState is the mutable record behind every mock driver. A
// driver's mutex guards it; the zero value is the *RST state.
type deviceState struct {
	status     Status
	output     bool
	mode       SourceMode
	level      float64 // programmed source value, A or V per mode
	compliance float64 // protection level, always >= 0
	pulseWidth float64 // us
	frequency  float64 // kHz
	scales     map[int]float64
	impedances map[int]Impedance
}

func newDeviceState() deviceState {
	return deviceState{
		pulseWidth: 1.0,
		frequency:  1.0,
		scales:     map[int]float64{1: 0.001, 2: 0.001, 3: 0.001, 4: 0.001},
		impedances: map[int]Impedance{1: Fifty, 2: Fifty, 3: Fifty, 4: Fifty},
	}
}

// reset restores *RST defaults.
func (s *deviceState) reset() {
	*s = newDeviceState()
}

// configured marks the device touched by a configuring write without
// disturbing an enabled output.
func (s *deviceState) configured() {
	if s.status != StatusOutputEnabled {
		s.status = StatusConfigured
	}
}

// setOutput flips the output stage on or off.
func (s *deviceState) setOutput(on bool) {
	s.output = on
	if on {
		s.status = StatusOutputEnabled
	} else {
		s.status = StatusConfigured
	}
}

// setCompliance stores a protection level, ignoring negative values
// the way firmware rejects out-of-range parameters.
func (s *deviceState) setCompliance(v float64) {
	if v < 0 {
		return
	}
	s.compliance = v
}
