// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

import (
	"sync"

	"github.com/gotmc/visamock/lib/scpi"
)

// defaultTemperature is the TEC setpoint after power-on or *RST, in C.
const defaultTemperature = 25.0

// GenericInstrument is the fallback for addresses that match no known
// device pattern. It identifies itself, answers "0" to anything it
// does not understand, and carries the LDC-3724B temperature
// controller command subset so the TEC panel works against the mock
// bench.
type GenericInstrument struct {
	mu       sync.Mutex
	addr     string
	state    deviceState
	temp     float64
	tecOut   bool
	tecGain  float64
	settings map[string]string
}

// NewGenericInstrument returns a generic instrument at the given
// address.
func NewGenericInstrument(addr string) *GenericInstrument {
	return &GenericInstrument{
		addr:     addr,
		state:    newDeviceState(),
		temp:     defaultTemperature,
		tecGain:  1,
		settings: make(map[string]string),
	}
}

// Write applies the TEC subset and otherwise records the command so a
// later query sees that the setting landed.
func (g *GenericInstrument) Write(raw string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, cmd := range scpi.ParseLine(raw) {
		switch {
		case cmd.Is("*RST"):
			g.state.reset()
			g.temp = defaultTemperature
			g.tecOut = false
			g.tecGain = 1
			g.settings = make(map[string]string)
		case cmd.Is("*CLS"):
		case cmd.Is("TEC:T") && cmd.HasValue:
			g.temp = cmd.Value
			g.state.configured()
		case cmd.Is("TEC:GAIN") && cmd.HasValue:
			g.tecGain = cmd.Value
			g.state.configured()
		case cmd.Is("TEC:OUT"):
			if on, ok := parseOnOff(cmd.Arg); ok {
				g.tecOut = on
				g.state.setOutput(on)
			}
		case cmd.Is("OUTP"):
			if on, ok := parseOnOff(cmd.Arg); ok {
				g.state.setOutput(on)
			}
		default:
			g.settings[cmd.Verb] = cmd.Arg
			g.state.configured()
		}
	}
	return nil
}

// Query answers *IDN? and the TEC readbacks; everything else echoes
// "0" so callers that poll unknown instruments never wedge.
func (g *GenericInstrument) Query(raw string) (string, error) {
	cmd := scpi.Parse(raw)

	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case cmd.Is("*IDN?"):
		return idnString, nil
	case cmd.Is("TEC:T?"):
		// The loop holds near the setpoint with a little ripple.
		return formatFloat(g.temp + gauss(0.05)), nil
	case cmd.Is("TEC:OUT?"):
		return onOffString(g.tecOut), nil
	case cmd.Is("TEC:GAIN?"):
		return formatFloat(g.tecGain), nil
	case cmd.Is("OUTP?"):
		return onOffString(g.state.output), nil
	}
	return "0", nil
}

// QueryValues has no series data to offer on a generic instrument.
func (g *GenericInstrument) QueryValues(raw string) ([]float64, error) {
	return []float64{0}, nil
}

// Close is a no-op; the mock holds no OS resources.
func (g *GenericInstrument) Close() error { return nil }

var _ Instrument = (*GenericInstrument)(nil)
