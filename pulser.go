// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

import (
	"sync"

	"github.com/gotmc/visamock/lib/laser"
	"github.com/gotmc/visamock/lib/scpi"
)

// VoltagePulser simulates an AVTECH-class voltage pulser. The pulse
// amplitude drives the diode through a series load, so the current it
// latches onto the scope is derived: max(0, V-Vd)/R.
type VoltagePulser struct {
	mu    sync.Mutex
	addr  string
	state deviceState
	scope *Oscilloscope
}

// NewVoltagePulser returns a voltage pulser at the given address,
// wired to the shared oscilloscope.
func NewVoltagePulser(addr string, scope *Oscilloscope) *VoltagePulser {
	return &VoltagePulser{addr: addr, state: newDeviceState(), scope: scope}
}

// Write applies a command line; pulse shape settings are stored,
// amplitude changes propagate while the output is enabled.
func (p *VoltagePulser) Write(raw string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, cmd := range scpi.ParseLine(raw) {
		switch {
		case cmd.Is("*RST"):
			p.state.reset()
		case cmd.Is("*CLS"):
		case cmd.Is("OUTP"):
			on, ok := parseOnOff(cmd.Arg)
			if !ok {
				continue
			}
			p.state.setOutput(on)
			if on {
				p.push()
			}
		case cmd.Is("PULSE:WIDTH") && cmd.HasValue:
			p.state.pulseWidth = cmd.Value
			p.state.configured()
		case cmd.Is("FREQ") && cmd.HasValue:
			p.state.frequency = cmd.Value
			p.state.configured()
		case cmd.Is("SOUR:VOLT", "VOLT") && cmd.HasValue:
			p.state.level = cmd.Value
			p.state.mode = SourceVoltage
			p.state.configured()
			if p.state.output {
				p.push()
			}
		}
	}
	return nil
}

// push latches the implied diode current and the pulse amplitude onto
// the scope. Callers hold p.mu.
func (p *VoltagePulser) push() {
	if p.scope == nil {
		return
	}
	p.scope.SetInput(Signal{
		Current: laser.ImpliedCurrent(p.state.level),
		Voltage: p.state.level,
	})
}

// Query answers identification, output state, and a noisy amplitude
// readback; everything else echoes "0".
func (p *VoltagePulser) Query(raw string) (string, error) {
	cmd := scpi.Parse(raw)

	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case cmd.Is("*IDN?"):
		return idnString, nil
	case cmd.Is("READ?"):
		return formatFloat(p.state.level + readbackNoise(p.state.level)), nil
	case cmd.Is("OUTP?"):
		return onOffString(p.state.output), nil
	case cmd.Is("PULSE:WIDTH?"):
		return formatFloat(p.state.pulseWidth), nil
	case cmd.Is("FREQ?"):
		return formatFloat(p.state.frequency), nil
	}
	return "0", nil
}

// QueryValues on a pulser has no series data to offer.
func (p *VoltagePulser) QueryValues(raw string) ([]float64, error) {
	return []float64{0}, nil
}

// Close is a no-op; the mock holds no OS resources.
func (p *VoltagePulser) Close() error { return nil }

// Status reports the pulser's lifecycle state.
func (p *VoltagePulser) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.status
}

var _ Instrument = (*VoltagePulser)(nil)

// CurrentPulser simulates a current-output pulser. Unlike the voltage
// pulser there is nothing to derive: the programmed current latches
// onto the scope directly.
type CurrentPulser struct {
	mu    sync.Mutex
	addr  string
	state deviceState
	scope *Oscilloscope
}

// NewCurrentPulser returns a current pulser at the given address,
// wired to the shared oscilloscope.
func NewCurrentPulser(addr string, scope *Oscilloscope) *CurrentPulser {
	return &CurrentPulser{addr: addr, state: newDeviceState(), scope: scope}
}

// Write applies a command line; current changes propagate while the
// output is enabled.
func (p *CurrentPulser) Write(raw string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, cmd := range scpi.ParseLine(raw) {
		switch {
		case cmd.Is("*RST"):
			p.state.reset()
		case cmd.Is("*CLS"):
		case cmd.Is("OUTP"):
			on, ok := parseOnOff(cmd.Arg)
			if !ok {
				continue
			}
			p.state.setOutput(on)
			if on {
				p.push()
			}
		case cmd.Is("PULSE:WIDTH") && cmd.HasValue:
			p.state.pulseWidth = cmd.Value
			p.state.configured()
		case cmd.Is("FREQ") && cmd.HasValue:
			p.state.frequency = cmd.Value
			p.state.configured()
		case cmd.Is("SOUR:CURR", "CURR") && cmd.HasValue:
			p.state.level = cmd.Value
			p.state.mode = SourceCurrent
			p.state.configured()
			if p.state.output {
				p.push()
			}
		}
	}
	return nil
}

// push latches the programmed current onto the scope. Callers hold
// p.mu.
func (p *CurrentPulser) push() {
	if p.scope == nil {
		return
	}
	p.scope.SetInput(Signal{Current: p.state.level})
}

// Query answers identification, output state, and a noisy current
// readback; everything else echoes "0".
func (p *CurrentPulser) Query(raw string) (string, error) {
	cmd := scpi.Parse(raw)

	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case cmd.Is("*IDN?"):
		return idnString, nil
	case cmd.Is("READ?"):
		return formatFloat(p.state.level + readbackNoise(p.state.level)), nil
	case cmd.Is("OUTP?"):
		return onOffString(p.state.output), nil
	case cmd.Is("PULSE:WIDTH?"):
		return formatFloat(p.state.pulseWidth), nil
	case cmd.Is("FREQ?"):
		return formatFloat(p.state.frequency), nil
	}
	return "0", nil
}

// QueryValues on a pulser has no series data to offer.
func (p *CurrentPulser) QueryValues(raw string) ([]float64, error) {
	return []float64{0}, nil
}

// Close is a no-op; the mock holds no OS resources.
func (p *CurrentPulser) Close() error { return nil }

// Status reports the pulser's lifecycle state.
func (p *CurrentPulser) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.status
}

var _ Instrument = (*CurrentPulser)(nil)
