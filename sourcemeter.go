// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

import (
	"sync"

	"github.com/gotmc/visamock/lib/scpi"
)

// SourceMeter simulates a Keithley-class source-measure unit. While
// its output is enabled, current-setting writes propagate the
// programmed drive into the linked oscilloscope so optical readbacks
// stay consistent with the electrical drive.
type SourceMeter struct {
	mu    sync.Mutex
	addr  string
	state deviceState
	scope *Oscilloscope
}

// NewSourceMeter returns a source-measure unit at the given address,
// wired to the shared oscilloscope.
func NewSourceMeter(addr string, scope *Oscilloscope) *SourceMeter {
	return &SourceMeter{addr: addr, state: newDeviceState(), scope: scope}
}

// Write applies a command line to the unit's state. Unknown commands
// are swallowed, matching permissive firmware.
func (sm *SourceMeter) Write(raw string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, cmd := range scpi.ParseLine(raw) {
		sm.apply(cmd)
	}
	return nil
}

func (sm *SourceMeter) apply(cmd scpi.Command) {
	switch {
	case cmd.Is("*RST"):
		sm.state.reset()
	case cmd.Is("*CLS"):
	case cmd.Is("OUTP"):
		on, ok := parseOnOff(cmd.Arg)
		if !ok {
			return
		}
		sm.state.setOutput(on)
		if on {
			// Enabling the output releases whatever level was
			// programmed beforehand onto the bench.
			sm.push()
		}
	case cmd.Is("SOUR:FUNC"):
		switch {
		case containsFold(cmd.Arg, "CURR"):
			sm.state.mode = SourceCurrent
		case containsFold(cmd.Arg, "VOLT"):
			sm.state.mode = SourceVoltage
		}
		sm.state.configured()
	case cmd.Is("SOUR:CURR", "CURR"):
		if !cmd.HasValue {
			return
		}
		sm.state.level = cmd.Value
		sm.state.configured()
		if sm.state.output {
			sm.push()
		}
	case cmd.Is("SOUR:VOLT", "VOLT"):
		if !cmd.HasValue {
			return
		}
		sm.state.level = cmd.Value
		sm.state.configured()
	case cmd.HasPrefix("SENS"):
		if cmd.Leaf() == "LEV" && cmd.HasValue {
			sm.state.setCompliance(cmd.Value)
		}
		sm.state.configured()
	case cmd.HasPrefix("FORM"):
		sm.state.configured()
	}
}

// push latches the programmed drive current onto the scope. Callers
// hold sm.mu.
func (sm *SourceMeter) push() {
	if sm.scope == nil || sm.state.mode != SourceCurrent {
		return
	}
	sm.scope.SetInput(Signal{Current: sm.state.level})
}

// Query answers the readback subset the measurement code exercises.
// READ? returns the programmed level with measurement jitter; two
// reads never agree exactly.
func (sm *SourceMeter) Query(raw string) (string, error) {
	cmd := scpi.Parse(raw)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	switch {
	case cmd.Is("*IDN?"):
		return idnString, nil
	case cmd.Is("READ?", "MEAS?"):
		if sm.state.output {
			sm.push()
		}
		return formatFloat(sm.state.level + readbackNoise(sm.state.level)), nil
	case cmd.Is("OUTP?"):
		return onOffString(sm.state.output), nil
	case cmd.Is("SOUR:CURR?", "SOUR:VOLT?"):
		return formatFloat(sm.state.level), nil
	case cmd.Is("SOUR:FUNC?"):
		return sm.state.mode.String(), nil
	}
	return "0", nil
}

// QueryValues on a source unit has no series data to offer.
func (sm *SourceMeter) QueryValues(raw string) ([]float64, error) {
	return []float64{0}, nil
}

// Close is a no-op; the mock holds no OS resources.
func (sm *SourceMeter) Close() error { return nil }

// Status reports the unit's lifecycle state, for tests and panels.
func (sm *SourceMeter) Status() Status {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state.status
}

var _ Instrument = (*SourceMeter)(nil)
