// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gotmc/visamock/lib/laser"
	"github.com/gotmc/visamock/lib/scpi"
)

// Signal is the last drive a source pushed into the oscilloscope. It
// stays latched until the next push, whether or not the source that
// wrote it still has its output enabled; bench scopes display the last
// acquisition the same way.
type Signal struct {
	Current float64 // A
	Voltage float64 // V
}

// Oscilloscope simulates the single shared scope that watches the
// device under test. Sources push their drive signal in; measurement
// queries run the laser model over the latched drive and return one
// noisy sample.
type Oscilloscope struct {
	mu    sync.Mutex
	state deviceState

	// sig is swapped atomically so a query never observes a
	// half-updated signal, even with sources on other goroutines.
	sig atomic.Pointer[Signal]
}

// NewOscilloscope returns a scope with default channel settings and a
// zero latched signal.
func NewOscilloscope() *Oscilloscope {
	o := &Oscilloscope{state: newDeviceState()}
	o.sig.Store(&Signal{})
	return o
}

// SetInput latches a new drive signal. Called by linked sources.
func (o *Oscilloscope) SetInput(sig Signal) {
	o.sig.Store(&sig)
}

// Input returns the currently latched drive signal.
func (o *Oscilloscope) Input() Signal {
	return *o.sig.Load()
}

// Write updates per-channel scale and impedance settings. Commands the
// scope does not recognize are ignored.
func (o *Oscilloscope) Write(raw string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, cmd := range scpi.ParseLine(raw) {
		switch {
		case cmd.Is("*RST"):
			// The latched signal belongs to the bench, not the
			// scope's settings, so it survives a reset.
			o.state.reset()
		case cmd.Is("*CLS"):
		case cmd.Is("CHANNEL:SCALE") && cmd.HasValue:
			o.state.scales[cmd.Channel] = cmd.Value
			o.state.configured()
		case cmd.Is("CHANNEL:IMPEDANCE"):
			o.state.impedances[cmd.Channel] = parseImpedance(cmd.Arg)
			o.state.configured()
		}
	}
	return nil
}

// Query answers identification requests; everything else echoes "0".
func (o *Oscilloscope) Query(raw string) (string, error) {
	cmd := scpi.Parse(raw)
	switch {
	case cmd.Is("*IDN?"):
		return idnString, nil
	case cmd.Is("CHANNEL:SCALE?"):
		o.mu.Lock()
		defer o.mu.Unlock()
		return formatFloat(o.state.scales[cmd.Channel]), nil
	case cmd.Is("CHANNEL:IMPEDANCE?"):
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.state.impedances[cmd.Channel].String(), nil
	}
	return "0", nil
}

// QueryValues returns a one-sample series for the amplitude
// measurement queries. The sample is the laser model's detector
// voltage for the latched drive current; everything else reads zero.
func (o *Oscilloscope) QueryValues(raw string) ([]float64, error) {
	cmd := scpi.Parse(raw)
	if isAmplitudeQuery(cmd) {
		return []float64{laser.DetectorVolts(o.Input().Current)}, nil
	}
	return []float64{0}, nil
}

// Close is a no-op; the mock holds no OS resources.
func (o *Oscilloscope) Close() error { return nil }

// Scale returns the stored scale for a channel.
func (o *Oscilloscope) Scale(channel int) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.scales[channel]
}

// isAmplitudeQuery matches the measurement spellings the GUIs use:
// MEASURE…, …VAMPLITUDE and …VMAX in any path position.
func isAmplitudeQuery(cmd scpi.Command) bool {
	if cmd.HasPrefix("MEASURE") {
		return true
	}
	switch strings.TrimSuffix(cmd.Leaf(), "?") {
	case "VAMPLITUDE", "VMAX", "MEASURE":
		return true
	}
	return false
}

var _ Instrument = (*Oscilloscope)(nil)

func parseImpedance(arg string) Impedance {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(arg)), "FIFT") {
		return Fifty
	}
	return HighZ
}
