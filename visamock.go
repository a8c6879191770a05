// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package visamock is a protocol-level stand-in for VISA/GPIB bench
// hardware. A ResourceManager routes VISA address strings to simulated
// instruments (source-measure units, pulsers, a shared oscilloscope)
// that speak the same loose SCPI dialect the real bench does, and a
// small laser-diode model keeps readbacks physically plausible: drive
// a simulated source above threshold and the simulated scope sees
// light.
//
// The mocks never error, never block, and tolerate malformed commands,
// because the hardware they replace does too. Measurement code written
// against the Instrument interface runs unchanged on either.
package visamock

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Instrument is the write/query contract shared by every simulated
// device and by the serial-backed real-hardware implementation in
// lib/connutil. Mock implementations always return nil errors.
type Instrument interface {
	// Write sends a command line. Compound lines separated by
	// semicolons are accepted.
	Write(cmd string) error
	// Query sends a command and returns the instrument's response.
	Query(cmd string) (string, error)
	// QueryValues sends a command and returns a numeric sample
	// series.
	QueryValues(cmd string) ([]float64, error)
	// Close releases the underlying resource.
	Close() error
}

// idnString is the fixed *IDN? response shared by the mock population.
const idnString = "Mock Instrument,Model 1000,SN12345,1.0"

// formatFloat renders readback values the way instrument firmware
// does: shortest round-trip decimal.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// gauss returns one zero-mean gaussian sample with the given standard
// deviation.
func gauss(sigma float64) float64 {
	return rand.NormFloat64() * sigma
}

// readbackNoise is the jitter added to a programmed value on READ?:
// proportional with an absolute floor, so repeated reads never agree
// exactly even at zero drive.
func readbackNoise(value float64) float64 {
	sigma := value * 0.001
	if sigma < 0 {
		sigma = -sigma
	}
	if sigma < 1e-5 {
		sigma = 1e-5
	}
	return gauss(sigma)
}

// parseOnOff interprets the ON/OFF/1/0 operand forms. The second
// return is false when the operand is unreadable, in which case the
// write is a no-op.
func parseOnOff(arg string) (on, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(arg)) {
	case "ON", "1":
		return true, true
	case "OFF", "0":
		return false, true
	}
	return false, false
}

// containsFold reports whether s contains substr, ignoring case.
// substr must already be upper-case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), substr)
}

// onOffString renders a boolean the way TEC:OUT? and OUTP? do.
func onOffString(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
