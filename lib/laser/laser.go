// Package laser models the L-I characteristic of the simulated laser
// diode population: spontaneous emission below threshold, linear slope
// above it, plus the measurement noise a bench detector would add.
// Every sample is intentionally noisy; callers assert statistical
// bounds, not exact values.
package laser

import (
	"math"
	"math/rand/v2"
)

// Device population constants. The mock simulates one diode type;
// per-device parameters would come from a calibration table.
const (
	// ThresholdCurrent is the lasing threshold in amperes.
	ThresholdCurrent = 0.015
	// SlopeEfficiency is the optical power per ampere above
	// threshold, in W/A.
	SlopeEfficiency = 0.8
	// Responsivity converts detected optical power to oscilloscope
	// volts, in V/W.
	Responsivity = 0.5

	// spontaneousSlope is the sub-threshold emission slope in W/A.
	spontaneousSlope = 0.01
	// spontaneousSigma is the additive noise below threshold, in W.
	spontaneousSigma = 0.0005
	// lasingNoise is the multiplicative noise fraction above threshold.
	lasingNoise = 0.02

	// floorMean and floorSigma define the detector noise floor in V.
	floorMean  = 0.0001
	floorSigma = 0.00005

	// DiodeDrop and SeriesResistance model the electrical load a
	// voltage pulser sees: V = I*R + Vd.
	DiodeDrop        = 1.5
	SeriesResistance = 50.0
)

// Power returns one sample of optical output power in watts for the
// given drive current.
func Power(current float64) float64 {
	if current < ThresholdCurrent {
		return current*spontaneousSlope + rand.NormFloat64()*spontaneousSigma
	}
	p := (current - ThresholdCurrent) * SlopeEfficiency
	return p + rand.NormFloat64()*p*lasingNoise
}

// DetectorVolts returns one sample of the photodetector voltage seen
// by the oscilloscope for the given drive current. The noise floor
// keeps readbacks off exact zero, as a real detector would.
func DetectorVolts(current float64) float64 {
	v := math.Abs(Power(current)) * Responsivity
	floor := floorMean + rand.NormFloat64()*floorSigma
	return math.Max(v, floor)
}

// ImpliedCurrent estimates the diode current a voltage pulser drives
// through the series load: max(0, V-Vd)/R.
func ImpliedCurrent(voltage float64) float64 {
	if voltage <= DiodeDrop {
		return 0
	}
	return (voltage - DiodeDrop) / SeriesResistance
}
