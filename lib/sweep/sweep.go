// Package sweep drives L-I and I-V characteristic sweeps over the
// Instrument contract. The same runner works against the mock bench
// and real hardware; it only ever speaks SCPI through write and
// query. Results are (x, y[, y2]) tuples ready for plotting or
// export.
package sweep

import (
	"fmt"

	"github.com/gotmc/query"

	"github.com/gotmc/visamock"
	"github.com/gotmc/visamock/lib/config"
	"github.com/gotmc/visamock/lib/laser"
)

// Point is one sweep sample. X is the drive current in mA, Y the
// optical power in W, and Y2 the source readback (A or V depending on
// the sweep).
type Point struct {
	X  float64
	Y  float64
	Y2 float64
}

// CW runs a continuous-wave current sweep on a source-measure unit:
// the Keithley init sequence, then one programmed step per point with
// a source readback and an optical sample from the scope.
func CW(smu, scope visamock.Instrument, cfg *config.Sweep) ([]Point, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sweep: nil CW config")
	}
	if cfg.StepSize <= 0 {
		return nil, fmt.Errorf("sweep: step size %g must be positive", cfg.StepSize)
	}
	if cfg.StopCurrent < cfg.StartCurrent {
		return nil, fmt.Errorf("sweep: stop current %g below start %g",
			cfg.StopCurrent, cfg.StartCurrent)
	}

	init := []string{
		"*RST; status:preset; *CLS",
		"sour:func curr",
		"sens:func 'volt'",
		fmt.Sprintf("sens:volt:prot:lev %g", cfg.Compliance),
		"sens:volt:range:auto on",
		"form:elem curr",
		"outp on",
	}
	for _, cmd := range init {
		if err := smu.Write(cmd); err != nil {
			return nil, fmt.Errorf("sweep: init %q: %w", cmd, err)
		}
	}
	defer smu.Write("outp off")

	var points []Point
	for i := cfg.StartCurrent; i <= cfg.StopCurrent+cfg.StepSize/2; i += cfg.StepSize {
		if err := smu.Write(fmt.Sprintf("sour:curr %g", i)); err != nil {
			return nil, fmt.Errorf("sweep: setting current: %w", err)
		}
		readback, err := query.Float64(smu, "READ?")
		if err != nil {
			return nil, fmt.Errorf("sweep: READ?: %w", err)
		}
		light, err := opticalPower(scope)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{X: i * 1000, Y: light, Y2: readback})
	}
	return points, nil
}

// VPulse runs a pulsed voltage sweep: pulse shape once, then one
// amplitude step per point. X is the implied diode current in mA.
func VPulse(pulser, scope visamock.Instrument, cfg *config.Pulse) ([]Point, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sweep: nil pulse config")
	}
	if cfg.StepSize <= 0 {
		return nil, fmt.Errorf("sweep: step size %g must be positive", cfg.StepSize)
	}
	if cfg.StopVoltage < cfg.StartVoltage {
		return nil, fmt.Errorf("sweep: stop voltage %g below start %g",
			cfg.StopVoltage, cfg.StartVoltage)
	}

	setup := []string{
		"*RST",
		fmt.Sprintf("PULSE:WIDTH %gus", cfg.PulseWidth),
		fmt.Sprintf("FREQ %gkHz", cfg.Frequency),
		"OUTP ON",
	}
	for _, cmd := range setup {
		if err := pulser.Write(cmd); err != nil {
			return nil, fmt.Errorf("sweep: setup %q: %w", cmd, err)
		}
	}
	defer pulser.Write("OUTP OFF")

	var points []Point
	for v := cfg.StartVoltage; v <= cfg.StopVoltage+cfg.StepSize/2; v += cfg.StepSize {
		if err := pulser.Write(fmt.Sprintf("SOUR:VOLT %g", v)); err != nil {
			return nil, fmt.Errorf("sweep: setting voltage: %w", err)
		}
		light, err := opticalPower(scope)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{
			X:  laser.ImpliedCurrent(v) * 1000,
			Y:  light,
			Y2: v,
		})
	}
	return points, nil
}

// opticalPower samples the scope's amplitude measurement and converts
// detector volts back to watts via the detector responsivity.
func opticalPower(scope visamock.Instrument) (float64, error) {
	vals, err := scope.QueryValues("MEASURE")
	if err != nil {
		return 0, fmt.Errorf("sweep: MEASURE: %w", err)
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("sweep: MEASURE returned no samples")
	}
	return vals[0] / laser.Responsivity, nil
}
