// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// ErrResourceNotFound is returned when a write or query names an
// address that was never opened. This is the one hard failure in the
// mock: an unopened resource has no sane simulated behavior.
var ErrResourceNotFound = errors.New("resource not opened")

// ResourceManager routes VISA address strings to simulated
// instruments, mirroring the pyvisa ResourceManager surface the
// measurement GUIs were written against. Construct one per session or
// per test; there are no package-level singletons.
type ResourceManager struct {
	mu          sync.Mutex
	instruments map[string]Instrument
	scope       *Oscilloscope
}

// NewResourceManager returns an empty manager. Instruments are created
// lazily on first open.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{instruments: make(map[string]Instrument)}
}

// ListResources returns the fixed illustrative address set the mock
// bench exposes, spanning GPIB, USB, and network transports. Combine
// with lib/discovery for real serial ports.
func (rm *ResourceManager) ListResources() []string {
	return []string{
		"GPIB0::1::INSTR",                          // source-measure unit
		"GPIB0::2::INSTR",                          // voltage pulser
		"GPIB0::4::INSTR",                          // current pulser
		"USB0::0x2A8D::0x1797::MY12345678::INSTR",  // oscilloscope
		"TCPIP0::192.168.1.100::INSTR",             // networked instrument
	}
}

// OpenResource returns the instrument at the given address, creating
// and wiring it on first open. Repeated opens of the same address
// return the same instance. OpenResource never fails: unrecognized
// addresses fall back to a generic instrument.
func (rm *ResourceManager) OpenResource(address string) (Instrument, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if inst, ok := rm.instruments[address]; ok {
		return inst, nil
	}

	inst := rm.route(address)
	rm.instruments[address] = inst
	return inst, nil
}

// route picks the device type for an address. Callers hold rm.mu.
//
// The GPIB instrument-number convention ({1,5} source meter, {2,3}
// voltage pulser, {4} current pulser) is inherited from the bench this
// mock replaces; it carries no deeper meaning.
func (rm *ResourceManager) route(address string) Instrument {
	upper := strings.ToUpper(address)
	switch {
	case isScopeAddress(upper):
		return rm.sharedScope()
	case strings.Contains(upper, "GPIB"):
		switch gpibInstrumentNumber(address) {
		case 1, 5:
			return NewSourceMeter(address, rm.sharedScope())
		case 2, 3:
			return NewVoltagePulser(address, rm.sharedScope())
		case 4:
			return NewCurrentPulser(address, rm.sharedScope())
		}
	}
	return NewGenericInstrument(address)
}

// sharedScope returns the single oscilloscope every source drives,
// creating it on demand so sources wire correctly no matter the order
// the GUI opens instruments in. Callers hold rm.mu.
func (rm *ResourceManager) sharedScope() *Oscilloscope {
	if rm.scope == nil {
		rm.scope = NewOscilloscope()
	}
	return rm.scope
}

// Instrument returns the already-open instrument at the given address,
// or ErrResourceNotFound if it was never opened.
func (rm *ResourceManager) Instrument(address string) (Instrument, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	inst, ok := rm.instruments[address]
	if !ok {
		return nil, fmt.Errorf("%q: %w", address, ErrResourceNotFound)
	}
	return inst, nil
}

// Write sends a command line to the instrument at the given address.
func (rm *ResourceManager) Write(address, cmd string) error {
	inst, err := rm.Instrument(address)
	if err != nil {
		return err
	}
	return inst.Write(cmd)
}

// Query sends a command to the instrument at the given address and
// returns its response.
func (rm *ResourceManager) Query(address, cmd string) (string, error) {
	inst, err := rm.Instrument(address)
	if err != nil {
		return "", err
	}
	return inst.Query(cmd)
}

// QueryValues sends a command to the instrument at the given address
// and returns its numeric sample series.
func (rm *ResourceManager) QueryValues(address, cmd string) ([]float64, error) {
	inst, err := rm.Instrument(address)
	if err != nil {
		return nil, err
	}
	return inst.QueryValues(cmd)
}

// Close releases every open instrument. The shared oscilloscope may
// sit behind several addresses; it is closed once.
func (rm *ResourceManager) Close() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	var err error
	seen := make(map[Instrument]bool)
	for _, inst := range rm.instruments {
		if seen[inst] {
			continue
		}
		seen[inst] = true
		err = multierr.Append(err, inst.Close())
	}
	rm.instruments = make(map[string]Instrument)
	rm.scope = nil
	return err
}

// isScopeAddress reports whether an upper-cased address names the
// oscilloscope: USB or network transports, an explicit SCOPE tag, or
// the Keysight vendor id.
func isScopeAddress(upper string) bool {
	return strings.Contains(upper, "USB") ||
		strings.Contains(upper, "TCPIP") ||
		strings.Contains(upper, "SCOPE") ||
		strings.Contains(upper, "2A8D")
}

// gpibInstrumentNumber extracts the instrument number from addresses
// like "GPIB0::4::INSTR", returning -1 when there is none.
func gpibInstrumentNumber(address string) int {
	parts := strings.Split(address, "::")
	if len(parts) < 2 {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return -1
	}
	return n
}
