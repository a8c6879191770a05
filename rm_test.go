// Copyright (c) 2026 The visamock developers. All rights reserved.
// Project site: https://github.com/gotmc/visamock
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package visamock

import (
	"errors"
	"testing"
)

func TestRoutingTable(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"GPIB0::1::INSTR", "*visamock.SourceMeter"},
		{"GPIB0::5::INSTR", "*visamock.SourceMeter"},
		{"GPIB0::2::INSTR", "*visamock.VoltagePulser"},
		{"GPIB0::3::INSTR", "*visamock.VoltagePulser"},
		{"GPIB0::4::INSTR", "*visamock.CurrentPulser"},
		{"GPIB0::9::INSTR", "*visamock.GenericInstrument"},
		{"USB0::0x2A8D::0x1797::MY12345678::INSTR", "*visamock.Oscilloscope"},
		{"TCPIP0::192.168.1.100::INSTR", "*visamock.Oscilloscope"},
		{"MOCK_SCOPE", "*visamock.Oscilloscope"},
		{"ASRL1::INSTR", "*visamock.GenericInstrument"},
		{"garbage", "*visamock.GenericInstrument"},
	}

	rm := NewResourceManager()
	defer rm.Close()
	for _, tt := range tests {
		inst, err := rm.OpenResource(tt.address)
		if err != nil {
			t.Fatalf("OpenResource(%q): %v", tt.address, err)
		}
		if got := typeName(inst); got != tt.want {
			t.Errorf("OpenResource(%q) = %s, want %s", tt.address, got, tt.want)
		}
	}
}

func typeName(inst Instrument) string {
	switch inst.(type) {
	case *SourceMeter:
		return "*visamock.SourceMeter"
	case *VoltagePulser:
		return "*visamock.VoltagePulser"
	case *CurrentPulser:
		return "*visamock.CurrentPulser"
	case *Oscilloscope:
		return "*visamock.Oscilloscope"
	case *GenericInstrument:
		return "*visamock.GenericInstrument"
	}
	return "unknown"
}

func TestOpenResourceIdempotent(t *testing.T) {
	rm := NewResourceManager()
	defer rm.Close()

	a, err := rm.OpenResource("GPIB0::1::INSTR")
	if err != nil {
		t.Fatal(err)
	}
	b, err := rm.OpenResource("GPIB0::1::INSTR")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("repeated opens of the same address returned distinct instruments")
	}
}

func TestScopeSharedAcrossAddresses(t *testing.T) {
	rm := NewResourceManager()
	defer rm.Close()

	usb, _ := rm.OpenResource("USB0::0x2A8D::0x1797::MY12345678::INSTR")
	net, _ := rm.OpenResource("TCPIP0::192.168.1.100::INSTR")
	if usb != net {
		t.Error("USB and TCPIP scope addresses resolved to distinct scopes")
	}
}

// Sources must propagate to the scope no matter which was opened
// first; GUIs open instruments in arbitrary order.
func TestWiringOrderIndependence(t *testing.T) {
	orders := [][]string{
		{"GPIB0::1::INSTR", "USB0::0x2A8D::0x1797::MY12345678::INSTR"},
		{"USB0::0x2A8D::0x1797::MY12345678::INSTR", "GPIB0::1::INSTR"},
	}
	for _, order := range orders {
		rm := NewResourceManager()

		var smu, scope Instrument
		for _, addr := range order {
			inst, err := rm.OpenResource(addr)
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := inst.(*SourceMeter); ok {
				smu = inst
			} else {
				scope = inst
			}
		}

		smu.Write("SOUR:CURR 0.02")
		smu.Write("OUTP ON")
		vals, err := scope.QueryValues("MEASURE")
		if err != nil {
			t.Fatal(err)
		}
		if len(vals) != 1 || vals[0] <= 0.001 {
			t.Errorf("open order %v: MEASURE = %v, want lasing-level sample", order, vals)
		}
		rm.Close()
	}
}

func TestUnopenedAddressFailsFast(t *testing.T) {
	rm := NewResourceManager()
	defer rm.Close()

	if _, err := rm.Query("GPIB0::1::INSTR", "READ?"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("Query on unopened address: err = %v, want ErrResourceNotFound", err)
	}
	if err := rm.Write("GPIB0::1::INSTR", "*RST"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("Write on unopened address: err = %v, want ErrResourceNotFound", err)
	}
	if _, err := rm.QueryValues("nowhere", "MEASURE"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("QueryValues on unopened address: err = %v, want ErrResourceNotFound", err)
	}
}

func TestManagerWriteQueryByAddress(t *testing.T) {
	rm := NewResourceManager()
	defer rm.Close()

	const addr = "GPIB0::1::INSTR"
	if _, err := rm.OpenResource(addr); err != nil {
		t.Fatal(err)
	}
	if err := rm.Write(addr, "SOUR:CURR 0.01"); err != nil {
		t.Fatal(err)
	}
	s, err := rm.Query(addr, "*IDN?")
	if err != nil {
		t.Fatal(err)
	}
	if s != idnString {
		t.Errorf("*IDN? = %q, want %q", s, idnString)
	}
}

func TestListResourcesIllustrativeSet(t *testing.T) {
	rm := NewResourceManager()
	defer rm.Close()

	addrs := rm.ListResources()
	if len(addrs) == 0 {
		t.Fatal("ListResources returned nothing")
	}
	// Every advertised address must open.
	for _, addr := range addrs {
		if _, err := rm.OpenResource(addr); err != nil {
			t.Errorf("OpenResource(%q): %v", addr, err)
		}
	}
}

func TestCloseReleasesInstruments(t *testing.T) {
	rm := NewResourceManager()
	if _, err := rm.OpenResource("GPIB0::1::INSTR"); err != nil {
		t.Fatal(err)
	}
	if err := rm.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := rm.Instrument("GPIB0::1::INSTR"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("after Close: err = %v, want ErrResourceNotFound", err)
	}
}

func TestGPIBInstrumentNumber(t *testing.T) {
	tests := []struct {
		address string
		want    int
	}{
		{"GPIB0::4::INSTR", 4},
		{"GPIB1::22::INSTR", 22},
		{"GPIB0::INSTR", -1},
		{"GPIB0::x::INSTR", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := gpibInstrumentNumber(tt.address); got != tt.want {
			t.Errorf("gpibInstrumentNumber(%q) = %d, want %d", tt.address, got, tt.want)
		}
	}
}
