// Package discovery enumerates serial-attached instruments and maps
// them to VISA ASRL resource strings, for populating address pickers
// alongside the mock bench's fixed set. Only enumeration lives here;
// opening a port is lib/connutil's job.
package discovery

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// Resource is one discovered serial endpoint.
type Resource struct {
	// Address is the VISA-style resource string, e.g.
	// "ASRL/dev/ttyUSB0::INSTR".
	Address string
	// Port is the OS device name the address was derived from.
	Port string
	// VID and PID identify the USB bridge, empty for native ports.
	VID, PID string
	Serial   string
}

func (r Resource) String() string {
	if r.VID == "" {
		return fmt.Sprintf("%s (%s)", r.Address, r.Port)
	}
	return fmt.Sprintf("%s (%s %s:%s serial %s)", r.Address, r.Port, r.VID, r.PID, r.Serial)
}

// FilterFn narrows enumeration results. A resource is kept when the
// filter returns true.
type FilterFn func(*Resource) bool

// USBOnly keeps resources behind a USB serial bridge.
func USBOnly(r *Resource) bool { return r.VID != "" }

// SerialNumber matches a specific bridge by its serial string.
func SerialNumber(s string) FilterFn {
	return func(r *Resource) bool { return r.Serial == s }
}

// SerialResources lists the serial ports visible to the OS as VISA
// resources. If filter is non-nil, only matching resources are
// returned.
func SerialResources(filter FilterFn) ([]Resource, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("discovery: enumerating serial ports: %w", err)
	}

	var res []Resource
	for _, p := range ports {
		r := Resource{
			Address: AddressForPort(p.Name),
			Port:    p.Name,
		}
		if p.IsUSB {
			r.VID, r.PID, r.Serial = p.VID, p.PID, p.SerialNumber
		}
		if filter != nil && !filter(&r) {
			continue
		}
		res = append(res, r)
	}
	return res, nil
}

// AddressForPort converts an OS serial port name to the ASRL resource
// convention: the full device path on unix, the COM number on
// Windows.
func AddressForPort(port string) string {
	if n, ok := strings.CutPrefix(port, "COM"); ok {
		return fmt.Sprintf("ASRL%s::INSTR", n)
	}
	return fmt.Sprintf("ASRL%s::INSTR", port)
}
