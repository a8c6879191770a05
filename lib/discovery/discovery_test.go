package discovery

import "testing"

func TestAddressForPort(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{"/dev/ttyUSB0", "ASRL/dev/ttyUSB0::INSTR"},
		{"/dev/ttyACM1", "ASRL/dev/ttyACM1::INSTR"},
		{"COM3", "ASRL3::INSTR"},
	}
	for _, tt := range tests {
		if got := AddressForPort(tt.port); got != tt.want {
			t.Errorf("AddressForPort(%q) = %q, want %q", tt.port, got, tt.want)
		}
	}
}

func TestFilters(t *testing.T) {
	usb := Resource{Address: "ASRL/dev/ttyUSB0::INSTR", Port: "/dev/ttyUSB0", VID: "2341", PID: "0043", Serial: "A603UX94"}
	native := Resource{Address: "ASRL/dev/ttyS0::INSTR", Port: "/dev/ttyS0"}

	if !USBOnly(&usb) || USBOnly(&native) {
		t.Error("USBOnly filter misclassified")
	}
	if !SerialNumber("A603UX94")(&usb) {
		t.Error("SerialNumber filter missed its target")
	}
	if SerialNumber("OTHER")(&usb) {
		t.Error("SerialNumber filter matched wrong serial")
	}
}

func TestSerialResourcesEnumerates(t *testing.T) {
	// Host-dependent: just check enumeration does not fail outright.
	res, err := SerialResources(nil)
	if err != nil {
		t.Skipf("no serial enumeration on this host: %v", err)
	}
	for _, r := range res {
		if r.Address == "" || r.Port == "" {
			t.Errorf("incomplete resource: %+v", r)
		}
	}
}
