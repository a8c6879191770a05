package scpi

import "testing"

func TestParseVerbs(t *testing.T) {
	tests := []struct {
		raw  string
		verb string
	}{
		{"*RST", "*RST"},
		{"*CLS", "*CLS"},
		{"*IDN?", "*IDN?"},
		{"OUTP ON", "OUTP"},
		{"OUTPUT OFF", "OUTP"},
		{"sour:func curr", "SOUR:FUNC"},
		{"SOUR:CURR 0.02", "SOUR:CURR"},
		{"source:voltage 2.5", "SOUR:VOLT"},
		{"PULSE:WIDTH 2us", "PULSE:WIDTH"},
		{"PULS:WIDT 2us", "PULSE:WIDTH"},
		{"FREQ 5kHz", "FREQ"},
		{"sens:volt:prot:lev 10", "SENS:VOLT:PROT:LEV"},
		{":CHANNEL1:SCALE 0.001", "CHANNEL:SCALE"},
		{":chan3:imp FIFT", "CHANNEL:IMPEDANCE"},
		{"READ?", "READ?"},
		{"TEC:T?", "TEC:T?"},
		{"TEC:OUT 1", "TEC:OUT"},
		{"MEASURE", "MEASURE"},
		{"VAMPLITUDE", "VAMPLITUDE"},
	}
	for _, tt := range tests {
		got := Parse(tt.raw)
		if got.Verb != tt.verb {
			t.Errorf("Parse(%q).Verb = %q, want %q", tt.raw, got.Verb, tt.verb)
		}
	}
}

func TestParseUnitSuffixes(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"FREQ 5kHz", 5},
		{"FREQ 1.5KHZ", 1.5},
		{"PULSE:WIDTH 2us", 2},
		{"SOUR:VOLT 2.5V", 2.5},
		{"SOUR:CURR 0.02", 0.02},
		{"SOUR:CURR 20mA", 20},
		{"TEC:T 25", 25},
	}
	for _, tt := range tests {
		got := Parse(tt.raw)
		if !got.HasValue {
			t.Errorf("Parse(%q): no value, want %v", tt.raw, tt.want)
			continue
		}
		if got.Value != tt.want {
			t.Errorf("Parse(%q).Value = %v, want %v", tt.raw, got.Value, tt.want)
		}
	}
}

func TestParseNonNumericOperand(t *testing.T) {
	for _, raw := range []string{"OUTP ON", "SOUR:FUNC CURR", ":CHANNEL1:IMPEDANCE FIFT", "FOO BAR"} {
		if got := Parse(raw); got.HasValue {
			t.Errorf("Parse(%q).HasValue = true, want false", raw)
		}
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		raw string
		ch  int
	}{
		{":CHANNEL1:SCALE 0.001", 1},
		{":CHANNEL4:SCALE 0.05", 4},
		{":chan2:scale 1", 2},
		{":CHANNEL:SCALE 1", 0}, // no id: unknown-channel bucket
		{"SOUR:CURR 0.02", 0},
	}
	for _, tt := range tests {
		if got := Parse(tt.raw); got.Channel != tt.ch {
			t.Errorf("Parse(%q).Channel = %d, want %d", tt.raw, got.Channel, tt.ch)
		}
	}
}

func TestParseLine(t *testing.T) {
	cmds := ParseLine("*RST; status:preset; *CLS")
	if len(cmds) != 3 {
		t.Fatalf("ParseLine: got %d commands, want 3", len(cmds))
	}
	want := []string{"*RST", "STAT:PRESET", "*CLS"}
	for i, w := range want {
		if cmds[i].Verb != w {
			t.Errorf("ParseLine[%d].Verb = %q, want %q", i, cmds[i].Verb, w)
		}
	}
}

func TestParseNeverPanics(t *testing.T) {
	for _, raw := range []string{"", "   ", ";;;", ":", "FOO:BAR", "*", "CHANNEL99999999999999999999:SCALE 1", "SOUR:CURR notanumber"} {
		_ = Parse(raw)
		_ = ParseLine(raw)
	}
}

func TestCommandHelpers(t *testing.T) {
	c := Parse("SENS:VOLT:PROT:LEV 10")
	if !c.HasPrefix("SENS") {
		t.Error("HasPrefix(SENS) = false")
	}
	if c.HasPrefix("SENS:VOLT:PROT:LEVEL") {
		t.Error("HasPrefix should not match beyond the path")
	}
	if c.Leaf() != "LEV" {
		t.Errorf("Leaf() = %q, want LEV", c.Leaf())
	}
	if !Parse("READ?").IsQuery() {
		t.Error("READ? not a query")
	}
	if Parse("OUTP ON").IsQuery() {
		t.Error("OUTP ON reported as query")
	}
	if !Parse("OUTP ON").Is("OUTP", "TEC:OUT") {
		t.Error("Is(OUTP) = false")
	}
}
