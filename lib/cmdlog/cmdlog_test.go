package cmdlog

import (
	"testing"

	"github.com/gotmc/visamock"
)

type scripted struct {
	last    string
	answers map[string]string
}

func (s *scripted) Write(cmd string) error { s.last = cmd; return nil }

func (s *scripted) Query(cmd string) (string, error) {
	s.last = cmd
	return s.answers[cmd], nil
}

func (s *scripted) QueryValues(cmd string) ([]float64, error) { return nil, nil }
func (s *scripted) Close() error                              { return nil }

var _ visamock.Instrument = (*scripted)(nil)

func TestPrettyFuncs(t *testing.T) {
	inst := &scripted{answers: map[string]string{"*IDN?": "Mock Instrument"}}
	query, bquery, cmd := PrettyFuncs(inst)

	if got := query("*IDN?"); got != "Mock Instrument" {
		t.Errorf("query(*IDN?) = %q", got)
	}
	bquery("*IDN?")
	bquery("UNKNOWN?")

	cmd("*RST")
	if inst.last != "*RST" {
		t.Errorf("cmd did not reach instrument, last = %q", inst.last)
	}
}

func TestIsAscii(t *testing.T) {
	if !isAscii("Mock Instrument,Model 1000") {
		t.Error("printable text reported as non-ascii")
	}
	if isAscii("\xff\x01") {
		t.Error("binary payload reported as ascii")
	}
}
