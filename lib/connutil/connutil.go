// Package connutil opens serial-attached SCPI instruments and exposes
// them through the same Instrument interface the mock bench
// implements. Measurement code selects mock or metal at one call
// site; everything downstream is identical.
package connutil

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/soypat/cereal"

	"github.com/gotmc/visamock"
)

// DefaultBaudRate suits the USB serial bridges on the bench.
const DefaultBaudRate = 115200

// SerialInstrument is a SCPI instrument behind a serial port.
// Commands are newline-terminated; responses are read to the newline.
type SerialInstrument struct {
	port   io.ReadWriteCloser
	reader *bufio.Reader
}

// Open opens the serial port and wraps it as an Instrument. Baud 0
// selects DefaultBaudRate.
func Open(portName string, baud int) (*SerialInstrument, error) {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	cimpl := cereal.Tarm{}
	port, err := cimpl.OpenPort(portName, cereal.Mode{
		BaudRate:    baud,
		ReadTimeout: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connutil: opening %s: %w", portName, err)
	}
	return &SerialInstrument{port: port, reader: bufio.NewReader(port)}, nil
}

// Write sends one command line.
func (si *SerialInstrument) Write(cmd string) error {
	_, err := fmt.Fprintf(si.port, "%s\n", strings.TrimSpace(cmd))
	return err
}

// Query sends a command and reads the newline-terminated response. A
// response cut short by EOF is returned as-is rather than treated as
// an error; some bridges drop the final terminator.
func (si *SerialInstrument) Query(cmd string) (string, error) {
	if err := si.Write(cmd); err != nil {
		return "", err
	}
	s, err := si.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// QueryValues sends a command and parses a comma- or space-separated
// numeric response.
func (si *SerialInstrument) QueryValues(cmd string) ([]float64, error) {
	s, err := si.Query(cmd)
	if err != nil {
		return nil, err
	}
	return ParseValues(s)
}

// Close closes the serial port.
func (si *SerialInstrument) Close() error {
	return si.port.Close()
}

var _ visamock.Instrument = (*SerialInstrument)(nil)

// ParseValues splits an instrument's ASCII numeric response into
// floats. Separators may be commas, semicolons, or whitespace.
func ParseValues(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("connutil: bad numeric field %q in %q", f, s)
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("connutil: no numeric fields in %q", s)
	}
	return vals, nil
}
