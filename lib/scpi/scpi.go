// Package scpi parses the loosely structured ASCII command strings
// used by SCPI-ish bench instruments. Parsing is total: anything a
// caller writes yields a Command, never an error. Real firmware
// swallows junk and so do we.
package scpi

import (
	"strconv"
	"strings"
)

// Command is one parsed command: a normalized verb path plus an
// optional operand. Verbs use the short mnemonic form with segments
// joined by colons, e.g. "SOUR:CURR", "OUTP", "*RST", "READ?".
type Command struct {
	Verb string
	// Arg is the raw operand remainder, whitespace-trimmed, original
	// case preserved. Empty when the command has no operand.
	Arg string
	// Value is the numeric operand after unit-suffix stripping.
	// Only meaningful when HasValue is true.
	Value    float64
	HasValue bool
	// Channel is the channel id for :CHANNEL<n>: verbs, 0 when the
	// command carries none or the id was unreadable.
	Channel int
}

// IsQuery reports whether the verb requests a response.
func (c Command) IsQuery() bool { return strings.HasSuffix(c.Verb, "?") }

// Is reports whether the verb matches any of the given verbs exactly.
func (c Command) Is(verbs ...string) bool {
	for _, v := range verbs {
		if c.Verb == v {
			return true
		}
	}
	return false
}

// HasPrefix reports whether the verb path starts with the given
// segment prefix, e.g. HasPrefix("SENS") matches "SENS:VOLT:PROT:LEV".
func (c Command) HasPrefix(prefix string) bool {
	return c.Verb == prefix || strings.HasPrefix(c.Verb, prefix+":")
}

// Leaf returns the last segment of the verb path.
func (c Command) Leaf() string {
	if i := strings.LastIndexByte(c.Verb, ':'); i >= 0 {
		return c.Verb[i+1:]
	}
	return c.Verb
}

// aliases maps long and alternate mnemonic forms onto the canonical
// short form used throughout the drivers.
var aliases = map[string]string{
	"OUTPUT":     "OUTP",
	"SOURCE":     "SOUR",
	"CURRENT":    "CURR",
	"VOLTAGE":    "VOLT",
	"FUNCTION":   "FUNC",
	"FREQUENCY":  "FREQ",
	"SENSE":      "SENS",
	"PROTECTION": "PROT",
	"LEVEL":      "LEV",
	"STATUS":     "STAT",
	"RANGE":      "RANG",
	"ELEMENTS":   "ELEM",
	"FORMAT":     "FORM",
	"PULS":       "PULSE",
	"WIDT":       "WIDTH",
	"CHAN":       "CHANNEL",
	"IMP":        "IMPEDANCE",
	"SCAL":       "SCALE",
}

// unitSuffixes are the unit tails tolerated on numeric operands,
// longest first so "kHz" wins over "Hz".
var unitSuffixes = []string{
	"KHZ", "MHZ", "HZ",
	"US", "MS", "NS",
	"MV", "UV",
	"MA", "UA",
	"MW", "UW",
	"OHM",
	"V", "A", "S", "W",
}

// Parse parses a single command string. It never fails: an
// unrecognized verb is carried through normalized as-is with the
// remainder as the operand, and an operand that does not convert to a
// number simply leaves HasValue unset.
func Parse(raw string) Command {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Command{}
	}

	verb, arg := splitVerb(raw)
	cmd := Command{Arg: arg}
	cmd.Verb, cmd.Channel = normalizeVerb(verb)

	if v, ok := numeric(arg); ok {
		cmd.Value = v
		cmd.HasValue = true
	}
	return cmd
}

// ParseLine parses a command line that may hold several commands
// separated by semicolons, e.g. "*RST; status:preset; *CLS".
func ParseLine(raw string) []Command {
	parts := strings.Split(raw, ";")
	cmds := make([]Command, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		cmds = append(cmds, Parse(p))
	}
	return cmds
}

// splitVerb splits a raw command into its verb token and operand
// remainder. The operand is everything after the first run of
// whitespace; "TEC:T 25" and "SOUR:CURR 0.02 " both work.
func splitVerb(raw string) (verb, arg string) {
	i := strings.IndexFunc(raw, isSpace)
	if i < 0 {
		return raw, ""
	}
	return raw[:i], strings.TrimSpace(raw[i:])
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// normalizeVerb upper-cases the verb token, drops a leading colon,
// canonicalizes each path segment via the alias table, and extracts a
// channel id from CHANNEL<n> segments.
func normalizeVerb(verb string) (string, int) {
	verb = strings.ToUpper(strings.TrimPrefix(verb, ":"))
	if verb == "" || verb[0] == '*' {
		// Common commands (*RST, *CLS, *IDN?) pass through whole.
		return verb, 0
	}

	query := strings.HasSuffix(verb, "?")
	verb = strings.TrimSuffix(verb, "?")

	channel := 0
	segs := strings.Split(verb, ":")
	for i, seg := range segs {
		name, digits := splitDigits(seg)
		if canon, ok := aliases[name]; ok {
			name = canon
		}
		if name == "CHANNEL" && digits != "" {
			// A bad digit run falls back to the unknown-channel
			// bucket rather than failing the command.
			if n, err := strconv.Atoi(digits); err == nil {
				channel = n
			}
			segs[i] = name
			continue
		}
		segs[i] = name + digits
	}
	verb = strings.Join(segs, ":")
	if query {
		verb += "?"
	}
	return verb, channel
}

// splitDigits splits a trailing digit run off a verb segment, so
// "CHANNEL2" becomes ("CHANNEL", "2").
func splitDigits(seg string) (name, digits string) {
	i := len(seg)
	for i > 0 && seg[i-1] >= '0' && seg[i-1] <= '9' {
		i--
	}
	return seg[:i], seg[i:]
}

// numeric converts an operand to a float after stripping one known
// unit suffix, so "5kHz" reads as 5 and "2us" as 2.
func numeric(arg string) (float64, bool) {
	if arg == "" {
		return 0, false
	}
	// Multi-token operands ("SIN 100,0.5") are not single numbers;
	// take the first token only, matching how firmware reads them.
	if i := strings.IndexFunc(arg, isSpace); i >= 0 {
		arg = arg[:i]
	}
	upper := strings.ToUpper(arg)
	for _, suf := range unitSuffixes {
		if len(upper) > len(suf) && strings.HasSuffix(upper, suf) {
			head := arg[:len(arg)-len(suf)]
			if v, err := strconv.ParseFloat(head, 64); err == nil {
				return v, true
			}
		}
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
