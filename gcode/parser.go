// Package gcode parses and emits the plotter's line-oriented command
// dialect: one command per line, fields separated by single spaces, each
// field a single letter immediately followed by a numeric literal.
package gcode

// MaxLine is the largest command line the firmware captures. Longer lines
// are truncated to this prefix by the transport and still processed.
const MaxLine = 64

// Command wraps one captured command line. Field extraction scans the raw
// bytes on demand, so a line carrying several code families (say a G move
// and a T test code) answers for each of them independently.
type Command struct {
	buf []byte
}

// NewCommand captures a command line. The buffer is retained, not copied;
// commands are line-scoped and discarded after dispatch.
func NewCommand(line []byte) Command {
	return Command{buf: line}
}

// Field returns the numeric value trailing the first occurrence of letter,
// or def when the letter is absent or its number unparsable.
func (c Command) Field(letter byte, def float64) float64 {
	return FieldValue(c.buf, letter, def)
}

// Has reports whether letter occurs with a parsable number.
func (c Command) Has(letter byte) bool {
	const sentinel = -1e308
	return FieldValue(c.buf, letter, sentinel) != sentinel
}

// FieldValue scans buf left to right for letter immediately followed by an
// optionally signed, optionally fractional numeric literal and returns the
// parsed value. The scan never reads past len(buf), even when the line has
// no terminating separator. Missing letter or a bad number yields def.
func FieldValue(buf []byte, letter byte, def float64) float64 {
	for i := 0; i < len(buf); i++ {
		if buf[i] != letter {
			continue
		}
		if i > 0 && buf[i-1] != ' ' {
			// Mid-token match, e.g. the Y in "XY"; keep scanning.
			continue
		}
		v, ok := parseNumber(buf, i+1)
		if !ok {
			// Letter present but number unparsable: malformed field,
			// resolved by substituting the caller's default.
			return def
		}
		return v
	}
	return def
}

// parseNumber parses [+-]digits[.digits] starting at pos, stopping at the
// first byte that cannot extend the literal or at the end of the buffer.
func parseNumber(buf []byte, pos int) (float64, bool) {
	i := pos
	negative := false
	if i < len(buf) && (buf[i] == '-' || buf[i] == '+') {
		negative = buf[i] == '-'
		i++
	}

	digitStart := i
	value := 0.0
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		value = value*10 + float64(buf[i]-'0')
		i++
	}
	intDigits := i - digitStart

	fracDigits := 0
	if i < len(buf) && buf[i] == '.' {
		i++
		scale := 0.1
		for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
			value += float64(buf[i]-'0') * scale
			scale /= 10
			i++
			fracDigits++
		}
	}

	// "X10", "X10.", "X.5" all parse; a bare "X" or "X." does not.
	if intDigits == 0 && fracDigits == 0 {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}
