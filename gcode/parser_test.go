package gcode

import (
	"testing"
)

func TestFieldExtraction(t *testing.T) {
	tests := []struct {
		input  string
		letter byte
		def    float64
		want   float64
	}{
		{"G0 X10 Y20", 'G', -1, 0},
		{"G0 X10 Y20", 'X', -1, 10},
		{"G0 X10 Y20", 'Y', -1, 20},
		{"G1 X100.5 Y200.25", 'X', -1, 100.5},
		{"G1 X100.5 Y200.25", 'Y', -1, 200.25},
		{"T100 C2.5", 'T', -1, 100},
		{"T100 C2.5", 'C', -1, 2.5},
		{"M100", 'M', -1, 100},
		{"X.5", 'X', -1, 0.5},
		{"X10.", 'X', -1, 10},
		{"X+7", 'X', -1, 7},
	}

	for _, test := range tests {
		cmd := NewCommand([]byte(test.input))
		got := cmd.Field(test.letter, test.def)
		if got != test.want {
			t.Errorf("Field(%q, %c) = %g, want %g", test.input, test.letter, got, test.want)
		}
	}
}

func TestFieldMissing(t *testing.T) {
	tests := []struct {
		input  string
		letter byte
	}{
		{"G0 X10", 'Y'},
		{"", 'G'},
		{"M100", 'G'},
		{"G1 XY10", 'Y'}, // Y is mid-token, not a field start
	}

	for _, test := range tests {
		cmd := NewCommand([]byte(test.input))
		if got := cmd.Field(test.letter, -1); got != -1 {
			t.Errorf("Field(%q, %c) = %g, want default -1", test.input, test.letter, got)
		}
		if cmd.Has(test.letter) {
			t.Errorf("Has(%q, %c) = true, want false", test.input, test.letter)
		}
	}
}

func TestFieldMalformed(t *testing.T) {
	// Letter present but number unparsable: the default substitutes.
	tests := []string{
		"G1 X Y10",
		"G1 X",
		"G1 X. Y10",
		"G1 X- Y10",
	}

	for _, test := range tests {
		cmd := NewCommand([]byte(test))
		if got := cmd.Field('X', -1); got != -1 {
			t.Errorf("Field(%q, X) = %g, want default -1", test, got)
		}
	}
}

func TestFieldNegativeNumbers(t *testing.T) {
	cmd := NewCommand([]byte("G1 X-10.5 Y-20"))

	if got := cmd.Field('X', 0); got != -10.5 {
		t.Errorf("Expected X=-10.5, got X=%f", got)
	}
	if got := cmd.Field('Y', 0); got != -20 {
		t.Errorf("Expected Y=-20, got Y=%f", got)
	}
}

func TestFieldFirstOccurrenceWins(t *testing.T) {
	cmd := NewCommand([]byte("G1 X5 X9"))
	if got := cmd.Field('X', -1); got != 5 {
		t.Errorf("Expected first occurrence X=5, got X=%f", got)
	}
}

func TestFieldAtBufferEnd(t *testing.T) {
	// No terminating separator: the scan must stop at the buffer edge.
	cmd := NewCommand([]byte("G1 Y42"))
	if got := cmd.Field('Y', -1); got != 42 {
		t.Errorf("Expected Y=42, got Y=%f", got)
	}

	// A truncated line can end right on the letter.
	cmd = NewCommand([]byte("G1 Y"))
	if got := cmd.Field('Y', -1); got != -1 {
		t.Errorf("Expected default for trailing bare letter, got %f", got)
	}
}

func TestIndependentFamilies(t *testing.T) {
	// One line can answer for several code families at once.
	cmd := NewCommand([]byte("G1 X10 Y10 T104"))

	if got := cmd.Field('G', -1); got != 1 {
		t.Errorf("Expected G=1, got %f", got)
	}
	if got := cmd.Field('T', -1); got != 104 {
		t.Errorf("Expected T=104, got %f", got)
	}
	if cmd.Has('M') {
		t.Errorf("Expected no M field")
	}
}
