package motion

// Motor identifies one of the two drive motors.
type Motor int

// The left and right wheel motors, mounted mirrored and inward-facing.
const (
	Left Motor = iota
	Right
)

// PhaseSteps is the length of the half-step commutation cycle.
const PhaseSteps = 8

// halfStepSeq is the 8-step winding pattern cycle for a unipolar stepper,
// one bit per winding, low bit = winding A.
var halfStepSeq = [PhaseSteps]byte{
	0b0001,
	0b0011,
	0b0010,
	0b0110,
	0b0100,
	0b1100,
	0b1000,
	0b1001,
}

// PatternFor maps a phase index to its 4-bit winding pattern. Any index
// outside 0–7 de-energizes the windings (0x0) rather than applying an
// undefined pattern.
func PatternFor(index int) byte {
	if index < 0 || index >= PhaseSteps {
		return 0
	}
	return halfStepSeq[index]
}

// PhaseDriver writes winding patterns to the physical motor outputs. The
// register mapping lives behind this interface so hardware backends and
// test doubles are interchangeable.
//
// ApplyPhase energizes motor m with the pattern for the given phase index
// and returns the pattern it applied; out-of-range indices must
// de-energize the motor and return 0.
type PhaseDriver interface {
	ApplyPhase(m Motor, index int) byte
}

// Recorder is a PhaseDriver test double that records every pattern applied
// to each motor.
type Recorder struct {
	Applied [2][]byte
}

// ApplyPhase records and returns the pattern for index on motor m.
func (r *Recorder) ApplyPhase(m Motor, index int) byte {
	p := PatternFor(index)
	r.Applied[m] = append(r.Applied[m], p)
	return p
}

// Steps returns how many patterns have been applied to motor m.
func (r *Recorder) Steps(m Motor) int { return len(r.Applied[m]) }

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.Applied[0] = nil
	r.Applied[1] = nil
}
