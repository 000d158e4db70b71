// Package pen models the drawing-implement lift: a binary raise/lower
// actuator with no readback.
package pen

// Lift raises and lowers the drawing implement. Both calls are idempotent
// side effects that always succeed; the effect is observable only through
// physical state.
type Lift interface {
	Raise()
	Lower()
}

// Fake is a Lift test double recording every transition.
type Fake struct {
	Up     bool
	Events []bool
}

// Raise records a pen-up transition.
func (f *Fake) Raise() {
	f.Up = true
	f.Events = append(f.Events, true)
}

// Lower records a pen-down transition.
func (f *Fake) Lower() {
	f.Up = false
	f.Events = append(f.Events, false)
}

// Null is a Lift that does nothing, for running headless.
type Null struct{}

func (Null) Raise() {}
func (Null) Lower() {}
