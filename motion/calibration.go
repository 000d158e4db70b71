package motion

import "errors"

// Compiled calibration defaults, measured on the reference chassis.
const (
	// DefaultAngularRatio is how many wheel revolutions one full robot
	// rotation costs ("CWR": chassis-to-wheel ratio).
	DefaultAngularRatio = 2.25

	// DefaultLinearScale is steps per unit of straight-line travel.
	DefaultLinearScale = 20.0584
)

var (
	errRatio      = errors.New("angular ratio must be positive")
	errMultiplier = errors.New("size multiplier must be positive")
)

// Calibration holds the correction factors for mechanical tolerance.
// Each factor is either the compiled default or a runtime trial override;
// overrides persist until replaced or the process restarts.
type Calibration struct {
	trialRatio    float64
	ratioOverride bool
	multiplier    float64
	customScale   float64
	scaleOverride bool
}

// NewCalibration returns calibration state at compiled defaults.
func NewCalibration() *Calibration {
	return &Calibration{multiplier: 1}
}

// AngularRatio returns the active chassis-to-wheel ratio.
func (c *Calibration) AngularRatio() float64 {
	if c.ratioOverride {
		return c.trialRatio
	}
	return DefaultAngularRatio
}

// LinearScale returns the active steps-per-unit travel scale.
func (c *Calibration) LinearScale() float64 {
	if c.scaleOverride {
		return c.customScale
	}
	return DefaultLinearScale
}

// Multiplier returns the active size multiplier (1 at defaults).
func (c *Calibration) Multiplier() float64 { return c.multiplier }

// SetTrialRatio installs a trial angular ratio. A non-positive value is
// rejected and the prior state is retained unchanged.
func (c *Calibration) SetTrialRatio(ratio float64) error {
	if ratio <= 0 {
		return errRatio
	}
	c.trialRatio = ratio
	c.ratioOverride = true
	return nil
}

// SetTrialMultiplier installs a trial size multiplier and recomputes the
// derived custom linear scale as base scale times multiplier. A
// non-positive value is rejected and the prior state is retained.
func (c *Calibration) SetTrialMultiplier(mult float64) error {
	if mult <= 0 {
		return errMultiplier
	}
	c.multiplier = mult
	c.customScale = DefaultLinearScale * mult
	c.scaleOverride = true
	return nil
}
