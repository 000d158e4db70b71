package motion

import (
	"math"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultStepsPerRev is the half-step count for one shaft revolution of
// the geared drive motors.
const DefaultStepsPerRev = 4096

// DefaultStepDelay is the settle time between phase advances, bounding
// the mechanical step rate.
const DefaultStepDelay = 2 * time.Millisecond

// Executor turns planned legs into motor pulses. It owns the shared
// 8-position phase index and the persistent linear travel direction flag.
// All stepping is synchronous: a call returns only after the last phase
// pattern has been applied.
type Executor struct {
	driver      PhaseDriver
	calib       *Calibration
	clk         clock.Clock
	stepsPerRev int
	stepDelay   time.Duration

	index   int
	forward bool
}

// NewExecutor wires an executor to a phase driver and calibration state.
// The clock is injectable so tests can run the sequencers without
// wall-clock waits.
func NewExecutor(driver PhaseDriver, calib *Calibration, stepsPerRev int, stepDelay time.Duration, clk clock.Clock) *Executor {
	if stepsPerRev <= 0 {
		stepsPerRev = DefaultStepsPerRev
	}
	if stepDelay <= 0 {
		stepDelay = DefaultStepDelay
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Executor{
		driver:      driver,
		calib:       calib,
		clk:         clk,
		stepsPerRev: stepsPerRev,
		stepDelay:   stepDelay,
		forward:     true,
	}
}

// Forward reports the persistent linear travel direction flag.
func (e *Executor) Forward() bool { return e.forward }

// Rotate pivots the robot in place by angle radians, counter-clockwise
// when ccw is set. Two successive shortest-path reductions apply first:
// a reflex angle is folded to its complement with the turn sense
// inverted, and a remaining angle past π/2 is folded again with the turn
// sense inverted and the linear travel direction flipped, so the next
// drive backs toward the target instead of finishing a longer pure
// rotation. The flipped direction persists into the next Move.
func (e *Executor) Rotate(angle float64, ccw bool) {
	if angle > math.Pi {
		angle = 2*math.Pi - angle
		ccw = !ccw
	}
	if angle > math.Pi/2 {
		angle = math.Pi - angle
		ccw = !ccw
		e.forward = !e.forward
	}

	steps := int(math.Round(angle * (180 / math.Pi) * float64(e.stepsPerRev) / 360 * e.calib.AngularRatio()))
	for i := 0; i < steps; i++ {
		e.advance(ccw)
		// Identical patterns to both motors: the mirrored mounts turn
		// that into counter-rotating wheels, an in-place pivot.
		e.driver.ApplyPhase(Left, e.index)
		e.driver.ApplyPhase(Right, e.index)
		e.clk.Sleep(e.stepDelay)
	}
}

// Move drives distance units along the current bearing, forward or in
// reverse per the persistent direction flag.
func (e *Executor) Move(distance float64) {
	steps := int(math.Round(distance * e.calib.LinearScale()))
	for i := 0; i < steps; i++ {
		e.advance(e.forward)
		// Complementary patterns (the drive table mirrors the cycle for
		// the right motor) spin both wheels in the same sense: translation.
		e.driver.ApplyPhase(Left, e.index)
		e.driver.ApplyPhase(Right, PhaseSteps-1-e.index)
		e.clk.Sleep(e.stepDelay)
	}
}

// Release de-energizes both motors.
func (e *Executor) Release() {
	e.driver.ApplyPhase(Left, -1)
	e.driver.ApplyPhase(Right, -1)
}

func (e *Executor) advance(up bool) {
	if up {
		e.index = (e.index + 1) % PhaseSteps
	} else {
		e.index = (e.index + PhaseSteps - 1) % PhaseSteps
	}
}
