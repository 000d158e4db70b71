package motion

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"
)

// newTestExecutor steps against a recorder with a near-zero settle time so
// tests run at full speed.
func newTestExecutor() (*Executor, *Recorder, *Calibration) {
	rec := &Recorder{}
	calib := NewCalibration()
	return NewExecutor(rec, calib, DefaultStepsPerRev, time.Nanosecond, nil), rec, calib
}

func TestMoveStepCount(t *testing.T) {
	e, rec, _ := newTestExecutor()

	// One unit at the default scale lands on 20 whole steps.
	e.Move(1)
	test.That(t, rec.Steps(Left), test.ShouldEqual, 20)
	test.That(t, rec.Steps(Right), test.ShouldEqual, 20)
}

func TestMoveStepCountScaled(t *testing.T) {
	e, rec, calib := newTestExecutor()
	test.That(t, calib.SetTrialMultiplier(2), test.ShouldBeNil)

	e.Move(1)
	test.That(t, rec.Steps(Left), test.ShouldEqual, 40)
}

func TestRotateStepCount(t *testing.T) {
	e, rec, _ := newTestExecutor()

	// Quarter turn at ratio 2.25: 90/360 * 4096 * 2.25 = 2304.
	e.Rotate(math.Pi/2, true)
	test.That(t, rec.Steps(Left), test.ShouldEqual, 2304)
	test.That(t, rec.Steps(Right), test.ShouldEqual, 2304)
	test.That(t, e.Forward(), test.ShouldBeTrue)
}

func TestRotateStepCountTrialRatio(t *testing.T) {
	e, rec, calib := newTestExecutor()
	test.That(t, calib.SetTrialRatio(3), test.ShouldBeNil)

	e.Rotate(math.Pi/2, true)
	test.That(t, rec.Steps(Left), test.ShouldEqual, 3072)
}

func TestRotateReflexFold(t *testing.T) {
	// A reflex angle folds to its complement: 3π/2 turns as π/2 the other
	// way, same step count, direction flag untouched.
	e, rec, _ := newTestExecutor()
	e.Rotate(3*math.Pi/2, true)
	test.That(t, rec.Steps(Left), test.ShouldEqual, 2304)
	test.That(t, e.Forward(), test.ShouldBeTrue)
}

func TestRotateObtuseFoldFlipsDirection(t *testing.T) {
	// An obtuse angle folds past π/2 and flips the travel direction, so the
	// next drive backs toward the target. 3π/4 executes as π/4.
	e, rec, _ := newTestExecutor()
	e.Rotate(3*math.Pi/4, true)

	want := int(math.Round(45.0 / 360 * DefaultStepsPerRev * DefaultAngularRatio))
	test.That(t, rec.Steps(Left), test.ShouldEqual, want)
	test.That(t, e.Forward(), test.ShouldBeFalse)

	// The flag persists and flips back on the next obtuse fold.
	e.Rotate(3*math.Pi/4, false)
	test.That(t, e.Forward(), test.ShouldBeTrue)
}

func TestRotatePatternsIdentical(t *testing.T) {
	// A pivot sends the same pattern to both motors on every step.
	e, rec, _ := newTestExecutor()
	e.Rotate(0.02, true)

	test.That(t, rec.Steps(Left), test.ShouldBeGreaterThan, 0)
	for i := range rec.Applied[Left] {
		test.That(t, rec.Applied[Left][i], test.ShouldEqual, rec.Applied[Right][i])
	}
}

func TestMovePatternsComplementary(t *testing.T) {
	// A drive mirrors the cycle for the right motor: left seq[i] pairs with
	// right seq[7-i].
	e, rec, _ := newTestExecutor()
	e.Move(1)

	test.That(t, rec.Steps(Left), test.ShouldEqual, 20)
	idx := 0
	for i := range rec.Applied[Left] {
		idx = (idx + 1) % PhaseSteps
		test.That(t, rec.Applied[Left][i], test.ShouldEqual, halfStepSeq[idx])
		test.That(t, rec.Applied[Right][i], test.ShouldEqual, halfStepSeq[PhaseSteps-1-idx])
	}
}

func TestPhaseIndexSharedAcrossCalls(t *testing.T) {
	// The phase index carries over between moves so windings never jump.
	e, rec, _ := newTestExecutor()
	e.Move(0.25) // 5 steps, index ends at 5
	rec.Reset()

	e.Move(0.25)
	test.That(t, rec.Applied[Left][0], test.ShouldEqual, halfStepSeq[6])
}

func TestRelease(t *testing.T) {
	e, rec, _ := newTestExecutor()
	e.Move(0.1)
	rec.Reset()

	e.Release()
	test.That(t, rec.Applied[Left], test.ShouldResemble, []byte{0})
	test.That(t, rec.Applied[Right], test.ShouldResemble, []byte{0})
}

func TestPatternFor(t *testing.T) {
	test.That(t, PatternFor(0), test.ShouldEqual, byte(0b0001))
	test.That(t, PatternFor(7), test.ShouldEqual, byte(0b1001))
	test.That(t, PatternFor(-1), test.ShouldEqual, byte(0))
	test.That(t, PatternFor(8), test.ShouldEqual, byte(0))
}

func TestRotateZero(t *testing.T) {
	e, rec, _ := newTestExecutor()
	e.Rotate(0, true)
	e.Move(0)
	test.That(t, rec.Steps(Left), test.ShouldEqual, 0)
}
