package motion

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestPlanQuadrants(t *testing.T) {
	tests := []struct {
		name    string
		target  Point
		bearing float64
	}{
		{"east", Point{X: 10, Y: 0}, 0},
		{"northeast", Point{X: 10, Y: 10}, math.Pi / 4},
		{"north", Point{X: 0, Y: 10}, math.Pi / 2},
		{"northwest", Point{X: -10, Y: 10}, 3 * math.Pi / 4},
		{"west", Point{X: -10, Y: 0}, math.Pi},
		{"southwest", Point{X: -10, Y: -10}, 5 * math.Pi / 4},
		{"south", Point{X: 0, Y: -10}, 3 * math.Pi / 2},
		{"southeast", Point{X: 10, Y: -10}, 7 * math.Pi / 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlanner()
			leg := p.Plan(tc.target)
			test.That(t, leg.NoTurn, test.ShouldBeFalse)
			test.That(t, leg.Bearing, test.ShouldAlmostEqual, tc.bearing, 1e-12)
		})
	}
}

func TestPlanBearingRange(t *testing.T) {
	// Bearings always land in [0, 2π); the south target in particular must
	// come out as 3π/2, not -π/2.
	p := NewPlanner()
	for _, target := range []Point{
		{X: 1, Y: -1}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: 0},
	} {
		leg := p.Plan(target)
		test.That(t, leg.Bearing, test.ShouldBeGreaterThanOrEqualTo, 0.0)
		test.That(t, leg.Bearing, test.ShouldBeLessThan, 2*math.Pi)
	}
}

func TestPlanDistance(t *testing.T) {
	p := NewPlanner()
	leg := p.Plan(Point{X: 3, Y: 4})
	test.That(t, leg.Distance, test.ShouldAlmostEqual, 5, 1e-12)
}

func TestPlanZeroDelta(t *testing.T) {
	p := NewPlanner()
	p.Commit(Point{X: 5, Y: 5}, Leg{Distance: math.Sqrt(50), Bearing: math.Pi / 4})

	leg := p.Plan(Point{X: 5, Y: 5})
	test.That(t, leg.NoTurn, test.ShouldBeTrue)
	test.That(t, leg.Distance, test.ShouldEqual, 0.0)

	// Committing the degenerate leg keeps the previous heading.
	p.Commit(Point{X: 5, Y: 5}, leg)
	test.That(t, p.Bearing(), test.ShouldAlmostEqual, math.Pi/4, 1e-12)
}

func TestPlanRelativeToPose(t *testing.T) {
	p := NewPlanner()
	p.Commit(Point{X: 10, Y: 10}, Leg{Distance: math.Sqrt(200), Bearing: math.Pi / 4})

	// Due west of the stored position.
	leg := p.Plan(Point{X: 0, Y: 10})
	test.That(t, leg.Distance, test.ShouldAlmostEqual, 10, 1e-12)
	test.That(t, leg.Bearing, test.ShouldAlmostEqual, math.Pi, 1e-12)
}

func TestCommitAfterMove(t *testing.T) {
	p := NewPlanner()
	target := Point{X: 10, Y: 0}
	leg := p.Plan(target)

	// The pose must not move until the leg is committed.
	test.That(t, p.Position(), test.ShouldResemble, Point{})

	p.Commit(target, leg)
	test.That(t, p.Position(), test.ShouldResemble, target)
	test.That(t, p.Bearing(), test.ShouldEqual, 0.0)
}
