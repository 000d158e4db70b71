// Package motion converts absolute plotter targets into relative polar legs
// (turn angle plus travel distance) and sequences two phase-wound stepper
// motors to execute them.
package motion

import "math"

// Point is a position on the drawing surface.
type Point struct {
	X float64
	Y float64
}

// Path is an ordered run of points drawn as connected straight segments.
type Path []Point

// Leg is one planned movement: pivot to Bearing, then drive Distance along
// it. NoTurn marks a degenerate zero-distance target: Bearing is then a
// "keep the previous heading" flag, not an absolute angle, and callers must
// skip the turn and leave the stored bearing alone.
type Leg struct {
	Distance float64
	Bearing  float64
	NoTurn   bool
}

// Planner owns the robot pose: the last committed position and bearing.
// The bearing is measured in radians from the positive x axis, normalized
// to [0, 2π). A fresh planner sits at the origin facing along +x.
type Planner struct {
	position Point
	bearing  float64
}

// NewPlanner returns a planner posed at (0,0) with bearing 0.
func NewPlanner() *Planner {
	return &Planner{}
}

// Position returns the last committed position.
func (p *Planner) Position() Point { return p.position }

// Bearing returns the last committed heading in radians.
func (p *Planner) Bearing() float64 { return p.bearing }

// Plan computes the leg from the stored pose to target. Negative targets
// are permitted here; the dispatcher gates those out before planning.
//
// The quadrant is picked by four ordered sign tests evaluated
// unconditionally, so on a shared boundary (dx or dy exactly zero) the
// last matching rule wins. That tie-break is deliberate and pinned by
// tests; do not reorder the rules.
func (p *Planner) Plan(target Point) Leg {
	dx := target.X - p.position.X
	dy := target.Y - p.position.Y
	distance := math.Sqrt(dx*dx + dy*dy)

	if distance == 0 {
		return Leg{NoTurn: true}
	}

	var bearing float64
	if dx > 0 && dy >= 0 {
		bearing = math.Asin(dy / distance)
	}
	if dx <= 0 && dy > 0 {
		bearing = math.Pi/2 + math.Asin(-dx/distance)
	}
	if dx < 0 && dy <= 0 {
		bearing = math.Pi + math.Asin(-dy/distance)
	}
	if dx >= 0 && dy < 0 {
		bearing = 2*math.Pi - math.Asin(-dy/distance)
	}

	return Leg{Distance: distance, Bearing: bearing}
}

// Commit records the end state of a completed leg. It must be called only
// after the physical move has finished, never before or during, so the
// next Plan works from the pose the hardware actually reached. A NoTurn
// leg keeps the previous bearing.
func (p *Planner) Commit(target Point, leg Leg) {
	p.position = target
	if !leg.NoTurn {
		p.bearing = leg.Bearing
	}
}
