// Package plotter dispatches command lines to the motion core: it
// classifies each line's code families, gates motion targets, and runs the
// turn-then-drive pipeline against the planner and executor.
package plotter

import (
	"fmt"
	"io"
	"math"

	"goturtle/gcode"
	"goturtle/motion"
	"goturtle/pen"
)

const commandReference = `goturtle command reference
  G0 X<n> Y<n>   travel (pen up) to X,Y
  G1 X<n> Y<n>   draw (pen down) to X,Y
  G2/G3          accepted as G1; arc parameters ignored
  M100           print this reference
  T100 C<ratio>  set trial CWR angular ratio
  T101 S<mult>   set trial SIZE multiplier
  T102           draw calibration square
  T103           draw test pattern
  T104 / T105    pen up / pen down
`

// Plotter executes one command line at a time, to completion, against a
// single shared pose. It is single-threaded by construction; the transport
// buffers input while a move is stepping.
type Plotter struct {
	planner *motion.Planner
	exec    *motion.Executor
	calib   *motion.Calibration
	lift    pen.Lift
	out     io.Writer

	penUp bool
}

// New assembles a plotter. Notices and echoes are written to out, the
// reply side of the transport.
func New(planner *motion.Planner, exec *motion.Executor, calib *motion.Calibration, lift pen.Lift, out io.Writer) *Plotter {
	return &Plotter{
		planner: planner,
		exec:    exec,
		calib:   calib,
		lift:    lift,
		out:     out,
	}
}

// PenUp reports the current implement lift flag.
func (p *Plotter) PenUp() bool { return p.penUp }

// Pose returns the committed position and bearing.
func (p *Plotter) Pose() (motion.Point, float64) {
	return p.planner.Position(), p.planner.Bearing()
}

// ProcessLine interprets one received command line and runs it to
// completion. Lines beyond the capture limit are truncated with a notice
// and the prefix still processed. The motion, menu and test families are
// checked independently; unrecognized codes are silent no-ops.
func (p *Plotter) ProcessLine(line []byte) {
	if len(line) > gcode.MaxLine {
		fmt.Fprintf(p.out, "line overflow: processing first %d bytes\n", gcode.MaxLine)
		line = line[:gcode.MaxLine]
	}
	cmd := gcode.NewCommand(line)
	p.handleMotion(cmd)
	p.handleMenu(cmd)
	p.handleTest(cmd)
}

func (p *Plotter) handleMotion(cmd gcode.Command) {
	switch cmd.Field('G', -1) {
	case 0:
		p.raise()
	case 1, 2, 3:
		// G2/G3 arcs degrade to straight moves: I/J/R are ignored and
		// only the endpoint is honored.
		p.lower()
	default:
		return
	}

	// Absent coordinates read as -1, so the negativity gate also rejects
	// incomplete moves. A gated move is a no-op, not an error.
	x := cmd.Field('X', -1)
	y := cmd.Field('Y', -1)
	if x < 0 || y < 0 {
		return
	}
	p.moveTo(motion.Point{X: x, Y: y})
}

func (p *Plotter) handleMenu(cmd gcode.Command) {
	if cmd.Field('M', -1) == 100 {
		io.WriteString(p.out, commandReference)
	}
}

func (p *Plotter) handleTest(cmd gcode.Command) {
	switch cmd.Field('T', -1) {
	case 100:
		ratio := cmd.Field('C', -1)
		if err := p.calib.SetTrialRatio(ratio); err != nil {
			fmt.Fprintf(p.out, "Invalid CWR ratio %g, try again\n", ratio)
			return
		}
		fmt.Fprintf(p.out, "CWR ratio set to %g\n", ratio)
	case 101:
		mult := cmd.Field('S', -1)
		if err := p.calib.SetTrialMultiplier(mult); err != nil {
			fmt.Fprintf(p.out, "Invalid SIZE multiplier %g, try again\n", mult)
			return
		}
		fmt.Fprintf(p.out, "SIZE set to %g%%\n", mult*100)
	case 102:
		p.drawSquare()
	case 103:
		p.drawTestPattern()
	case 104:
		p.raise()
	case 105:
		p.lower()
	}
}

// moveTo runs the full pipeline for one target: plan, pivot, drive,
// commit. The pose is committed only after the drive finishes.
func (p *Plotter) moveTo(target motion.Point) {
	leg := p.planner.Plan(target)
	if !leg.NoTurn {
		stored := p.planner.Bearing()
		switch {
		case leg.Bearing < stored:
			p.exec.Rotate(stored-leg.Bearing, false)
		case leg.Bearing > stored:
			p.exec.Rotate(leg.Bearing-stored, true)
		}
	}
	p.exec.Move(leg.Distance)
	p.planner.Commit(target, leg)
}

func (p *Plotter) raise() {
	p.lift.Raise()
	p.penUp = true
}

func (p *Plotter) lower() {
	p.lift.Lower()
	p.penUp = false
}

// squarePath is the fixed nine-point calibration square: half-side stops
// around a 100-unit square, ending back at the origin.
var squarePath = motion.Path{
	{X: 0, Y: 0},
	{X: 50, Y: 0},
	{X: 100, Y: 0},
	{X: 100, Y: 50},
	{X: 100, Y: 100},
	{X: 50, Y: 100},
	{X: 0, Y: 100},
	{X: 0, Y: 50},
	{X: 0, Y: 0},
}

func (p *Plotter) drawSquare() {
	p.tracePath(squarePath)
	p.raise()
}

// drawTestPattern draws a 16-segment circle, a diagonal cross and a
// square, then parks at the origin.
func (p *Plotter) drawTestPattern() {
	const (
		cx, cy = 50.0, 50.0
		radius = 40.0
	)
	circle := make(motion.Path, 17)
	for i := range circle {
		a := 2 * math.Pi * float64(i) / 16
		circle[i] = motion.Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	p.tracePath(circle)

	p.tracePath(motion.Path{{X: 0, Y: 0}, {X: 100, Y: 100}})
	p.tracePath(motion.Path{{X: 100, Y: 0}, {X: 0, Y: 100}})
	p.tracePath(motion.Path{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0},
	})
	p.raise()
}

// tracePath travels pen-up to the first point, then draws the rest.
func (p *Plotter) tracePath(path motion.Path) {
	if len(path) == 0 {
		return
	}
	p.raise()
	p.moveTo(path[0])
	p.lower()
	for _, pt := range path[1:] {
		p.moveTo(pt)
	}
}
