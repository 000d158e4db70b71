package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"goturtle/motion"
)

// FromDXF reads POLYLINE entities from a DXF file, treating it as the
// plaintext group-code/value stream it is. Each polyline becomes one
// path; consecutive duplicate vertices are dropped. Coordinates come back
// in file units; call Fit to scale them onto the drawing span.
func FromDXF(r io.Reader) ([]motion.Path, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading dxf")
	}

	var (
		paths      []motion.Path
		inPolyline bool
		inVertex   bool
		x, y       float64
		haveX      bool
		last       motion.Point
		haveLast   bool
	)

	for i := 0; i < len(lines); i++ {
		switch strings.TrimSpace(lines[i]) {
		case "POLYLINE":
			inPolyline = true
			haveLast = false
			paths = append(paths, motion.Path{})

		case "VERTEX":
			inVertex = true

		case "10":
			if !inPolyline || !inVertex || i+1 >= len(lines) {
				continue
			}
			i++
			v, err := strconv.ParseFloat(strings.TrimSpace(lines[i]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dxf: bad x coordinate at line %d", i+1)
			}
			x, haveX = v, true

		case "20":
			if !inPolyline || !inVertex || !haveX || i+1 >= len(lines) {
				continue
			}
			i++
			v, err := strconv.ParseFloat(strings.TrimSpace(lines[i]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dxf: bad y coordinate at line %d", i+1)
			}
			y = v
			pt := motion.Point{X: x, Y: y}
			if !haveLast || pt != last {
				paths[len(paths)-1] = append(paths[len(paths)-1], pt)
				last, haveLast = pt, true
			}
			haveX = false

		case "SEQEND":
			inPolyline = false
			inVertex = false
		}
	}

	// Drop polylines that carried no vertices.
	out := paths[:0]
	for _, p := range paths {
		if len(p) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}
