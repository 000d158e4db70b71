package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"goturtle/motion"
)

// WriteProgram emits a drawable program for paths in the plotter dialect:
// a G0 travel to each path's first point, G1 draw moves through the rest,
// and a final G0 back to the origin. The preamble mirrors common CAM
// output; the firmware ignores the codes it does not recognize.
func WriteProgram(w io.Writer, paths []motion.Path) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "G17 G21 G90 G54")
	fmt.Fprintln(bw, "G0 X0 Y0")

	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		fmt.Fprintf(bw, "G0 X%s Y%s\n", coord(path[0].X), coord(path[0].Y))
		for _, pt := range path[1:] {
			fmt.Fprintf(bw, "G1 X%s Y%s\n", coord(pt.X), coord(pt.Y))
		}
	}

	fmt.Fprintln(bw, "G0 X0 Y0")
	return bw.Flush()
}

func coord(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Align rewrites an externally produced program that encodes pen state as
// Z moves (Z0 down-and-drawing, Z1 retracted) into the G0/G1 pen dialect
// the firmware consumes. Z lines are folded into the prefix of the
// following coordinate lines; everything unrecognized is dropped.
func Align(program string) string {
	penUp := true
	out := []string{"G0 X0 Y0"}

	for _, line := range strings.Split(program, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Z0"):
			penUp = false
		case strings.HasPrefix(line, "Z1"):
			penUp = true
		case strings.HasPrefix(line, "X"):
			prefix := "G1 "
			if penUp {
				prefix = "G0 "
			}
			out = append(out, prefix+line)
		}
	}

	out = append(out, "G0 X0 Y0", "")
	return strings.Join(out, "\n")
}
