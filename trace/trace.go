// Package trace extracts drawable outline paths from raster images and DXF
// files, sized to the plotter's drawing span.
package trace

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"goturtle/motion"
)

// Options control path extraction.
type Options struct {
	// Span is the square working area the artwork is scaled to fit.
	Span int
	// Tolerance is the max distance a point may sit from a segment and
	// still be smoothed away.
	Tolerance float64
}

// DefaultOptions matches the reference plotter: a 305 mm (12 in) square
// span and one-unit smoothing tolerance.
func DefaultOptions() Options {
	return Options{Span: 305, Tolerance: 1}
}

// FromImage traces the outline of every dark shape in img and returns the
// shapes as closed paths. The image is contrast-boosted and resized to the
// span first; outlines are followed clockwise with the square tracing
// algorithm and then smoothed by collinear-point removal.
func FromImage(img image.Image, opts Options) []motion.Path {
	if opts.Span <= 0 {
		opts.Span = DefaultOptions().Span
	}
	prepared := imaging.AdjustContrast(img, 50)
	prepared = imaging.Resize(prepared, opts.Span, opts.Span, imaging.Lanczos)

	t := &tracer{img: prepared, size: opts.Span, done: map[image.Point]bool{}}

	var paths []motion.Path
	for {
		start, ok := t.nextShape()
		if !ok {
			break
		}
		paths = append(paths, t.shape(start))
	}

	for i, p := range paths {
		p = simplify(p, opts.Tolerance)
		// Each shape must close back on its first point.
		if len(p) > 0 && p[len(p)-1] != p[0] {
			p = append(p, p[0])
		}
		paths[i] = p
	}
	return paths
}

type tracer struct {
	img  *image.NRGBA
	size int
	done map[image.Point]bool
	// dir is the current tracing direction:
	// 0 = right, 1 = up, 2 = left, 3 = down.
	dir int
}

// dark reports whether the pixel reads below the mid-gray threshold.
// Out-of-bounds coordinates read as white.
func (t *tracer) dark(x, y int) bool {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return false
	}
	i := t.img.PixOffset(x, y)
	sum := int(t.img.Pix[i]) + int(t.img.Pix[i+1]) + int(t.img.Pix[i+2])
	return sum < 3*127
}

// onEdge reports whether any 4-neighbor of (x,y) is outside the shape.
func (t *tracer) onEdge(x, y int) bool {
	return !t.dark(x-1, y) || !t.dark(x, y-1) || !t.dark(x+1, y) || !t.dark(x, y+1)
}

// nextShape scans for the first untraced dark edge pixel.
func (t *tracer) nextShape() (image.Point, bool) {
	for x := 0; x < t.size; x++ {
		for y := 0; y < t.size; y++ {
			p := image.Pt(x, y)
			if t.dark(x, y) && t.onEdge(x, y) && !t.done[p] {
				t.done[p] = true
				return p, true
			}
		}
	}
	return image.Point{}, false
}

// shape walks the outline clockwise from start until it closes.
func (t *tracer) shape(start image.Point) motion.Path {
	path := motion.Path{{X: float64(start.X), Y: float64(start.Y)}}
	p := start
	// The walk terminates when it returns to start; the budget guards
	// against pathological images that never close.
	budget := 4 * t.size * t.size
	for i := 0; i < budget; i++ {
		p = t.nextInShape(p)
		t.done[p] = true
		path = append(path, motion.Point{X: float64(p.X), Y: float64(p.Y)})
		if p == start {
			break
		}
	}
	return path
}

// nextInShape advances one pixel along the outline: on a dark pixel the
// walk turns left of its previous direction, on a white one it turns
// right, and it keeps stepping until it lands on a dark pixel.
func (t *tracer) nextInShape(p image.Point) image.Point {
	for {
		if t.dark(p.X, p.Y) {
			t.dir = (t.dir + 3) % 4
		} else {
			t.dir = (t.dir + 1) % 4
		}
		switch t.dir {
		case 0:
			p.X++
		case 1:
			p.Y++
		case 2:
			p.X--
		case 3:
			p.Y--
		}
		if t.dark(p.X, p.Y) {
			return p
		}
	}
}

// simplify drops points that sit within tol of the segment joining their
// neighbors, collapsing the stair-stepping a pixel walk produces.
func simplify(path motion.Path, tol float64) motion.Path {
	if len(path) <= 2 {
		return path
	}
	out := motion.Path{path[0]}
	i := 0
	for i < len(path)-1 {
		j := len(path) - 1
		for ; j > i+1; j-- {
			if spanWithin(path, i, j, tol) {
				break
			}
		}
		out = append(out, path[j])
		i = j
	}
	return out
}

// spanWithin reports whether every point strictly between i and j lies
// within tol of the line through path[i] and path[j].
func spanWithin(path motion.Path, i, j int, tol float64) bool {
	a, b := path[i], path[j]
	if a.X == b.X {
		// Vertical line: distance is plain x offset.
		for _, p := range path[i+1 : j] {
			if math.Abs(p.X-a.X) >= tol {
				return false
			}
		}
		return true
	}
	m := (b.Y - a.Y) / (b.X - a.X)
	c := a.Y - m*a.X
	norm := math.Sqrt(m*m + 1)
	for _, p := range path[i+1 : j] {
		if math.Abs(m*p.X-p.Y+c)/norm >= tol {
			return false
		}
	}
	return true
}

// Fit rescales paths so the artwork fills a span-sized square, inferring
// the source size from the outermost coordinates plus the margin left at
// the near edges.
func Fit(paths []motion.Path, span float64) {
	minC := math.Inf(1)
	maxC := math.Inf(-1)
	for _, path := range paths {
		for _, p := range path {
			minC = math.Min(minC, math.Min(p.X, p.Y))
			maxC = math.Max(maxC, math.Max(p.X, p.Y))
		}
	}
	size := maxC + minC
	if size <= 0 || math.IsInf(size, 0) {
		return
	}
	s := span / size
	for _, path := range paths {
		for i := range path {
			path[i].X *= s
			path[i].Y *= s
		}
	}
}
