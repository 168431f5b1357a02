// Package geometry implements the axis-aligned box primitives shared by
// the track filter and the association solver: IoU, and the bijection
// between the observation space [x1,y1,x2,y2] and the Kalman filter's
// [cx,cy,s,r] state subspace.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Box is an axis-aligned bounding box in corner form.
type Box struct {
	X1, Y1, X2, Y2 float64
}

func (b Box) width() float64  { return b.X2 - b.X1 }
func (b Box) height() float64 { return b.Y2 - b.Y1 }
func (b Box) area() float64   { return b.width() * b.height() }

// IoU returns the intersection-over-union of two boxes, clamped to
// [0, 1]. Intersection extents are clamped to zero before multiplying,
// so disjoint or degenerate boxes yield 0 rather than a negative area.
func IoU(a, b Box) float64 {
	ix1 := max(a.X1, b.X1)
	iy1 := max(a.Y1, b.Y1)
	ix2 := min(a.X2, b.X2)
	iy2 := min(a.Y2, b.Y2)

	iw := max(0, ix2-ix1)
	ih := max(0, iy2-iy1)
	intersection := iw * ih

	union := a.area() + b.area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

// Matrix is a rows x cols matrix of IoU scores. It wraps gonum's
// mat.Dense for the non-degenerate case; gonum itself refuses to
// allocate a matrix with a zero dimension, so a zero-row or zero-column
// Matrix carries no Dense backing and simply reports its (empty) shape.
type Matrix struct {
	rows, cols int
	dense      *mat.Dense
}

// At returns M[i][j]. Only valid for 0 <= i < rows, 0 <= j < cols.
func (m Matrix) At(i, j int) float64 {
	if m.dense == nil {
		return 0
	}
	return m.dense.At(i, j)
}

// Dims returns the matrix shape.
func (m Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// IoUBatch computes M[i][j] = IoU(dets[i], trks[j]) for every pair.
// Either slice may be empty; the returned matrix then has a zero
// dimension along the corresponding axis.
func IoUBatch(dets, trks []Box) Matrix {
	if len(dets) == 0 || len(trks) == 0 {
		return Matrix{rows: len(dets), cols: len(trks)}
	}
	dense := mat.NewDense(len(dets), len(trks), nil)
	for i, d := range dets {
		for j, t := range trks {
			dense.Set(i, j, IoU(d, t))
		}
	}
	return Matrix{rows: len(dets), cols: len(trks), dense: dense}
}

// ToZ converts a box to the filter's observation vector [cx, cy, s, r]
// where s is area and r is aspect ratio (width/height). It fails on
// zero-or-negative extent input, since r is undefined when h == 0 and
// a degenerate box carries no recoverable shape information.
func ToZ(b Box) (cx, cy, s, r float64, err error) {
	w, h := b.width(), b.height()
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("geometry: degenerate box %+v has non-positive extent", b)
	}
	cx = b.X1 + w/2
	cy = b.Y1 + h/2
	s = w * h
	r = w / h
	return cx, cy, s, r, nil
}

// FromZ recovers a box from [cx, cy, s, r]. It is the inverse of ToZ
// over the domain of positive-extent boxes: w = sqrt(s*r), h = s/w.
func FromZ(cx, cy, s, r float64) Box {
	w := math.Sqrt(s * r)
	h := s / w
	return Box{
		X1: cx - w/2,
		Y1: cy - h/2,
		X2: cx + w/2,
		Y2: cy + h/2,
	}
}
