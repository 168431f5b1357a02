// Package kalman implements the Kalman filter behind a track: state
// z = (cx, cy, s, r, cx-dot, cy-dot, s-dot), observation (cx, cy, s, r).
// The constant-velocity/constant-aspect-ratio motion model and its
// noise schedule are specific to this 7-state/4-observation shape, so
// the filter is written directly against those fixed dimensions rather
// than through a general-purpose dimX/dimZ abstraction.
package kalman

import (
	"gonum.org/v1/gonum/mat"

	"github.com/nmichlo/sort-go/geometry"
)

const (
	dimX = 7
	dimZ = 4
)

// BoxFilter is a Kalman filter over a single tracked box.
type BoxFilter struct {
	x *mat.Dense // state (7,1)
	P *mat.Dense // state covariance (7,7)
	F *mat.Dense // state transition (7,7)
	H *mat.Dense // observation matrix (4,7)
	R *mat.Dense // measurement noise (4,4)
	Q *mat.Dense // process noise (7,7)
}

// NewBoxFilter builds a filter initialized at the observation box, with
// zero initial velocity and the noise/covariance schedule the tracker
// contract requires:
//   - F: identity plus position <- velocity coupling for cx, cy, s (not r).
//   - H: observes the first four state components only.
//   - R (measurement noise): identity, with the s,r entries scaled by 10 —
//     area and aspect ratio are trusted less than position.
//   - P (state covariance): 10*I, with the velocity block (rows/cols 4..6)
//     further multiplied by 1000, so velocities start at variance 10000
//     against a position variance of 10.
//   - Q (process noise): identity, with the s-dot entry scaled by 0.01 and
//     then the whole velocity block scaled by 0.01 again, so s-dot ends at
//     0.0001 while cx-dot, cy-dot end at 0.01.
func NewBoxFilter(box geometry.Box) (*BoxFilter, error) {
	cx, cy, s, r, err := geometry.ToZ(box)
	if err != nil {
		return nil, err
	}

	f := &BoxFilter{
		x: mat.NewDense(dimX, 1, nil),
		P: mat.NewDense(dimX, dimX, nil),
		F: mat.NewDense(dimX, dimX, nil),
		H: mat.NewDense(dimZ, dimX, nil),
		R: mat.NewDense(dimZ, dimZ, nil),
		Q: mat.NewDense(dimX, dimX, nil),
	}

	for i := 0; i < dimX; i++ {
		f.F.Set(i, i, 1)
	}
	f.F.Set(0, 4, 1)
	f.F.Set(1, 5, 1)
	f.F.Set(2, 6, 1)

	for i := 0; i < dimZ; i++ {
		f.H.Set(i, i, 1)
	}

	for i := 0; i < dimZ; i++ {
		f.R.Set(i, i, 1)
	}
	f.R.Set(2, 2, 10)
	f.R.Set(3, 3, 10)

	for i := 0; i < dimX; i++ {
		f.P.Set(i, i, 10)
	}
	for i := 4; i < dimX; i++ {
		f.P.Set(i, i, 10*1000)
	}

	for i := 0; i < dimX; i++ {
		f.Q.Set(i, i, 1)
	}
	f.Q.Set(6, 6, 0.01)
	for i := 4; i < dimX; i++ {
		f.Q.Set(i, i, f.Q.At(i, i)*0.01)
	}

	f.x.Set(0, 0, cx)
	f.x.Set(1, 0, cy)
	f.x.Set(2, 0, s)
	f.x.Set(3, 0, r)

	return f, nil
}

// Predict advances the filter by one step and returns the predicted box.
// If the predicted scale velocity would drive area non-positive
// (s + s-dot <= 0), s-dot is zeroed before stepping, matching the
// tracker's area-collapse guard.
func (f *BoxFilter) Predict() geometry.Box {
	if f.x.At(6, 0)+f.x.At(2, 0) <= 0 {
		f.x.Set(6, 0, 0)
	}

	var xPrior mat.Dense
	xPrior.Mul(f.F, f.x)
	f.x.Copy(&xPrior)

	var ft mat.Dense
	ft.Mul(f.F, f.P)
	var pPrior mat.Dense
	pPrior.Mul(&ft, f.F.T())
	f.P.Add(&pPrior, f.Q)

	return f.box()
}

// Update incorporates a matched observation into the filter state via a
// standard Kalman correction, using the Joseph form for the covariance
// update.
func (f *BoxFilter) Update(box geometry.Box) error {
	cx, cy, s, r, err := geometry.ToZ(box)
	if err != nil {
		return err
	}
	z := mat.NewDense(dimZ, 1, []float64{cx, cy, s, r})

	// y = z - H @ x
	var hx mat.Dense
	hx.Mul(f.H, f.x)
	var y mat.Dense
	y.Sub(z, &hx)

	// S = H @ P @ H^T + R
	var hp mat.Dense
	hp.Mul(f.H, f.P)
	var innov mat.Dense
	innov.Mul(&hp, f.H.T())
	innov.Add(&innov, f.R)

	var innovInv mat.Dense
	if err := innovInv.Inverse(&innov); err != nil {
		return nil
	}

	// K = P @ H^T @ S^-1
	var pht mat.Dense
	pht.Mul(f.P, f.H.T())
	var k mat.Dense
	k.Mul(&pht, &innovInv)

	// x = x + K @ y
	var ky mat.Dense
	ky.Mul(&k, &y)
	f.x.Add(f.x, &ky)

	// P = (I - K @ H) @ P @ (I - K @ H)^T + K @ R @ K^T
	identity := mat.NewDense(dimX, dimX, nil)
	for i := 0; i < dimX; i++ {
		identity.Set(i, i, 1)
	}
	var kh mat.Dense
	kh.Mul(&k, f.H)
	var iMinusKH mat.Dense
	iMinusKH.Sub(identity, &kh)
	var ikhP mat.Dense
	ikhP.Mul(&iMinusKH, f.P)
	var newP mat.Dense
	newP.Mul(&ikhP, iMinusKH.T())
	var kr mat.Dense
	kr.Mul(&k, f.R)
	var krkt mat.Dense
	krkt.Mul(&kr, k.T())
	newP.Add(&newP, &krkt)
	f.P.Copy(&newP)

	return nil
}

// State returns the current box estimate without stepping the filter.
func (f *BoxFilter) State() geometry.Box {
	return f.box()
}

func (f *BoxFilter) box() geometry.Box {
	return geometry.FromZ(f.x.At(0, 0), f.x.At(1, 0), f.x.At(2, 0), f.x.At(3, 0))
}
