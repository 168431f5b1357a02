package track

import (
	"math"

	"github.com/nmichlo/sort-go/geometry"
	"github.com/nmichlo/sort-go/kalman"
)

// Detection is a single-frame observation. Score is opaque to the
// tracker and passed through only for the caller's benefit.
type Detection struct {
	Box   geometry.Box
	Score float64
}

// Emission is a track reported for one frame. Only tracks matched on
// that frame are emitted; coasting tracks are not.
type Emission struct {
	Box geometry.Box
	ID  int
}

// track is one live object hypothesis: a Kalman filter plus the
// bookkeeping counters that drive the lifecycle policy.
type track struct {
	id              int
	filter          *kalman.BoxFilter
	timeSinceUpdate int
	hits            int
	hitStreak       int
	age             int
}

func newTrack(id int, det Detection) (*track, error) {
	f, err := kalman.NewBoxFilter(det.Box)
	if err != nil {
		return nil, err
	}
	return &track{id: id, filter: f}, nil
}

// predict advances the filter one step and updates age/streak
// bookkeeping. It returns the predicted box, which may contain
// non-finite coordinates if the filter state has degenerated.
func (t *track) predict() geometry.Box {
	box := t.filter.Predict()
	t.age++
	if t.timeSinceUpdate > 0 {
		t.hitStreak = 0
	}
	t.timeSinceUpdate++
	return box
}

func (t *track) update(det Detection) error {
	if err := t.filter.Update(det.Box); err != nil {
		return err
	}
	t.timeSinceUpdate = 0
	t.hits++
	t.hitStreak++
	return nil
}

func (t *track) state() geometry.Box {
	return t.filter.State()
}

func isFiniteBox(b geometry.Box) bool {
	return isFinite(b.X1) && isFinite(b.Y1) && isFinite(b.X2) && isFinite(b.Y2)
}

// isDegenerateBox reports whether a box has zero or negative width or
// height; such detections carry no recoverable shape (to_z would fail
// on them) and are dropped before association, not merely at birth.
func isDegenerateBox(b geometry.Box) bool {
	return b.X2-b.X1 <= 0 || b.Y2-b.Y1 <= 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
