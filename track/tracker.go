// Package track implements the tracker orchestrator: it owns the live
// set of tracks, runs the per-frame predict/associate/update/birth/death
// pipeline, and assigns stable identifiers.
package track

import (
	"log"

	"github.com/nmichlo/sort-go/assoc"
	"github.com/nmichlo/sort-go/geometry"
)

// Config holds the tracker's tunable parameters.
type Config struct {
	// MaxAge is the number of consecutive missed frames tolerated
	// before a track is removed.
	MaxAge int
	// MinHits is the consecutive-match streak required before a
	// steady-state emission; also the length of the startup warmup
	// window during which any updated track is emitted regardless of
	// streak length.
	MinHits int
	// IoUThreshold floors the IoU an association must clear to count.
	IoUThreshold float64
	// Solver is the assignment backend. Defaults to assoc.HungarianSolver{}.
	Solver assoc.Solver
}

// DefaultConfig mirrors the tracker's canonical defaults.
func DefaultConfig() Config {
	return Config{
		MaxAge:       1,
		MinHits:      3,
		IoUThreshold: 0.3,
		Solver:       assoc.HungarianSolver{},
	}
}

// Tracker owns a set of live tracks and a per-instance identifier
// counter. A fresh Tracker restarts the counter at 0; there is no
// cross-instance shared state.
type Tracker struct {
	cfg        Config
	tracks     []*track
	frameCount int
	nextID     int
}

// NewTracker constructs a tracker from cfg as given, except that a nil
// Solver is replaced by assoc.HungarianSolver{}. Zero MaxAge, MinHits
// or IoUThreshold values are used as zero; NewTrackerWithDefaults
// builds a tracker from DefaultConfig instead.
func NewTracker(cfg Config) *Tracker {
	if cfg.Solver == nil {
		cfg.Solver = assoc.HungarianSolver{}
	}
	return &Tracker{cfg: cfg}
}

// NewTrackerWithDefaults builds a tracker with DefaultConfig's values.
func NewTrackerWithDefaults() *Tracker {
	return NewTracker(DefaultConfig())
}

// Step runs one frame through the pipeline: predict every live track,
// drop any that degenerated, drop degenerate detections, associate the
// rest against survivors, update matches, birth unmatched detections,
// then walk the live set in reverse to build the emission list, testing
// emission before removal on each track in that single pass.
func (tr *Tracker) Step(dets []Detection) []Emission {
	tr.frameCount++

	predicted := make([]geometry.Box, 0, len(tr.tracks))
	survivors := tr.tracks[:0:0]
	for _, t := range tr.tracks {
		box := t.predict()
		if !isFiniteBox(box) {
			continue
		}
		survivors = append(survivors, t)
		predicted = append(predicted, box)
	}
	tr.tracks = survivors

	validDets := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if isDegenerateBox(d.Box) {
			continue
		}
		validDets = append(validDets, d)
	}

	detBoxes := make([]geometry.Box, len(validDets))
	for i, d := range validDets {
		detBoxes[i] = d.Box
	}

	result := assoc.Associate(detBoxes, predicted, tr.cfg.IoUThreshold, tr.cfg.Solver)

	for _, m := range result.Matches {
		if err := tr.tracks[m.TrkIdx].update(validDets[m.DetIdx]); err != nil {
			log.Printf("track: skipping update for track %d: %v", tr.tracks[m.TrkIdx].id, err)
		}
	}

	for _, d := range result.UnmatchedDets {
		nt, err := newTrack(tr.nextID, validDets[d])
		if err != nil {
			log.Printf("track: dropping detection %d: %v", d, err)
			continue
		}
		tr.nextID++
		tr.tracks = append(tr.tracks, nt)
	}

	var emissions []Emission
	live := make([]*track, 0, len(tr.tracks))
	for i := len(tr.tracks) - 1; i >= 0; i-- {
		t := tr.tracks[i]
		if t.timeSinceUpdate < 1 && (t.hitStreak >= tr.cfg.MinHits || tr.frameCount <= tr.cfg.MinHits) {
			emissions = append(emissions, Emission{Box: t.state(), ID: t.id + 1})
		}
		if t.timeSinceUpdate > tr.cfg.MaxAge {
			continue
		}
		live = append(live, t)
	}
	// live was built walking tr.tracks in reverse; restore forward order.
	for i, j := 0, len(live)-1; i < j; i, j = i+1, j-1 {
		live[i], live[j] = live[j], live[i]
	}
	tr.tracks = live

	return emissions
}
