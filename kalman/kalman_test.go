package kalman

import (
	"testing"

	"github.com/nmichlo/sort-go/geometry"
	"github.com/nmichlo/sort-go/internal/testutil"
)

func TestNewBoxFilter_InitializesAtObservation(t *testing.T) {
	box := geometry.Box{X1: 100, Y1: 100, X2: 200, Y2: 150}
	f, err := NewBoxFilter(box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := f.State()
	testutil.AssertAlmostEqual(t, got.X1, box.X1, 1e-9, "x1")
	testutil.AssertAlmostEqual(t, got.Y1, box.Y1, 1e-9, "y1")
	testutil.AssertAlmostEqual(t, got.X2, box.X2, 1e-9, "x2")
	testutil.AssertAlmostEqual(t, got.Y2, box.Y2, 1e-9, "y2")
}

func TestNewBoxFilter_DegenerateBoxErrors(t *testing.T) {
	if _, err := NewBoxFilter(geometry.Box{X1: 0, Y1: 0, X2: 0, Y2: 10}); err == nil {
		t.Fatal("expected error for zero-width box")
	}
}

func TestBoxFilter_PredictThenUpdateConverges(t *testing.T) {
	box := geometry.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}
	f, err := NewBoxFilter(box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	moves := []geometry.Box{
		{X1: 1, Y1: 1, X2: 11, Y2: 11},
		{X1: 2, Y1: 2, X2: 12, Y2: 12},
		{X1: 3, Y1: 3, X2: 13, Y2: 13},
		{X1: 4, Y1: 4, X2: 14, Y2: 14},
	}
	var last geometry.Box
	for _, m := range moves {
		f.Predict()
		if err := f.Update(m); err != nil {
			t.Fatalf("unexpected update error: %v", err)
		}
		last = f.State()
	}
	if last.X1 < 2 || last.X1 > 5 {
		t.Errorf("expected filter to track linear motion, got X1=%f", last.X1)
	}
}

func TestBoxFilter_ZeroesScaleVelocityBeforeCollapse(t *testing.T) {
	box := geometry.Box{X1: 0, Y1: 0, X2: 10, Y2: 10}
	f, err := NewBoxFilter(box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.x.Set(2, 0, 1.0)   // s
	f.x.Set(6, 0, -10.0) // s-dot would collapse area

	got := f.Predict()
	if got.X2-got.X1 <= 0 || got.Y2-got.Y1 <= 0 {
		t.Fatalf("expected predict to guard against area collapse, got box %+v", got)
	}
}
