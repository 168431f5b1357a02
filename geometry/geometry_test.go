package geometry

import (
	"testing"

	"github.com/nmichlo/sort-go/internal/testutil"
)

func TestIoU_Disjoint(t *testing.T) {
	a := Box{0, 0, 10, 10}
	b := Box{100, 100, 110, 110}
	testutil.AssertAlmostEqual(t, IoU(a, b), 0, 1e-9, "disjoint boxes")
}

func TestIoU_Identical(t *testing.T) {
	a := Box{0, 0, 10, 10}
	testutil.AssertAlmostEqual(t, IoU(a, a), 1, 1e-9, "identical boxes")
}

func TestIoU_HalfOverlap(t *testing.T) {
	a := Box{0, 0, 10, 10}
	b := Box{5, 0, 15, 10}
	// intersection = 5*10 = 50, union = 100+100-50 = 150
	testutil.AssertAlmostEqual(t, IoU(a, b), 50.0/150.0, 1e-9, "half overlap")
}

func TestIoUBatch_MatchesPairwise(t *testing.T) {
	dets := []Box{{0, 0, 10, 10}, {20, 20, 30, 30}}
	trks := []Box{{0, 0, 10, 10}, {5, 5, 15, 15}, {100, 100, 110, 110}}
	m := IoUBatch(dets, trks)
	for i, d := range dets {
		for j, tr := range trks {
			testutil.AssertAlmostEqual(t, m.At(i, j), IoU(d, tr), 1e-9, "iou_batch mismatch")
		}
	}
}

func TestIoUBatch_EmptyDimensions(t *testing.T) {
	m := IoUBatch(nil, []Box{{0, 0, 1, 1}})
	r, c := m.Dims()
	if r != 0 || c != 1 {
		t.Fatalf("expected 0x1, got %dx%d", r, c)
	}
	m2 := IoUBatch([]Box{{0, 0, 1, 1}}, nil)
	r2, c2 := m2.Dims()
	if r2 != 1 || c2 != 0 {
		t.Fatalf("expected 1x0, got %dx%d", r2, c2)
	}
}

func TestToZFromZ_RoundTrip(t *testing.T) {
	b := Box{10, 20, 50, 80}
	cx, cy, s, r, err := ToZ(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := FromZ(cx, cy, s, r)
	testutil.AssertAlmostEqual(t, got.X1, b.X1, 1e-9, "x1")
	testutil.AssertAlmostEqual(t, got.Y1, b.Y1, 1e-9, "y1")
	testutil.AssertAlmostEqual(t, got.X2, b.X2, 1e-9, "x2")
	testutil.AssertAlmostEqual(t, got.Y2, b.Y2, 1e-9, "y2")
}

func TestToZ_DegenerateBoxFails(t *testing.T) {
	cases := []Box{
		{0, 0, 0, 10},
		{0, 0, 10, 0},
		{10, 0, 5, 10},
	}
	for _, b := range cases {
		if _, _, _, _, err := ToZ(b); err == nil {
			t.Errorf("expected error for degenerate box %+v", b)
		}
	}
}
