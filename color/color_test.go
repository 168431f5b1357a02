package color

import (
	"image/color"
	"testing"
)

// TestColor_BGROrdering verifies the struct fields are BGR, and ToRGBA
// reorders them to RGBA correctly.
func TestColor_BGROrdering(t *testing.T) {
	c := Color{B: 10, G: 20, R: 30}

	rgba := c.ToRGBA()
	want := color.RGBA{R: 30, G: 20, B: 10, A: 255}
	if rgba != want {
		t.Errorf("expected %+v, got %+v", want, rgba)
	}
}

func TestHexToBGR_SixChar(t *testing.T) {
	testCases := []struct {
		hex      string
		expected Color
	}{
		{"#FF0000", Color{B: 0, G: 0, R: 255}},
		{"#00FF00", Color{B: 0, G: 255, R: 0}},
		{"#0000FF", Color{B: 255, G: 0, R: 0}},
		{"#FFFFFF", Color{B: 255, G: 255, R: 255}},
		{"#000000", Color{B: 0, G: 0, R: 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.hex, func(t *testing.T) {
			result, err := HexToBGR(tc.hex)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, result)
			}
		})
	}
}

func TestHexToBGR_ThreeChar(t *testing.T) {
	result, err := HexToBGR("#F00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (Color{B: 0, G: 0, R: 255}); result != want {
		t.Errorf("expected %+v, got %+v", want, result)
	}
}

func TestHexToBGR_NoHashPrefix(t *testing.T) {
	result, err := HexToBGR("00FF00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (Color{B: 0, G: 255, R: 0}); result != want {
		t.Errorf("expected %+v, got %+v", want, result)
	}
}

func TestHexToBGR_Lowercase(t *testing.T) {
	result, err := HexToBGR("#ff6600")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (Color{B: 0, G: 0x66, R: 0xff}); result != want {
		t.Errorf("expected %+v, got %+v", want, result)
	}
}

func TestHexToBGR_InvalidLength(t *testing.T) {
	for _, hex := range []string{"#FF", "#FFFF", "#FFFFF", "#FFFFFFF", ""} {
		t.Run(hex, func(t *testing.T) {
			if _, err := HexToBGR(hex); err == nil {
				t.Errorf("expected error for invalid hex %q", hex)
			}
		})
	}
}

func TestHexToBGR_InvalidCharacters(t *testing.T) {
	for _, hex := range []string{"#GGGGGG", "#XYZ"} {
		t.Run(hex, func(t *testing.T) {
			if _, err := HexToBGR(hex); err == nil {
				t.Errorf("expected error for invalid hex %q", hex)
			}
		})
	}
}
