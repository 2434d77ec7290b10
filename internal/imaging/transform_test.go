package imaging

import (
	"bytes"
	"errors"
	"testing"
)

// grid2x2 is the 2x2 image [1 2; 3 4], identified by the red channel.
func grid2x2() *Buffer {
	return &Buffer{
		Pix: []byte{
			1, 0, 0, 255, 2, 0, 0, 255,
			3, 0, 0, 255, 4, 0, 0, 255,
		},
		Width:  2,
		Height: 2,
	}
}

// reds returns the red channel of every pixel in order.
func reds(buf *Buffer) []byte {
	out := make([]byte, 0, buf.Width*buf.Height)
	for i := 0; i < len(buf.Pix); i += 4 {
		out = append(out, buf.Pix[i])
	}
	return out
}

func TestCrop(t *testing.T) {
	buf := quadrantBuffer(100, 100)

	out, err := Crop(buf, Rect{X: 50, Y: 0, Width: 50, Height: 50})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Width != 50 || out.Height != 50 || len(out.Pix) != 50*50*4 {
		t.Fatalf("dimensions: got %dx%d (%d bytes), want 50x50", out.Width, out.Height, len(out.Pix))
	}
	for i := 0; i < len(out.Pix); i += 4 {
		if !bytes.Equal(out.Pix[i:i+4], []byte{0, 255, 0, 255}) {
			t.Fatalf("pixel %d: got %v, want green", i/4, out.Pix[i:i+4])
		}
	}
}

func TestCrop_SinglePixel(t *testing.T) {
	out, err := Crop(grid2x2(), Rect{X: 1, Y: 0, Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if !bytes.Equal(out.Pix, []byte{2, 0, 0, 255}) {
		t.Errorf("got %v, want [2 0 0 255]", out.Pix)
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	buf := quadrantBuffer(10, 10)
	tests := []struct {
		name string
		r    Rect
	}{
		{"zero width", Rect{0, 0, 0, 5}},
		{"zero height", Rect{0, 0, 5, 0}},
		{"negative origin", Rect{-1, 0, 5, 5}},
		{"past right edge", Rect{6, 0, 5, 5}},
		{"past bottom edge", Rect{0, 8, 5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(buf, tt.r); !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("expected ErrInvalidRegion, got %v", err)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		degrees int
		want    []byte
	}{
		{0, []byte{1, 2, 3, 4}},
		{90, []byte{3, 1, 4, 2}},
		{180, []byte{4, 3, 2, 1}},
		{270, []byte{2, 4, 1, 3}},
	}
	for _, tt := range tests {
		out, err := Rotate(grid2x2(), tt.degrees)
		if err != nil {
			t.Fatalf("Rotate(%d) failed: %v", tt.degrees, err)
		}
		if got := reds(out); !bytes.Equal(got, tt.want) {
			t.Errorf("Rotate(%d): got %v, want %v", tt.degrees, got, tt.want)
		}
	}
}

func TestRotate_SwapsDimensions(t *testing.T) {
	// 3x1 row [1 2 3] becomes a 1x3 column
	buf := &Buffer{Pix: []byte{1, 0, 0, 255, 2, 0, 0, 255, 3, 0, 0, 255}, Width: 3, Height: 1}

	out, err := Rotate(buf, 90)
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if out.Width != 1 || out.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 1x3", out.Width, out.Height)
	}
	if got := reds(out); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}

	out, _ = Rotate(buf, 270)
	if got := reds(out); !bytes.Equal(got, []byte{3, 2, 1}) {
		t.Errorf("270: got %v, want [3 2 1]", got)
	}
}

func TestRotate_InvalidAngle(t *testing.T) {
	for _, deg := range []int{45, -90, 360} {
		if _, err := Rotate(grid2x2(), deg); !errors.Is(err, ErrInvalidAngle) {
			t.Errorf("Rotate(%d): expected ErrInvalidAngle, got %v", deg, err)
		}
	}
}

func TestFlip(t *testing.T) {
	h, err := Flip(grid2x2(), Horizontal)
	if err != nil {
		t.Fatalf("Flip horizontal failed: %v", err)
	}
	if got := reds(h); !bytes.Equal(got, []byte{2, 1, 4, 3}) {
		t.Errorf("horizontal: got %v, want [2 1 4 3]", got)
	}

	v, err := Flip(grid2x2(), Vertical)
	if err != nil {
		t.Fatalf("Flip vertical failed: %v", err)
	}
	if got := reds(v); !bytes.Equal(got, []byte{3, 4, 1, 2}) {
		t.Errorf("vertical: got %v, want [3 4 1 2]", got)
	}

	if _, err := Flip(grid2x2(), FlipDirection(7)); err == nil {
		t.Error("unknown direction should fail")
	}
}

func TestFlip_DoesNotModifyInput(t *testing.T) {
	in := grid2x2()
	Flip(in, Horizontal)
	Rotate(in, 90)
	if got := reds(in); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("input modified: %v", got)
	}
}

func TestParseFlipDirection(t *testing.T) {
	for in, want := range map[string]FlipDirection{"horizontal": Horizontal, "H": Horizontal, "vertical": Vertical, " v ": Vertical} {
		got, err := ParseFlipDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseFlipDirection(%q): got %v, %v", in, got, err)
		}
	}
	if _, err := ParseFlipDirection("diagonal"); err == nil {
		t.Error("diagonal should be rejected")
	}
}

func TestResize(t *testing.T) {
	buf := solidBuffer(20, 10, 200, 100, 50, 255)

	for _, q := range []ResizeQuality{QualityLow, QualityMedium, QualityHigh, QualityMaximum} {
		out, err := Resize(buf, 7, 3, q)
		if err != nil {
			t.Fatalf("Resize(%d) failed: %v", q, err)
		}
		if out.Width != 7 || out.Height != 3 || len(out.Pix) != 7*3*4 {
			t.Fatalf("quality %d: got %dx%d", q, out.Width, out.Height)
		}
		// A solid image stays solid under every filter.
		if !bytes.Equal(out.Pix[:4], []byte{200, 100, 50, 255}) {
			t.Errorf("quality %d: first pixel %v", q, out.Pix[:4])
		}
	}
}

func TestResize_NearestPicksSourcePixel(t *testing.T) {
	out, err := Resize(grid2x2(), 1, 1, QualityLow)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if r := out.Pix[0]; r < 1 || r > 4 {
		t.Errorf("nearest neighbour produced %d, not a source value", r)
	}
}

func TestResize_InvalidTarget(t *testing.T) {
	if _, err := Resize(grid2x2(), 0, 5, QualityHigh); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestParseResizeQuality(t *testing.T) {
	tests := map[string]ResizeQuality{
		"low": QualityLow, "medium": QualityMedium, "": QualityHigh,
		"HIGH": QualityHigh, "maximum": QualityMaximum, "max": QualityMaximum,
	}
	for in, want := range tests {
		got, err := ParseResizeQuality(in)
		if err != nil || got != want {
			t.Errorf("ParseResizeQuality(%q): got %v, %v", in, got, err)
		}
	}
	if _, err := ParseResizeQuality("ultra"); err == nil {
		t.Error("ultra should be rejected")
	}
}

func TestTransforms_RejectBadBuffer(t *testing.T) {
	bad := &Buffer{Pix: make([]byte, 10), Width: 2, Height: 2}
	if _, err := Crop(bad, Rect{0, 0, 1, 1}); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("Crop: got %v", err)
	}
	if _, err := Rotate(bad, 90); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("Rotate: got %v", err)
	}
	if _, err := Flip(bad, Vertical); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("Flip: got %v", err)
	}
	if _, err := Resize(bad, 4, 4, QualityLow); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("Resize: got %v", err)
	}
}
