package imaging

import (
	"strings"
	"testing"
)

// solidBuffer creates a buffer filled with one RGBA colour.
func solidBuffer(width, height int, r, g, b, a uint8) *Buffer {
	buf := &Buffer{Pix: make([]byte, width*height*4), Width: width, Height: height}
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, a
	}
	return buf
}

// quadrantBuffer colours each quadrant differently: red top-left, green
// top-right, blue bottom-left, white bottom-right.
func quadrantBuffer(width, height int) *Buffer {
	buf := &Buffer{Pix: make([]byte, width*height*4), Width: width, Height: height}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c [4]byte
			switch {
			case x < width/2 && y < height/2:
				c = [4]byte{255, 0, 0, 255}
			case y < height/2:
				c = [4]byte{0, 255, 0, 255}
			case x < width/2:
				c = [4]byte{0, 0, 255, 255}
			default:
				c = [4]byte{255, 255, 255, 255}
			}
			copy(buf.Pix[buf.Offset(x, y):], c[:])
		}
	}
	return buf
}

func TestSampleColor(t *testing.T) {
	buf := solidBuffer(100, 100, 255, 128, 64, 200)

	result, err := SampleColor(buf, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB != (RGBColor{255, 128, 64}) {
		t.Errorf("RGB: got %+v", result.RGB)
	}
	if result.RGBA != (RGBAColor{255, 128, 64, 200}) {
		t.Errorf("RGBA: got %+v", result.RGBA)
	}
	// HSL of #FF8040: hue 20, saturation 100, lightness 63
	if result.HSL != (HSLColor{H: 20, S: 100, L: 63}) {
		t.Errorf("HSL: got %+v, want {20 100 63}", result.HSL)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		hex     string
		hsl     HSLColor
	}{
		{"red", 255, 0, 0, "#FF0000", HSLColor{0, 100, 50}},
		{"green", 0, 255, 0, "#00FF00", HSLColor{120, 100, 50}},
		{"blue", 0, 0, 255, "#0000FF", HSLColor{240, 100, 50}},
		{"white", 255, 255, 255, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", 0, 0, 0, "#000000", HSLColor{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(solidBuffer(3, 3, tt.r, tt.g, tt.b, 255), 1, 1)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Hex != tt.hex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.hex)
			}
			if result.HSL != tt.hsl {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.hsl)
			}
		})
	}
}

func TestSampleColor_Bounds(t *testing.T) {
	buf := quadrantBuffer(10, 10)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := SampleColor(buf, p[0], p[1]); err == nil {
			t.Errorf("SampleColor(%d,%d) should fail", p[0], p[1])
		}
	}

	corners := map[[2]int]string{
		{0, 0}: "#FF0000",
		{9, 0}: "#00FF00",
		{0, 9}: "#0000FF",
		{9, 9}: "#FFFFFF",
	}
	for p, want := range corners {
		got, err := SampleColor(buf, p[0], p[1])
		if err != nil {
			t.Fatalf("SampleColor(%d,%d) failed: %v", p[0], p[1], err)
		}
		if got.Hex != want {
			t.Errorf("SampleColor(%d,%d): got %s, want %s", p[0], p[1], got.Hex, want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBColor
		wantErr bool
	}{
		{"#FF8040", RGBColor{255, 128, 64}, false},
		{"ff8040", RGBColor{255, 128, 64}, false},
		{" #00ff00 ", RGBColor{0, 255, 0}, false},
		{"#fff", RGBColor{255, 255, 255}, false},
		{"#12345", RGBColor{}, true},
		{"1234567", RGBColor{}, true},
		{"#ff80", RGBColor{}, true},
		{"##ff8040", RGBColor{}, true},
		{"#GGGGGG", RGBColor{}, true},
		{"", RGBColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "invalid hex color") {
					t.Errorf("expected invalid hex color error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
