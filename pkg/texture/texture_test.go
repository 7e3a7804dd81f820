package texture

import (
	"math"
	"testing"

	"github.com/wrenfield/rasterforge/pkg/color"
)

func checker2x2() *Texture {
	tex, _ := New(2, 2)
	tex.SetPixel(0, 0, color.Red)
	tex.SetPixel(1, 0, color.Green)
	tex.SetPixel(0, 1, color.Green)
	tex.SetPixel(1, 1, color.Red)
	tex.WrapU = WrapRepeat
	tex.WrapV = WrapRepeat
	tex.Filter = FilterNearest
	return tex
}

func TestBilinearWraparound(t *testing.T) {
	tex := checker2x2()
	tex.Filter = FilterBilinear
	a := tex.Sample(1.5, 0.0)
	b := tex.Sample(0.5, 0.0)
	if a != b {
		t.Errorf("wrapped samples differ: %v vs %v", a, b)
	}
}

func TestMirrorWrap(t *testing.T) {
	got := wrapCoord(1.25, WrapMirror)
	want := 0.75
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("mirror(1.25) = %v, want %v", got, want)
	}
	got = wrapCoord(0.25, WrapMirror)
	if math.Abs(got-0.25) > 1e-9 {
		t.Errorf("mirror(0.25) = %v, want 0.25", got)
	}
}

func TestBilinearAtIntegerPixelCentersMatchesGetPixel(t *testing.T) {
	tex, _ := New(4, 4)
	for y := range 4 {
		for x := range 4 {
			tex.SetPixel(x, y, color.RGB(float64(x)/4, float64(y)/4, 0))
		}
	}
	tex.Filter = FilterBilinear
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	for y := range 4 {
		for x := range 4 {
			u := (float64(x) + 0.5) / 4
			v := (float64(y) + 0.5) / 4
			got := tex.Sample(u, v)
			want := tex.GetPixel(x, y)
			if math.Abs(got.R-want.R) > 1e-9 || math.Abs(got.G-want.G) > 1e-9 {
				t.Errorf("bilinear at center (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestMipmapDimensionsHalveAndTerminate(t *testing.T) {
	tex, _ := New(256, 256)
	tex.GenerateMipmaps()

	wantLevels := 1 + int(math.Floor(math.Log2(256)))
	if tex.LevelCount() != wantLevels {
		t.Errorf("level count = %d, want %d", tex.LevelCount(), wantLevels)
	}

	w, h := 256, 256
	for k := 1; k < tex.LevelCount(); k++ {
		w = max(1, w/2)
		h = max(1, h/2)
		gw, gh := tex.LevelDims(k)
		if gw != w || gh != h {
			t.Errorf("level %d dims = (%d,%d), want (%d,%d)", k, gw, gh, w, h)
		}
	}
	lw, lh := tex.LevelDims(tex.LevelCount() - 1)
	if lw != 1 || lh != 1 {
		t.Errorf("chain should terminate at 1x1, got (%d,%d)", lw, lh)
	}
}

func TestMipmapOddDimensionFloors(t *testing.T) {
	tex, _ := New(5, 3)
	tex.GenerateMipmaps()
	w, h := tex.LevelDims(1)
	if w != 2 || h != 1 {
		t.Errorf("level 1 dims = (%d,%d), want (2,1)", w, h)
	}
}

func TestTrilinearLODSelection(t *testing.T) {
	tex, _ := New(256, 256)
	// Fill each "region" isn't necessary; we just need distinguishable
	// solid colors per mip level to check which one got selected.
	for y := range 256 {
		for x := range 256 {
			tex.SetPixel(x, y, color.RGB(1, 1, 1))
		}
	}
	tex.GenerateMipmaps()
	// Overwrite level 2 with a distinct solid color to detect selection.
	l2 := &tex.mips[2]
	for i := range l2.pixels {
		l2.pixels[i] = color.RGB(0, 0, 1)
	}
	tex.Filter = FilterTrilinear
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	got := tex.SampleLOD(0.5, 0.5, 1.0/64, 1.0/64)
	if math.Abs(got.B-1) > 1e-9 || math.Abs(got.R) > 1e-9 {
		t.Errorf("expected level-2 color, got %v", got)
	}
}

func TestTrilinearFallsBackWithoutMipmaps(t *testing.T) {
	tex := checker2x2()
	tex.Filter = FilterTrilinear
	got := tex.SampleLOD(0.5, 0.5, 0.1, 0.1)
	want := tex.sampleBilinearOn(tex, wrapCoord(0.5, tex.WrapU), wrapCoord(0.5, tex.WrapV))
	if got != want {
		t.Errorf("trilinear fallback = %v, want bilinear level0 %v", got, want)
	}
}
