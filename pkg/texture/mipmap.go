package texture

import (
	"math"

	"github.com/wrenfield/rasterforge/pkg/color"
)

// GenerateMipmaps builds the full box-filtered mipmap chain, level 0 being
// the texture's own data, terminating once both dimensions reach 1.
func (t *Texture) GenerateMipmaps() {
	t.mips = []level{{width: t.Width, height: t.Height, pixels: t.Pixels}}

	cur := &t.mips[0]
	for cur.width > 1 || cur.height > 1 {
		nw := max(1, cur.width/2)
		nh := max(1, cur.height/2)
		next := level{width: nw, height: nh, pixels: make([]color.Color, nw*nh)}

		for y := range nh {
			for x := range nw {
				next.pixels[y*nw+x] = boxFilter2x2(cur, x, y)
			}
		}

		t.mips = append(t.mips, next)
		cur = &t.mips[len(t.mips)-1]
	}
}

// boxFilter2x2 averages the 2x2 block at (2x,2y) in the parent level,
// clamping source coordinates when the parent has an odd dimension.
func boxFilter2x2(parent *level, x, y int) color.Color {
	x0, y0 := 2*x, 2*y
	x1 := min(x0+1, parent.width-1)
	y1 := min(y0+1, parent.height-1)

	c00 := parent.at(x0, y0)
	c10 := parent.at(x1, y0)
	c01 := parent.at(x0, y1)
	c11 := parent.at(x1, y1)

	sum := c00.Add(c10).Add(c01).Add(c11)
	return sum.Scale(0.25)
}

// LevelCount returns the number of mipmap levels present, or 0 if
// GenerateMipmaps has not been called.
func (t *Texture) LevelCount() int { return len(t.mips) }

// LevelDims returns the pixel dimensions of mip level k, clamped to the
// valid range.
func (t *Texture) LevelDims(k int) (int, int) {
	if len(t.mips) == 0 {
		return t.Width, t.Height
	}
	k = clampInt(k, 0, len(t.mips)-1)
	return t.mips[k].width, t.mips[k].height
}

// sampleTrilinear computes rho = max(|dudx|*W, |dvdy|*H), lambda = log2(rho)
// clamped to [0, levels-1], and blends the two bracketing levels.
func (t *Texture) sampleTrilinear(u, v, dudx, dvdy float64) color.Color {
	rho := math.Max(math.Abs(dudx)*float64(t.Width), math.Abs(dvdy)*float64(t.Height))
	maxLevel := float64(len(t.mips) - 1)

	lambda := 0.0
	if rho > 1 {
		lambda = math.Log2(rho)
	}
	lambda = math.Max(0, math.Min(maxLevel, lambda))

	lo := int(math.Floor(lambda))
	hi := min(lo+1, len(t.mips)-1)
	frac := lambda - float64(lo)

	cLo := t.sampleBilinearOn(&t.mips[lo], u, v)
	if lo == hi {
		return cLo
	}
	cHi := t.sampleBilinearOn(&t.mips[hi], u, v)
	return cLo.Lerp(cHi, frac)
}
