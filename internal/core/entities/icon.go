package entities

// Icon describes one icon resource attached to a Component.
// Icons of kind cached/local/remote carry (Width, Height, Scale); a stock
// icon is named only (resolved against the system icon theme by the
// caller, out of scope for this library).
type Icon struct {
	Kind   IconKind
	Name   string // stock icon name, or filename for cached/local
	URL    string // resolved URL/path for remote/local/cached icons
	Width  int
	Height int
	Scale  int // 1 for standard density, 2 for @2x/HiDPI, ...
}

// area returns width*scale * height*scale, the quantity icon lookup
// minimizes distance to: closest to requested (width*scale, height*scale).
func (ic Icon) area() int {
	w := ic.Width * ic.Scale
	h := ic.Height * ic.Scale
	return w * h
}

// BestIcon selects, from candidates, the icon whose area is closest to
// the requested (width*scale, height*scale), preferring an exact-scale
// match over a cross-scale one at equal area distance. Returns
// false if candidates is empty.
func BestIcon(candidates []Icon, width, height, scale int) (Icon, bool) {
	if len(candidates) == 0 {
		return Icon{}, false
	}
	target := width * scale * height * scale

	best := candidates[0]
	bestDist := absInt(best.area() - target)
	bestScaleMatch := best.Scale == scale

	for _, ic := range candidates[1:] {
		dist := absInt(ic.area() - target)
		scaleMatch := ic.Scale == scale

		switch {
		case dist < bestDist:
			best, bestDist, bestScaleMatch = ic, dist, scaleMatch
		case dist == bestDist && scaleMatch && !bestScaleMatch:
			best, bestDist, bestScaleMatch = ic, dist, scaleMatch
		}
	}
	return best, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
