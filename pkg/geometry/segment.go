package geometry

// SegmentsIntersect reports whether the segments a1→a2 and b1→b2 cross.
// Parallel and degenerate (zero-length) segments are treated as
// non-intersecting so callers never see a division by zero.
func SegmentsIntersect(a1, a2, b1, b2 Point2D) bool {
	d1x := a2.X - a1.X
	d1y := a2.Y - a1.Y
	d2x := b2.X - b1.X
	d2y := b2.Y - b1.Y

	denom := d1x*d2y - d1y*d2x
	if denom == 0 {
		return false
	}

	t := ((b1.X-a1.X)*d2y - (b1.Y-a1.Y)*d2x) / denom
	u := ((b1.X-a1.X)*d1y - (b1.Y-a1.Y)*d1x) / denom

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// SegmentIntersectsRect reports whether the segment p1→p2 crosses any of the
// four edges of the rectangle, or is entirely contained within it.
func SegmentIntersectsRect(p1, p2 Point2D, r Rect) bool {
	if r.Contains(p1) || r.Contains(p2) {
		return true
	}

	tl := Point2D{X: r.X, Y: r.Y}
	tr := Point2D{X: r.X + r.Width, Y: r.Y}
	bl := Point2D{X: r.X, Y: r.Y + r.Height}
	br := Point2D{X: r.X + r.Width, Y: r.Y + r.Height}

	return SegmentsIntersect(p1, p2, tl, tr) ||
		SegmentsIntersect(p1, p2, tr, br) ||
		SegmentsIntersect(p1, p2, br, bl) ||
		SegmentsIntersect(p1, p2, bl, tl)
}
