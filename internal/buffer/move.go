package buffer

import "vedit/internal/vec"

// Move shifts the cursor by d and scrolls so that the cursor line stays
// inside a viewport of height rows. The line index is clamped to the
// document and the column to the length of the destination line, which may
// be one past the last character. vec.Inf and vec.NegInf components snap to
// the last line / end of line and to line 0 / column 0.
//
// Every motion reduces to a call to Move.
func (b Buffer) Move(d vec.Vec, height int) Buffer {
	if height < 1 {
		height = 1
	}
	nextY := step(b.cursor.Y, d.Y, 0, len(b.lines)-1)

	yScroll := b.yScroll
	if overflow := nextY - (yScroll + height - 1); overflow > 0 {
		yScroll += overflow
	}
	if yScroll > nextY {
		yScroll = nextY
	}

	nextX := step(b.cursor.X, d.X, 0, runeLen(b.lines[nextY]))

	b.cursor = vec.Vec{X: nextX, Y: nextY}
	b.yScroll = yScroll
	return b
}

// MoveTo moves the cursor to p in document coordinates.
func (b Buffer) MoveTo(p vec.Vec, height int) Buffer {
	return b.Move(p.Sub(b.cursor), height)
}

// ScrollScreen scrolls the viewport by dy lines, clamped so the last page
// is never scrolled past, and carries the cursor along at the same distance
// from the top of the viewport.
func (b Buffer) ScrollScreen(dy, height int) Buffer {
	if height < 1 {
		height = 1
	}
	prevDist := b.cursor.Y - b.yScroll
	maxScroll := max(0, len(b.lines)-height)
	yScroll := clamp(b.yScroll+dy, 0, maxScroll)

	y := clamp(yScroll+prevDist, yScroll, len(b.lines)-1)
	x := min(b.cursor.X, runeLen(b.lines[y]))

	b.yScroll = yScroll
	b.cursor = vec.Vec{X: x, Y: y}
	return b
}

// LinesToRender returns the lines visible in a viewport of height rows.
func (b Buffer) LinesToRender(height int) []string {
	if height < 0 {
		height = 0
	}
	start := min(b.yScroll, len(b.lines))
	end := min(b.yScroll+height, len(b.lines))
	return copyLines(b.lines[start:end])
}

// ScreenCursor returns the cursor relative to the top of the viewport.
func (b Buffer) ScreenCursor() vec.Vec {
	return b.cursor.SubY(b.yScroll)
}

// step applies delta d to v within [lo, hi], honouring the infinity
// sentinels.
func step(v, d, lo, hi int) int {
	switch d {
	case vec.Inf:
		return max(hi, lo)
	case vec.NegInf:
		return lo
	}
	return clamp(v+d, lo, hi)
}
