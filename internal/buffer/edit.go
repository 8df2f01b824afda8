package buffer

import (
	"strings"

	"vedit/internal/vec"
)

// RemoveChar deletes the character under the cursor. It is a no-op when
// the cursor sits past the end of the line.
func (b Buffer) RemoveChar() Buffer {
	line, ok := b.CurrentLine()
	if !ok {
		return b
	}
	runes := []rune(line)
	x := b.cursor.X
	if x < 0 || x >= len(runes) {
		return b
	}
	return b.withLine(b.cursor.Y, string(runes[:x])+string(runes[x+1:]))
}

// InsertStr inserts text at the cursor column. The cursor does not move.
func (b Buffer) InsertStr(text string) Buffer {
	line, ok := b.CurrentLine()
	if !ok || text == "" {
		return b
	}
	runes := []rune(line)
	x := clamp(b.cursor.X, 0, len(runes))
	return b.withLine(b.cursor.Y, string(runes[:x])+text+string(runes[x:]))
}

// InsertLine inserts an empty line above or below the cursor line. The
// cursor keeps its line index; its column is clamped to that line.
func (b Buffer) InsertLine(above bool) Buffer {
	y := b.cursor.Y
	if !above {
		y++
	}
	lines := make([]string, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:y]...)
	lines = append(lines, "")
	lines = append(lines, b.lines[y:]...)

	b.lines = lines
	b.modified = true
	b.cursor.X = min(b.cursor.X, runeLen(lines[b.cursor.Y]))
	return b
}

// SplitLine breaks the cursor line at the cursor column. Text before the
// column stays on the line; the rest moves to a new line just below it.
func (b Buffer) SplitLine() Buffer {
	line, ok := b.CurrentLine()
	if !ok {
		return b
	}
	runes := []rune(line)
	x := clamp(b.cursor.X, 0, len(runes))
	y := b.cursor.Y

	lines := make([]string, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:y]...)
	lines = append(lines, string(runes[:x]), string(runes[x:]))
	lines = append(lines, b.lines[y+1:]...)

	b.lines = lines
	b.modified = true
	return b
}

// JoinLine appends the next line to the cursor line, separated by a single
// space unless the cursor line is empty or already ends in a space, and
// moves the cursor to the join point. Without a next line it is a no-op.
func (b Buffer) JoinLine(height int) Buffer {
	y := b.cursor.Y
	first, ok := b.CurrentLine()
	if !ok || y+1 >= len(b.lines) {
		return b
	}
	joined := first
	if first != "" && !strings.HasSuffix(first, " ") {
		joined += " "
	}
	joined += b.lines[y+1]

	dx := 0
	if first != "" {
		dx = runeLen(first) - b.cursor.X
	}

	lines := make([]string, 0, len(b.lines)-1)
	lines = append(lines, b.lines[:y]...)
	lines = append(lines, joined)
	lines = append(lines, b.lines[y+2:]...)

	b.lines = lines
	b.modified = true
	return b.Move(vec.Vec{X: dx}, height)
}

// Backspace deletes the character before the cursor and moves onto its
// column. At column 0 the cursor line is appended to the previous line with
// no separator and the cursor lands on the join point.
func (b Buffer) Backspace(height int) Buffer {
	line, ok := b.CurrentLine()
	if !ok {
		return b
	}
	x, y := b.cursor.X, b.cursor.Y
	if x > 0 {
		runes := []rune(line)
		x = min(x, len(runes))
		b = b.withLine(y, string(runes[:x-1])+string(runes[x:]))
		b.cursor.X = x
		return b.Move(vec.Vec{X: -1}, height)
	}
	if y == 0 {
		return b
	}
	prevLen := runeLen(b.lines[y-1])

	lines := make([]string, 0, len(b.lines)-1)
	lines = append(lines, b.lines[:y-1]...)
	lines = append(lines, b.lines[y-1]+line)
	lines = append(lines, b.lines[y+1:]...)

	b.lines = lines
	b.modified = true
	b.cursor = vec.Vec{X: 0, Y: y - 1}
	if b.yScroll > b.cursor.Y {
		b.yScroll = b.cursor.Y
	}
	return b.Move(vec.Vec{X: prevLen}, height)
}
