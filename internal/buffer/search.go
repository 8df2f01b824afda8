package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"vedit/internal/vec"
)

// Search looks for text after the cursor column on the cursor line, then on
// the following lines, then wraps to the lines above the cursor. Matching is
// plain and case-sensitive. Nothing is found from an empty cursor line.
func (b Buffer) Search(text string) (vec.Vec, bool) {
	line, ok := b.CurrentLine()
	if !ok || line == "" || text == "" {
		return vec.Vec{}, false
	}

	runes := []rune(line)
	if from := b.cursor.X + 1; from >= 0 && from <= len(runes) {
		if x, ok := indexRunes(string(runes[from:]), text); ok {
			return vec.Vec{X: from + x, Y: b.cursor.Y}, true
		}
	}
	for y := b.cursor.Y + 1; y < len(b.lines); y++ {
		if x, ok := indexRunes(b.lines[y], text); ok {
			return vec.Vec{X: x, Y: y}, true
		}
	}
	for y := 0; y < b.cursor.Y; y++ {
		if x, ok := indexRunes(b.lines[y], text); ok {
			return vec.Vec{X: x, Y: y}, true
		}
	}
	return vec.Vec{}, false
}

// NextWord finds the start of the next whitespace-delimited word. A later
// line that is empty or starts with a non-space character matches at its
// column 0.
func (b Buffer) NextWord() (vec.Vec, bool) {
	line, ok := b.CurrentLine()
	if !ok {
		return vec.Vec{}, false
	}
	if x, ok := wordStart([]rune(line), b.cursor.X); ok {
		return vec.Vec{X: x, Y: b.cursor.Y}, true
	}
	for y := b.cursor.Y + 1; y < len(b.lines); y++ {
		first, _ := utf8.DecodeRuneInString(b.lines[y])
		if b.lines[y] == "" || !unicode.IsSpace(first) {
			return vec.Vec{X: 0, Y: y}, true
		}
		if x, ok := wordStart([]rune(b.lines[y]), 0); ok {
			return vec.Vec{X: x, Y: y}, true
		}
	}
	return vec.Vec{}, false
}

// WordEnd finds the last character of the word under or after the cursor,
// skipping whitespace and blank lines.
func (b Buffer) WordEnd() (vec.Vec, bool) {
	x, y := b.cursor.X+1, b.cursor.Y
	for y < len(b.lines) {
		runes := []rune(b.lines[y])
		for x < len(runes) && unicode.IsSpace(runes[x]) {
			x++
		}
		if x < len(runes) {
			for x+1 < len(runes) && !unicode.IsSpace(runes[x+1]) {
				x++
			}
			return vec.Vec{X: x, Y: y}, true
		}
		y++
		x = 0
	}
	return vec.Vec{}, false
}

// PreviousWord finds the start of the word before the cursor. From column 0
// it goes to the last character of the nearest non-empty line above; at the
// very start of the document it stays put.
func (b Buffer) PreviousWord() vec.Vec {
	x, y := b.cursor.X, b.cursor.Y
	if x == 0 {
		// At the very start there is no earlier word; stay put.
		if y == 0 {
			return b.cursor
		}
		y--
		for y > 0 && b.lines[y] == "" {
			y--
		}
		return vec.Vec{X: max(0, runeLen(b.lines[y])-1), Y: y}
	}

	runes := []rune(b.lines[y])
	x = min(x, len(runes))
	before := strings.TrimRightFunc(string(runes[:x]), unicode.IsSpace)
	pos := strings.LastIndexFunc(before, unicode.IsSpace)
	if pos < 0 {
		return vec.Vec{X: 0, Y: y}
	}
	return vec.Vec{X: utf8.RuneCountInString(before[:pos]) + 1, Y: y}
}

// wordStart returns the column of the first whitespace-to-non-whitespace
// transition at or after from.
func wordStart(runes []rune, from int) (int, bool) {
	for i := max(from, 0); i+1 < len(runes); i++ {
		if unicode.IsSpace(runes[i]) && !unicode.IsSpace(runes[i+1]) {
			return i + 1, true
		}
	}
	return 0, false
}

// indexRunes is strings.Index reporting a rune offset.
func indexRunes(s, sub string) (int, bool) {
	i := strings.Index(s, sub)
	if i < 0 {
		return 0, false
	}
	return utf8.RuneCountInString(s[:i]), true
}
