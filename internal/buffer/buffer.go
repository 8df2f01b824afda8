package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"vedit/internal/storage"
	"vedit/internal/vec"
)

// ErrNoFileName is returned by Save when neither an explicit path nor the
// buffer's own path is available.
var ErrNoFileName = errors.New("no file name")

// Buffer is the document model: lines of text, a cursor, the top line of the
// viewport and the file the text belongs to.
//
// Buffer is a value. Every operation returns a new Buffer and never writes
// through to the lines of the receiver, so earlier snapshots stay valid.
// Columns are counted in runes.
type Buffer struct {
	lines    []string // never empty
	cursor   vec.Vec
	yScroll  int
	filepath string // empty for unnamed buffers
	modified bool
}

// Empty returns an unnamed buffer with one empty line.
func Empty() Buffer {
	return Buffer{lines: []string{""}}
}

// FromLines builds an unnamed buffer from the given lines. An empty slice
// yields a single empty line.
func FromLines(lines []string) Buffer {
	b := Empty()
	if len(lines) > 0 {
		b.lines = copyLines(lines)
	}
	return b
}

// FromFile loads path through fs, creating an empty file first if it does
// not exist yet. The content is split on '\n' so a trailing newline yields a
// trailing empty line.
func FromFile(fs storage.FS, path string) (Buffer, error) {
	resolved, err := fs.Resolve(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	exists, err := fs.Exists(resolved)
	if err != nil {
		return Buffer{}, fmt.Errorf("stat %s: %w", resolved, err)
	}
	if !exists {
		if err := fs.WriteFile(resolved, nil); err != nil {
			return Buffer{}, fmt.Errorf("create %s: %w", resolved, err)
		}
	}
	data, err := fs.ReadFile(resolved)
	if err != nil {
		return Buffer{}, fmt.Errorf("read %s: %w", resolved, err)
	}
	return Buffer{
		lines:    strings.Split(string(data), "\n"),
		filepath: resolved,
	}, nil
}

// Save writes the lines joined by '\n' to override, or to the buffer's own
// path when override is empty. On success the returned buffer is associated
// with the written path and no longer marked modified. The int result is the
// number of bytes written.
func (b Buffer) Save(fs storage.FS, override string) (Buffer, int, error) {
	target := override
	if target == "" {
		target = b.filepath
	}
	if target == "" {
		return b, 0, ErrNoFileName
	}
	resolved, err := fs.Resolve(target)
	if err != nil {
		return b, 0, fmt.Errorf("resolve %s: %w", target, err)
	}
	content := b.String()
	if err := fs.WriteFile(resolved, []byte(content)); err != nil {
		return b, 0, fmt.Errorf("write %s: %w", resolved, err)
	}
	return b.Saved(resolved), len(content), nil
}

// Saved associates the buffer with path and clears the modified flag.
func (b Buffer) Saved(path string) Buffer {
	b = b.Named(path)
	b.modified = false
	return b
}

// Named associates the buffer with path and leaves the modified flag alone.
func (b Buffer) Named(path string) Buffer {
	b.filepath = path
	return b
}

// String returns the content as it is written to disk.
func (b Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of all lines.
func (b Buffer) Lines() []string { return copyLines(b.lines) }

// LineCount returns the number of lines, which is always at least one.
func (b Buffer) LineCount() int { return len(b.lines) }

// Cursor returns the cursor position in document coordinates.
func (b Buffer) Cursor() vec.Vec { return b.cursor }

// YScroll returns the index of the topmost visible line.
func (b Buffer) YScroll() int { return b.yScroll }

// Filepath returns the associated path, or "" for an unnamed buffer.
func (b Buffer) Filepath() string { return b.filepath }

// Modified reports whether the text changed since it was loaded or saved.
func (b Buffer) Modified() bool { return b.modified }

// CurrentLine returns the line under the cursor.
func (b Buffer) CurrentLine() (string, bool) {
	if b.cursor.Y < 0 || b.cursor.Y >= len(b.lines) {
		return "", false
	}
	return b.lines[b.cursor.Y], true
}

// withLine returns a copy of b whose line y is replaced by text.
func (b Buffer) withLine(y int, text string) Buffer {
	lines := copyLines(b.lines)
	lines[y] = text
	b.lines = lines
	b.modified = true
	return b
}

func copyLines(lines []string) []string {
	c := make([]string, len(lines))
	copy(c, lines)
	return c
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
