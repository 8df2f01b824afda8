package editor

import "vedit/internal/buffer"

// Effect is work requested by Update that has to happen outside of it.
// A nil Effect means there is nothing to do.
type Effect interface {
	effect()
}

// QuitEffect ends the program.
type QuitEffect struct{}

// SaveEffect writes Buffer to Path, or to the buffer's own path when Path
// is empty. The result is reported back with Saved or Failed.
type SaveEffect struct {
	Buffer buffer.Buffer
	Path   string
}

// OpenEffect loads Path into a new buffer. The result is reported back with
// SetBuffer or Failed.
type OpenEffect struct {
	Path string
}

func (QuitEffect) effect() {}
func (SaveEffect) effect() {}
func (OpenEffect) effect() {}
