// Package editor is the modal editing core: the editor state, the actions
// that change it and the mapping from keys to actions.
//
// Update is a pure function. Anything that touches the outside world, such
// as saving a file or quitting, is returned as an Effect for the caller to
// perform; the outcome is fed back in as another Action.
package editor

import "vedit/internal/buffer"

// Mode is the current editing mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeInsert       // text entry
	ModeCommand      // : command line or / search
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// CommandLine is the text typed after ':' or '/'.
type CommandLine struct {
	Prefix rune
	Input  string
	Cursor int // in runes, always at the end of Input
}

// String renders the command line as shown on screen.
func (c CommandLine) String() string {
	if c.Prefix == 0 {
		return ""
	}
	return string(c.Prefix) + c.Input
}

// State is one snapshot of the editor.
type State struct {
	Mode    Mode
	Command CommandLine
	Buffer  buffer.Buffer

	// Message is shown on the status line until the next key press.
	Message        string
	MessageIsError bool

	// Height is the number of text rows in the viewport.
	Height int

	quitAfterSave bool
}

// New returns the initial state for editing b.
func New(b buffer.Buffer) State {
	return State{
		Mode:   ModeNormal,
		Buffer: b,
		Height: 1,
	}
}

func (s State) info(msg string) State {
	s.Message = msg
	s.MessageIsError = false
	return s
}

func (s State) fail(msg string) State {
	s.Message = msg
	s.MessageIsError = true
	return s
}
