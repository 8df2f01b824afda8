package editor

import (
	"vedit/internal/buffer"
	"vedit/internal/vec"
)

// Action is a single change to the editor state. The set of actions is
// closed; Update handles each of them.
type Action interface {
	action()
}

type (
	// MoveCursor moves the cursor by Delta; see buffer.Buffer.Move.
	MoveCursor struct{ Delta vec.Vec }
	// MoveTo moves the cursor to Pos in document coordinates.
	MoveTo struct{ Pos vec.Vec }
	// ScrollScreen scrolls the viewport by Dy lines.
	ScrollScreen struct{ Dy int }
	// HalfPage scrolls by half the viewport height.
	HalfPage struct{ Down bool }

	JoinLine    struct{}
	EnterInsert struct{}
	EnterNormal struct{}
	// EnterCommand opens the command line with Prefix ':' or '/'.
	EnterCommand struct{ Prefix rune }
	InsertLine   struct{ Above bool }
	RemoveChar   struct{}
	// InsertText inserts Text at the cursor and moves past it.
	InsertText struct{ Text string }
	SplitLine  struct{}
	Backspace  struct{}

	NextWord     struct{}
	WordEnd      struct{}
	PreviousWord struct{}

	CommandInput     struct{ Text string }
	CommandBackspace struct{}
	ExecuteCommand   struct{}

	Quit struct{}
	// Resize sets the number of text rows in the viewport.
	Resize struct{ Height int }

	// SetBuffer replaces the active buffer with a freshly loaded one.
	SetBuffer struct{ Buffer buffer.Buffer }
	// Saved reports a completed SaveEffect. Content is what was written.
	Saved struct {
		Path    string
		Bytes   int
		Content string
	}
	// Failed reports an effect that could not be carried out.
	Failed struct{ Err error }
)

func (MoveCursor) action()       {}
func (MoveTo) action()           {}
func (ScrollScreen) action()     {}
func (HalfPage) action()         {}
func (JoinLine) action()         {}
func (EnterInsert) action()      {}
func (EnterNormal) action()      {}
func (EnterCommand) action()     {}
func (InsertLine) action()       {}
func (RemoveChar) action()       {}
func (InsertText) action()       {}
func (SplitLine) action()        {}
func (Backspace) action()        {}
func (NextWord) action()         {}
func (WordEnd) action()          {}
func (PreviousWord) action()     {}
func (CommandInput) action()     {}
func (CommandBackspace) action() {}
func (ExecuteCommand) action()   {}
func (Quit) action()             {}
func (Resize) action()           {}
func (SetBuffer) action()        {}
func (Saved) action()            {}
func (Failed) action()           {}
