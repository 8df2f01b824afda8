package editor

import (
	"errors"
	"strings"
	"testing"

	"vedit/internal/buffer"
	"vedit/internal/vec"
)

func stateWith(lines ...string) State {
	s := New(buffer.FromLines(lines))
	s.Height = 10
	return s
}

func apply(t *testing.T, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		var eff Effect
		s, eff = Update(s, a)
		if eff != nil {
			t.Fatalf("Update(%T) returned unexpected effect %T", a, eff)
		}
	}
	return s
}

// ---------------------------------------------------------------------------
// Mode
// ---------------------------------------------------------------------------

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "NORMAL"},
		{ModeInsert, "INSERT"},
		{ModeCommand, "COMMAND"},
		{Mode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestNewStartsInNormal(t *testing.T) {
	s := New(buffer.Empty())
	if s.Mode != ModeNormal {
		t.Errorf("Mode = %v, want NORMAL", s.Mode)
	}
	if s.Height < 1 {
		t.Errorf("Height = %d, want >= 1", s.Height)
	}
}

// ---------------------------------------------------------------------------
// Buffer actions
// ---------------------------------------------------------------------------

func TestUpdateDoesNotModifyInput(t *testing.T) {
	s := stateWith("abc")
	next := apply(t, s, InsertText{Text: "x"})
	if got := s.Buffer.Lines()[0]; got != "abc" {
		t.Errorf("original buffer changed to %q", got)
	}
	if got := next.Buffer.Lines()[0]; got != "xabc" {
		t.Errorf("new buffer = %q, want xabc", got)
	}
}

func TestInsertTextAdvancesByRuneCount(t *testing.T) {
	s := apply(t, stateWith("bc"), InsertText{Text: "äö"})
	if got := s.Buffer.Lines()[0]; got != "äöbc" {
		t.Errorf("line = %q, want äöbc", got)
	}
	if got := s.Buffer.Cursor(); got != (vec.Vec{X: 2}) {
		t.Errorf("cursor = %+v, want (2,0)", got)
	}
}

func TestInsertTextEmptyIsNoop(t *testing.T) {
	s := apply(t, stateWith("abc"), InsertText{})
	if s.Buffer.Modified() {
		t.Error("empty insert should not modify the buffer")
	}
}

func TestHalfPage(t *testing.T) {
	lines := make([]string, 40)
	s := stateWith(lines...)
	s = apply(t, s, HalfPage{Down: true})
	if s.Buffer.YScroll() != 5 || s.Buffer.Cursor().Y != 5 {
		t.Errorf("after ctrl+d: yScroll=%d cursor=%+v, want 5/5", s.Buffer.YScroll(), s.Buffer.Cursor())
	}
	s = apply(t, s, HalfPage{Down: false})
	if s.Buffer.YScroll() != 0 || s.Buffer.Cursor().Y != 0 {
		t.Errorf("after ctrl+u: yScroll=%d cursor=%+v, want 0/0", s.Buffer.YScroll(), s.Buffer.Cursor())
	}
}

func TestHalfPageHeightOne(t *testing.T) {
	s := stateWith("a", "b", "c")
	s.Height = 1
	s = apply(t, s, HalfPage{Down: true})
	if s.Buffer.Cursor().Y != 1 {
		t.Errorf("cursor.Y = %d, want 1", s.Buffer.Cursor().Y)
	}
}

func TestWordMotions(t *testing.T) {
	s := stateWith("foo bar", "baz")
	s = apply(t, s, NextWord{})
	if got := s.Buffer.Cursor(); got != (vec.Vec{X: 4}) {
		t.Fatalf("w: cursor = %+v, want (4,0)", got)
	}
	s = apply(t, s, WordEnd{})
	if got := s.Buffer.Cursor(); got != (vec.Vec{X: 6}) {
		t.Fatalf("e: cursor = %+v, want (6,0)", got)
	}
	s = apply(t, s, PreviousWord{})
	if got := s.Buffer.Cursor(); got != (vec.Vec{X: 4}) {
		t.Fatalf("b: cursor = %+v, want (4,0)", got)
	}
}

func TestNextWordWithoutMatchStays(t *testing.T) {
	s := stateWith("foo")
	s = apply(t, s, NextWord{})
	if got := s.Buffer.Cursor(); got != (vec.Vec{}) {
		t.Errorf("cursor = %+v, want origin", got)
	}
}

func TestResizeKeepsCursorVisible(t *testing.T) {
	lines := make([]string, 30)
	s := stateWith(lines...)
	s = apply(t, s, MoveCursor{Delta: vec.Vec{Y: 9}})
	s = apply(t, s, Resize{Height: 4})
	if s.Height != 4 {
		t.Fatalf("Height = %d, want 4", s.Height)
	}
	y := s.Buffer.ScreenCursor().Y
	if y < 0 || y >= 4 {
		t.Errorf("screen cursor row = %d, want within [0,4)", y)
	}
}

func TestResizeClampsToOne(t *testing.T) {
	s := apply(t, stateWith("a"), Resize{Height: -3})
	if s.Height != 1 {
		t.Errorf("Height = %d, want 1", s.Height)
	}
}

// ---------------------------------------------------------------------------
// Mode changes
// ---------------------------------------------------------------------------

func TestEnterAndLeaveCommand(t *testing.T) {
	s := apply(t, stateWith("a"), EnterCommand{Prefix: ':'}, CommandInput{Text: "w"})
	if s.Mode != ModeCommand || s.Command.String() != ":w" {
		t.Fatalf("state = %v %q", s.Mode, s.Command.String())
	}
	s = apply(t, s, EnterNormal{})
	if s.Mode != ModeNormal || s.Command != (CommandLine{}) {
		t.Errorf("esc should discard the command line, got %+v", s.Command)
	}
}

func TestCommandBackspace(t *testing.T) {
	s := apply(t, stateWith("a"), EnterCommand{Prefix: '/'}, CommandInput{Text: "hé"}, CommandBackspace{})
	if s.Command.Input != "h" || s.Command.Cursor != 1 {
		t.Errorf("command = %+v, want input h cursor 1", s.Command)
	}
	s = apply(t, s, CommandBackspace{}, CommandBackspace{})
	if s.Mode != ModeCommand || s.Command.Input != "" {
		t.Errorf("backspace on empty input: mode=%v input=%q", s.Mode, s.Command.Input)
	}
}

// ---------------------------------------------------------------------------
// Effect results
// ---------------------------------------------------------------------------

func TestQuitEffect(t *testing.T) {
	_, eff := Update(stateWith("a"), Quit{})
	if _, ok := eff.(QuitEffect); !ok {
		t.Errorf("effect = %T, want QuitEffect", eff)
	}
}

func TestSetBufferReplacesBuffer(t *testing.T) {
	s := apply(t, stateWith("old"), MoveCursor{Delta: vec.Vec{X: 2}})
	loaded := buffer.FromLines([]string{"new", "text"}).Saved("/tmp/new.txt")
	s = apply(t, s, SetBuffer{Buffer: loaded})
	if s.Buffer.Filepath() != "/tmp/new.txt" {
		t.Errorf("Filepath = %q", s.Buffer.Filepath())
	}
	if s.Buffer.Cursor() != (vec.Vec{}) {
		t.Errorf("cursor = %+v, want origin", s.Buffer.Cursor())
	}
	if !strings.Contains(s.Message, "2L") || s.MessageIsError {
		t.Errorf("Message = %q (error=%v)", s.Message, s.MessageIsError)
	}
}

func TestSavedClearsModified(t *testing.T) {
	s := apply(t, stateWith("abc"), InsertText{Text: "x"})
	s = apply(t, s, Saved{Path: "/tmp/f.txt", Bytes: 4, Content: s.Buffer.String()})
	if s.Buffer.Modified() {
		t.Error("buffer should not be modified after save")
	}
	if s.Buffer.Filepath() != "/tmp/f.txt" {
		t.Errorf("Filepath = %q", s.Buffer.Filepath())
	}
	if !strings.Contains(s.Message, "4B written") {
		t.Errorf("Message = %q", s.Message)
	}
}

func TestSavedStaleContentKeepsModified(t *testing.T) {
	s := apply(t, stateWith("abc"), InsertText{Text: "x"})
	s = apply(t, s, Saved{Path: "/tmp/f.txt", Bytes: 3, Content: "abc"})
	if !s.Buffer.Modified() {
		t.Error("edits made after the snapshot must stay modified")
	}
	if got := s.Buffer.Filepath(); got != "/tmp/f.txt" {
		t.Errorf("Filepath() = %q, want the written path", got)
	}
}

func TestFailedNoFileName(t *testing.T) {
	s := apply(t, stateWith("a"), Failed{Err: buffer.ErrNoFileName})
	if s.Message != "No file name" || !s.MessageIsError {
		t.Errorf("Message = %q (error=%v)", s.Message, s.MessageIsError)
	}
}

func TestFailedOtherError(t *testing.T) {
	s := apply(t, stateWith("a"), Failed{Err: errors.New("write /x: permission denied")})
	if s.Message != "write /x: permission denied" || !s.MessageIsError {
		t.Errorf("Message = %q", s.Message)
	}
}
