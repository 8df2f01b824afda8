package editor

// Key is one key press as delivered by the terminal.
//
// Name is the symbolic name of a special key ("enter", "esc", "backspace",
// "up", ...) or the base key of a ctrl chord. Text carries the characters
// typed for printable input.
type Key struct {
	Name  string
	Text  string
	Shift bool
	Ctrl  bool
}

// String returns the key in bubbletea notation, e.g. "ctrl+d", "J" or
// "enter", so that key bindings can match it.
func (k Key) String() string {
	switch {
	case k.Ctrl:
		return "ctrl+" + k.Name
	case k.Text != "":
		return k.Text
	case k.Shift:
		return "shift+" + k.Name
	default:
		return k.Name
	}
}

// printable reports whether k carries text to insert.
func (k Key) printable() bool {
	return k.Text != "" && !k.Ctrl
}
