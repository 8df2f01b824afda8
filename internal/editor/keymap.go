package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"vedit/internal/vec"
)

// KeyMap holds the key bindings of every mode.
type KeyMap struct {
	// Normal mode.
	Left, Down, Up, Right key.Binding
	LineStart, LineEnd    key.Binding
	LastLine              key.Binding
	NextWord, WordEnd     key.Binding
	PrevWord              key.Binding
	HalfPageDown          key.Binding
	HalfPageUp            key.Binding
	JoinLine              key.Binding
	DeleteChar            key.Binding
	Insert                key.Binding
	InsertAtStart         key.Binding
	OpenBelow, OpenAbove  key.Binding
	Command, Search       key.Binding

	// Insert mode.
	ExitInsert key.Binding
	Newline    key.Binding
	Tab        key.Binding
	Backspace  key.Binding

	// Command mode.
	Cancel           key.Binding
	Execute          key.Binding
	CommandBackspace key.Binding

	// Any mode.
	Quit key.Binding
}

// tabText is what the tab key inserts.
const tabText = "    "

// DefaultKeyMap returns the vi-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:          key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "left")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Right:         key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "right")),
		LineStart:     key.NewBinding(key.WithKeys("0", "home"), key.WithHelp("0", "line start")),
		LineEnd:       key.NewBinding(key.WithKeys("$", "end"), key.WithHelp("$", "line end")),
		LastLine:      key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last line")),
		NextWord:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next word")),
		WordEnd:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "word end")),
		PrevWord:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous word")),
		HalfPageDown:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		HalfPageUp:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		JoinLine:      key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "join lines")),
		DeleteChar:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete char")),
		Insert:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert")),
		InsertAtStart: key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "insert at line start")),
		OpenBelow:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open line below")),
		OpenAbove:     key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "open line above")),
		Command:       key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),

		ExitInsert: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "normal mode")),
		Newline:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "split line")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete back")),

		Cancel:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Execute:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		CommandBackspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete back")),

		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Insert, km.Command, km.Search, km.Quit}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Left, km.Down, km.Up, km.Right, km.LineStart, km.LineEnd, km.LastLine},
		{km.NextWord, km.WordEnd, km.PrevWord, km.HalfPageDown, km.HalfPageUp},
		{km.Insert, km.InsertAtStart, km.OpenBelow, km.OpenAbove, km.DeleteChar, km.JoinLine},
		{km.Command, km.Search, km.Quit},
	}
}

// Actions translates a key press in mode into the actions it stands for.
// Keys without a binding yield nil.
func (km KeyMap) Actions(mode Mode, k Key) []Action {
	if key.Matches(k, km.Quit) {
		return []Action{Quit{}}
	}
	switch mode {
	case ModeInsert:
		return km.insertActions(k)
	case ModeCommand:
		return km.commandActions(k)
	default:
		return km.normalActions(k)
	}
}

func (km KeyMap) normalActions(k Key) []Action {
	switch {
	case key.Matches(k, km.Left):
		return []Action{MoveCursor{Delta: vec.Vec{X: -1}}}
	case key.Matches(k, km.Down):
		return []Action{MoveCursor{Delta: vec.Vec{Y: 1}}}
	case key.Matches(k, km.Up):
		return []Action{MoveCursor{Delta: vec.Vec{Y: -1}}}
	case key.Matches(k, km.Right):
		return []Action{MoveCursor{Delta: vec.Vec{X: 1}}}
	case key.Matches(k, km.LineStart):
		return []Action{MoveCursor{Delta: vec.Vec{X: vec.NegInf}}}
	case key.Matches(k, km.LineEnd):
		return []Action{MoveCursor{Delta: vec.Vec{X: vec.Inf}}}
	case key.Matches(k, km.LastLine):
		return []Action{MoveCursor{Delta: vec.Vec{Y: vec.Inf}}}
	case key.Matches(k, km.NextWord):
		return []Action{NextWord{}}
	case key.Matches(k, km.WordEnd):
		return []Action{WordEnd{}}
	case key.Matches(k, km.PrevWord):
		return []Action{PreviousWord{}}
	case key.Matches(k, km.HalfPageDown):
		return []Action{HalfPage{Down: true}}
	case key.Matches(k, km.HalfPageUp):
		return []Action{HalfPage{Down: false}}
	case key.Matches(k, km.JoinLine):
		return []Action{JoinLine{}}
	case key.Matches(k, km.DeleteChar):
		return []Action{RemoveChar{}}
	case key.Matches(k, km.Insert):
		return []Action{EnterInsert{}}
	case key.Matches(k, km.InsertAtStart):
		return []Action{MoveCursor{Delta: vec.Vec{X: vec.NegInf}}, EnterInsert{}}
	case key.Matches(k, km.OpenBelow):
		return []Action{InsertLine{Above: false}, MoveCursor{Delta: vec.Vec{X: vec.NegInf, Y: 1}}, EnterInsert{}}
	case key.Matches(k, km.OpenAbove):
		return []Action{InsertLine{Above: true}, MoveCursor{Delta: vec.Vec{X: vec.NegInf}}, EnterInsert{}}
	case key.Matches(k, km.Command):
		return []Action{EnterCommand{Prefix: ':'}}
	case key.Matches(k, km.Search):
		return []Action{EnterCommand{Prefix: '/'}}
	}
	return nil
}

func (km KeyMap) insertActions(k Key) []Action {
	switch {
	case key.Matches(k, km.ExitInsert):
		return []Action{EnterNormal{}}
	case key.Matches(k, km.Newline):
		return []Action{SplitLine{}, MoveCursor{Delta: vec.Vec{X: vec.NegInf, Y: 1}}}
	case key.Matches(k, km.Tab):
		return []Action{InsertText{Text: tabText}}
	case key.Matches(k, km.Backspace):
		return []Action{Backspace{}}
	case k.printable():
		return textActions(k.Text)
	}
	return nil
}

// textActions inserts text that may span lines, as a paste does. Each line
// break becomes a split so no line ever holds a newline.
func textActions(text string) []Action {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	actions := make([]Action, 0, 3*len(parts))
	for i, part := range parts {
		if i > 0 {
			actions = append(actions, SplitLine{}, MoveCursor{Delta: vec.Vec{X: vec.NegInf, Y: 1}})
		}
		if part != "" {
			actions = append(actions, InsertText{Text: part})
		}
	}
	return actions
}

func (km KeyMap) commandActions(k Key) []Action {
	switch {
	case key.Matches(k, km.Cancel):
		return []Action{EnterNormal{}}
	case key.Matches(k, km.Execute):
		return []Action{ExecuteCommand{}}
	case key.Matches(k, km.CommandBackspace):
		return []Action{CommandBackspace{}}
	case k.printable():
		return []Action{CommandInput{Text: strings.Map(dropLineBreak, k.Text)}}
	}
	return nil
}

func dropLineBreak(r rune) rune {
	if r == '\n' || r == '\r' {
		return -1
	}
	return r
}
