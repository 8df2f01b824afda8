package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vedit/internal/editor"
)

// keyFromMsg converts a bubbletea key press into an editor key.
func keyFromMsg(msg tea.KeyMsg) editor.Key {
	switch {
	case msg.Alt:
		// No alt bindings; keep the name so nothing matches it as text.
		return editor.Key{Name: msg.String()}
	case msg.Type == tea.KeyRunes:
		return editor.Key{Text: string(msg.Runes)}
	case msg.Type == tea.KeySpace:
		return editor.Key{Name: "space", Text: " "}
	}

	s := msg.String()
	if name, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return editor.Key{Name: name, Ctrl: true}
	}
	if name, ok := strings.CutPrefix(s, "shift+"); ok {
		return editor.Key{Name: name, Shift: true}
	}
	return editor.Key{Name: s}
}
