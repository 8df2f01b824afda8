package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"vedit/internal/editor"
)

const helpFooter = `
:w [file]  write        :q   quit       :q!  quit without writing
:wq  :x    write+quit   :e file  edit   :N   go to line N
/text      search       ?    toggle this help`

var helpStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(1, 3)

// RenderHelp returns the help overlay for km, centred in width x height.
func RenderHelp(km editor.KeyMap, width, height int) string {
	h := help.New()
	h.ShowAll = true
	h.Width = max(width-10, 20)
	body := lipgloss.JoinVertical(lipgloss.Left,
		"vedit key bindings",
		"",
		h.View(km),
		helpFooter,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpStyle.Render(body))
}
