package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"vedit/internal/buffer"
	"vedit/internal/config"
	"vedit/internal/editor"
	"vedit/internal/storage"
)

// chromeRows is the number of rows below the text: mode row and status row.
const chromeRows = 2

// EditorLoadedMsg carries the result of loading a file.
type EditorLoadedMsg struct {
	Buffer buffer.Buffer
	Err    error
}

// EditorSaveDoneMsg reports the result of a save operation.
type EditorSaveDoneMsg struct {
	Path    string
	Bytes   int
	Content string
	Err     error
}

// EditorModel runs the editor core inside bubbletea. It owns the only
// editor.State; every key press and I/O result is folded into it in order.
type EditorModel struct {
	state editor.State
	keys  editor.KeyMap
	fs    storage.FS
	cfg   *config.Config // may be nil

	width    int
	height   int
	showHelp bool
}

// NewEditorModel creates a model editing buf. Files are read and written
// through fs; successfully opened and saved paths are recorded in cfg.
func NewEditorModel(buf buffer.Buffer, fs storage.FS, cfg *config.Config) EditorModel {
	return EditorModel{
		state: editor.New(buf),
		keys:  editor.DefaultKeys,
		fs:    fs,
		cfg:   cfg,
	}
}

// State returns the current editor state.
func (m EditorModel) State() editor.State { return m.state }

func (m EditorModel) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title())
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.apply(editor.Resize{Height: msg.Height - chromeRows})

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.state.Mode == editor.ModeNormal && msg.String() == "?" {
			m.showHelp = true
			return m, nil
		}
		var eff editor.Effect
		m.state, eff = m.keys.Dispatch(m.state, keyFromMsg(msg))
		return m, m.run(eff)

	case EditorLoadedMsg:
		if msg.Err != nil {
			log.Printf("[Editor] load failed: %v", msg.Err)
			return m.apply(editor.Failed{Err: msg.Err})
		}
		log.Printf("[Editor] loaded %s (%d lines)", msg.Buffer.Filepath(), msg.Buffer.LineCount())
		m.remember(msg.Buffer.Filepath())
		next, cmd := m.apply(editor.SetBuffer{Buffer: msg.Buffer})
		return next, tea.Batch(cmd, tea.SetWindowTitle(next.title()))

	case EditorSaveDoneMsg:
		if msg.Err != nil {
			log.Printf("[Editor] save failed: %v", msg.Err)
			return m.apply(editor.Failed{Err: msg.Err})
		}
		log.Printf("[Editor] wrote %s (%d bytes)", msg.Path, msg.Bytes)
		m.remember(msg.Path)
		next, cmd := m.apply(editor.Saved{Path: msg.Path, Bytes: msg.Bytes, Content: msg.Content})
		return next, tea.Batch(cmd, tea.SetWindowTitle(next.title()))
	}
	return m, nil
}

// apply folds a into the state and runs the resulting effect.
func (m EditorModel) apply(a editor.Action) (EditorModel, tea.Cmd) {
	var eff editor.Effect
	m.state, eff = editor.Update(m.state, a)
	return m, m.run(eff)
}

// run turns an effect into a command. File I/O happens on a snapshot of
// the buffer inside the command goroutine.
func (m EditorModel) run(eff editor.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case nil:
		return nil
	case editor.QuitEffect:
		log.Printf("[Editor] quit")
		return tea.Quit
	case editor.SaveEffect:
		fs, buf, path := m.fs, eff.Buffer, eff.Path
		return func() tea.Msg {
			saved, n, err := buf.Save(fs, path)
			if err != nil {
				return EditorSaveDoneMsg{Err: err}
			}
			return EditorSaveDoneMsg{Path: saved.Filepath(), Bytes: n, Content: saved.String()}
		}
	case editor.OpenEffect:
		fs, path := m.fs, eff.Path
		return func() tea.Msg {
			b, err := buffer.FromFile(fs, path)
			return EditorLoadedMsg{Buffer: b, Err: err}
		}
	default:
		log.Printf("[Editor] unhandled effect %T", eff)
		return nil
	}
}

func (m EditorModel) remember(path string) {
	if m.cfg == nil || path == "" {
		return
	}
	m.cfg.AddRecent(path)
	if err := config.Save(m.cfg); err != nil {
		log.Printf("[Editor] failed to save config: %v", err)
	}
}

func (m EditorModel) title() string {
	name := m.state.Buffer.Filepath()
	if name == "" {
		return "vedit"
	}
	return "vedit - " + filepath.Base(name)
}

// CursorPosition returns where the terminal cursor belongs: the cursor cell
// in the text area, or the end of the command line in Command mode.
// Columns are terminal cells, so wide characters count twice.
func (m EditorModel) CursorPosition() (col, row int) {
	if m.state.Mode == editor.ModeCommand {
		return runewidth.StringWidth(m.state.Command.String()), m.textRows() + 1
	}
	b := m.state.Buffer
	sc := b.ScreenCursor()
	line, _ := b.CurrentLine()
	return runewidth.StringWidth(prefixRunes(line, sc.X)), sc.Y
}

func (m EditorModel) textRows() int {
	return max(m.height-chromeRows, 1)
}

func (m EditorModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return RenderHelp(m.keys, m.width, m.height)
	}

	b := m.state.Buffer
	rows := m.textRows()
	cursorCol, cursorRow := m.CursorPosition()
	showCursor := m.state.Mode != editor.ModeCommand

	lines := b.LinesToRender(rows)
	out := make([]string, 0, rows+chromeRows)
	for i, line := range lines {
		if showCursor && i == cursorRow {
			out = append(out, renderCursorLine(line, b.Cursor().X, cursorCol, m.width))
			continue
		}
		out = append(out, runewidth.Truncate(line, m.width, ""))
	}
	for len(out) < rows {
		out = append(out, editorTildeStyle.Render("~"))
	}

	out = append(out, m.renderModeRow(), m.renderStatusRow())
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// renderCursorLine draws line with a block cursor on rune x. The line is
// shifted left when the cursor would fall outside width cells.
func renderCursorLine(line string, x, col, width int) string {
	runes := []rune(line)
	start := 0
	for start < x && col >= width {
		col -= runewidth.RuneWidth(runes[start])
		start++
	}

	var sb strings.Builder
	used := 0
	for i := start; i < len(runes); i++ {
		w := runewidth.RuneWidth(runes[i])
		if used+w > width {
			break
		}
		if i == x {
			sb.WriteString(editorCursorStyle.Render(string(runes[i])))
		} else {
			sb.WriteRune(runes[i])
		}
		used += w
	}
	if x >= len(runes) {
		sb.WriteString(editorCursorStyle.Render(" "))
	}
	return sb.String()
}

func (m EditorModel) renderModeRow() string {
	mode := editorModeStyle.Render(fmt.Sprintf(" %s ", m.state.Mode))
	hint := editorHintStyle.Render(" ?: help")
	return editorStatusStyle.Width(m.width).Render(mode + hint)
}

func (m EditorModel) renderStatusRow() string {
	if m.state.Mode == editor.ModeCommand {
		line := m.state.Command.String() + editorCursorStyle.Render(" ")
		return editorCommandBarStyle.Width(m.width).Render(line)
	}

	b := m.state.Buffer
	name := b.Filepath()
	if name == "" {
		name = "[No Name]"
	}
	if b.Modified() {
		name += " [+]"
	}
	c := b.Cursor()
	right := fmt.Sprintf(" %d:%d ", c.X+1, c.Y+1)
	avail := max(m.width-runewidth.StringWidth(right), 0)
	left := runewidth.Truncate(" "+name, avail, "…")
	if msg := m.state.Message; msg != "" {
		style := editorInfoStyle
		if m.state.MessageIsError {
			style = editorErrorStyle
		}
		sep := " │ "
		if room := avail - runewidth.StringWidth(left+sep); room > 0 {
			left += sep + style.Render(runewidth.Truncate(msg, room, "…"))
		}
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return editorStatusStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func prefixRunes(s string, n int) string {
	runes := []rune(s)
	return string(runes[:min(max(n, 0), len(runes))])
}

// Styles for the editor.
var (
	editorCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFFFFF")).
				Foreground(lipgloss.Color("#000000"))

	editorTildeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#444444"))

	editorStatusStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(lipgloss.Color("#AAAAAA"))

	editorModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	editorHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))

	editorInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	editorErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF5555")).
				Bold(true)

	editorCommandBarStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#1E1E1E")).
				Foreground(lipgloss.Color("#FFFFFF"))
)
