package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"vedit/internal/buffer"
	"vedit/internal/vec"
)

// Update applies a to s and returns the new state together with the effect
// the caller has to run, if any. s is not modified.
func Update(s State, a Action) (State, Effect) {
	b := s.Buffer
	h := s.Height

	switch a := a.(type) {
	case MoveCursor:
		s.Buffer = b.Move(a.Delta, h)
	case MoveTo:
		s.Buffer = b.MoveTo(a.Pos, h)
	case ScrollScreen:
		s.Buffer = b.ScrollScreen(a.Dy, h)
	case HalfPage:
		dy := max(1, h/2)
		if !a.Down {
			dy = -dy
		}
		s.Buffer = b.ScrollScreen(dy, h)
	case JoinLine:
		s.Buffer = b.JoinLine(h)

	case EnterInsert:
		s.Mode = ModeInsert
	case EnterNormal:
		s.Mode = ModeNormal
		s.Command = CommandLine{}
	case EnterCommand:
		s.Mode = ModeCommand
		s.Command = CommandLine{Prefix: a.Prefix}

	case InsertLine:
		s.Buffer = b.InsertLine(a.Above)
	case RemoveChar:
		s.Buffer = b.RemoveChar()
	case InsertText:
		if a.Text == "" {
			return s, nil
		}
		s.Buffer = b.InsertStr(a.Text).Move(vec.Vec{X: utf8.RuneCountInString(a.Text)}, h)
	case SplitLine:
		s.Buffer = b.SplitLine()
	case Backspace:
		s.Buffer = b.Backspace(h)

	case NextWord:
		if p, ok := b.NextWord(); ok {
			s.Buffer = b.MoveTo(p, h)
		}
	case WordEnd:
		if p, ok := b.WordEnd(); ok {
			s.Buffer = b.MoveTo(p, h)
		}
	case PreviousWord:
		s.Buffer = b.MoveTo(b.PreviousWord(), h)

	case CommandInput:
		s.Command.Input += a.Text
		s.Command.Cursor = utf8.RuneCountInString(s.Command.Input)
	case CommandBackspace:
		if in := s.Command.Input; in != "" {
			_, size := utf8.DecodeLastRuneInString(in)
			s.Command.Input = in[:len(in)-size]
			s.Command.Cursor = utf8.RuneCountInString(s.Command.Input)
		}
	case ExecuteCommand:
		cmd := s.Command
		s.Mode = ModeNormal
		s.Command = CommandLine{}
		return execute(s, cmd)

	case Quit:
		return s, QuitEffect{}
	case Resize:
		s.Height = max(1, a.Height)
		s.Buffer = b.Move(vec.Zero(), s.Height)

	case SetBuffer:
		s.Buffer = a.Buffer.Move(vec.Zero(), h)
		s.quitAfterSave = false
		s = s.info(fmt.Sprintf("%q %dL", a.Buffer.Filepath(), a.Buffer.LineCount()))
	case Saved:
		if a.Content == b.String() {
			s.Buffer = b.Saved(a.Path)
		} else {
			s.Buffer = b.Named(a.Path)
		}
		lines := strings.Count(a.Content, "\n") + 1
		s = s.info(fmt.Sprintf("%q %dL, %dB written", a.Path, lines, a.Bytes))
		if s.quitAfterSave {
			s.quitAfterSave = false
			return s, QuitEffect{}
		}
	case Failed:
		s.quitAfterSave = false
		s = s.fail(errorMessage(a.Err))

	default:
		panic(fmt.Sprintf("editor: unhandled action %T", a))
	}
	return s, nil
}

func errorMessage(err error) string {
	if errors.Is(err, buffer.ErrNoFileName) {
		return "No file name"
	}
	return err.Error()
}
