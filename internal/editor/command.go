package editor

import (
	"strconv"
	"strings"

	"vedit/internal/buffer"
	"vedit/internal/vec"
)

// command is a parsed ':' command line.
type command struct {
	name  string
	force bool // trailing '!'
	args  []string
}

func parseCommand(input string) (command, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return command{}, false
	}
	c := command{name: fields[0], args: fields[1:]}
	if n := strings.TrimSuffix(c.name, "!"); n != c.name && n != "" {
		c.name, c.force = n, true
	}
	return c, true
}

func (c command) arg() string {
	if len(c.args) == 0 {
		return ""
	}
	return c.args[0]
}

// execute runs a submitted command line. s is already back in Normal mode.
func execute(s State, cl CommandLine) (State, Effect) {
	if cl.Prefix == '/' {
		return search(s, cl.Input)
	}
	c, ok := parseCommand(cl.Input)
	if !ok {
		return s, nil
	}

	switch c.name {
	case "q", "quit":
		if s.Buffer.Modified() && !c.force {
			return s.fail("No write since last change (add ! to override)"), nil
		}
		return s, QuitEffect{}

	case "w", "write":
		return write(s, c.arg(), false)

	case "wq":
		return write(s, c.arg(), true)

	case "x", "exit":
		if !s.Buffer.Modified() && c.arg() == "" {
			return s, QuitEffect{}
		}
		return write(s, c.arg(), true)

	case "e", "edit":
		path := c.arg()
		if path == "" {
			return s.fail(errorMessage(buffer.ErrNoFileName)), nil
		}
		if s.Buffer.Modified() && !c.force {
			return s.fail("No write since last change (add ! to override)"), nil
		}
		return s, OpenEffect{Path: path}

	case "$":
		s.Buffer = s.Buffer.Move(vec.Vec{X: vec.NegInf, Y: vec.Inf}, s.Height)
		return s, nil
	}

	if n, err := strconv.Atoi(c.name); err == nil {
		dy := max(n-1, 0) - s.Buffer.Cursor().Y
		s.Buffer = s.Buffer.Move(vec.Vec{X: vec.NegInf, Y: dy}, s.Height)
		return s, nil
	}
	return s.fail("Not an editor command: " + strings.TrimSpace(cl.Input)), nil
}

func write(s State, path string, quit bool) (State, Effect) {
	if path == "" && s.Buffer.Filepath() == "" {
		return s.fail(errorMessage(buffer.ErrNoFileName)), nil
	}
	s.quitAfterSave = quit
	return s, SaveEffect{Buffer: s.Buffer, Path: path}
}

func search(s State, text string) (State, Effect) {
	if text == "" {
		return s, nil
	}
	p, ok := s.Buffer.Search(text)
	if !ok {
		return s.fail("Pattern not found: " + text), nil
	}
	s.Buffer = s.Buffer.MoveTo(p, s.Height)
	return s, nil
}
