package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"vedit/internal/buffer"
	"vedit/internal/config"
	sshclient "vedit/internal/ssh"
	"vedit/internal/storage"
	"vedit/internal/ui"
)

// newDialer returns a storage.Dialer that resolves targets through the
// parsed ~/.ssh/config entries before connecting.
func newDialer(hosts []config.SSHHost, dial func(config.Connection) (*sshclient.Client, error)) storage.Dialer {
	return func(t storage.Target) (storage.Conn, error) {
		conn := config.ResolveConnection(hosts, t.Host, t.Port, t.User)
		log.Printf("[Main] connecting to %s@%s:%s", conn.Username, conn.Host, conn.Port)
		c, err := dial(conn)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// newFS wires local and remote storage behind one router. A nil remote
// leaves scp:// paths unavailable.
func newFS(remote *storage.Remote) storage.Router {
	r := storage.Router{Local: storage.Local{}}
	if remote != nil {
		r.Remote = remote
	}
	return r
}

// loadBuffer opens the file named on the command line, or an empty buffer
// when there is none.
func loadBuffer(fs storage.FS, args []string) (buffer.Buffer, error) {
	switch len(args) {
	case 0:
		return buffer.Empty(), nil
	case 1:
		return buffer.FromFile(fs, args[0])
	default:
		return buffer.Buffer{}, errors.New("too many file names")
	}
}

// logPath returns the path for the debug log file.
// Local runs (go run, ./bin/vedit) log to .logs/debug.log; installed
// binaries log to $XDG_STATE_HOME/vedit/debug.log.
func logPath() string {
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		cwd, _ := os.Getwd()
		if strings.HasPrefix(exeDir, cwd) || strings.Contains(exeDir, "go-build") {
			dir := filepath.Join(cwd, ".logs")
			_ = os.MkdirAll(dir, 0o755)
			return filepath.Join(dir, "debug.log")
		}
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "vedit")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "debug.log")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run starts the editor on the given terminal and returns the process exit
// code. Deferred cleanup runs before main exits.
func run(args []string, stdin, stdout *os.File) int {
	flags := flag.NewFlagSet("vedit", flag.ContinueOnError)
	logFile := flags.String("log", "", "debug log `file` (default: XDG state dir)")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: vedit [-log file] [path | scp://[user@]host[:port]/path]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if !term.IsTerminal(int(stdin.Fd())) || !term.IsTerminal(int(stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "vedit: not a terminal")
		return 1
	}

	path := *logFile
	if path == "" {
		path = logPath()
	}
	f, err := tea.LogToFile(path, "debug")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not open debug log:", err)
		return 1
	}
	defer func() { _ = f.Close() }()
	log.Printf("=== vedit starting (log: %s) ===", path)

	remote := storage.NewRemote(newDialer(config.LoadSSHConfig(), sshclient.Dial))
	fs := newFS(remote)

	buf, err := loadBuffer(fs, flags.Args())
	if err != nil {
		_ = remote.Close()
		fmt.Fprintln(os.Stderr, "vedit:", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil || cfg == nil {
		cfg = &config.Config{}
	}
	if name := buf.Filepath(); name != "" {
		cfg.AddRecent(name)
		if err := config.Save(cfg); err != nil {
			log.Printf("[Main] failed to save config: %v", err)
		}
	}

	p := tea.NewProgram(ui.NewEditorModel(buf, fs, cfg),
		tea.WithAltScreen(),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
	)
	_, runErr := p.Run()
	if err := remote.Close(); err != nil {
		log.Printf("[Main] close remote connections: %v", err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", runErr)
		return 1
	}
	return 0
}
