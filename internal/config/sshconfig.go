package config

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Connection is everything needed to dial the host behind an scp:// path.
type Connection struct {
	Host           string
	Port           string
	Username       string
	KeyPath        string
	KnownHostsFile string
}

// SSHHost is one Host block from ~/.ssh/config.
type SSHHost struct {
	Patterns           []string // the Host line, e.g. ["web", "*.internal"]
	HostName           string
	Port               string
	User               string
	IdentityFile       string // ~ expanded
	UserKnownHostsFile string // ~ expanded
}

// Matches reports whether name is selected by one of the block's patterns.
// A pattern prefixed with '!' excludes the name.
func (h SSHHost) Matches(name string) bool {
	matched := false
	for _, p := range h.Patterns {
		negate := strings.HasPrefix(p, "!")
		ok, err := path.Match(strings.TrimPrefix(p, "!"), name)
		if err != nil || !ok {
			continue
		}
		if negate {
			return false
		}
		matched = true
	}
	return matched
}

func sshConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ssh", "config")
}

// LoadSSHConfig reads ~/.ssh/config. A missing file is not an error and
// yields no hosts.
func LoadSSHConfig() []SSHHost {
	return LoadSSHConfigFrom(sshConfigPath())
}

// LoadSSHConfigFrom reads and parses the SSH config file at p.
func LoadSSHConfigFrom(p string) []SSHHost {
	f, err := os.Open(p)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	return ParseSSHConfig(f)
}

// ParseSSHConfig parses SSH config content. Blocks are returned in file
// order, wildcard blocks included, since lookups apply them in order.
func ParseSSHConfig(r io.Reader) []SSHHost {
	var hosts []SSHHost
	home, _ := os.UserHomeDir()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value := splitSSHConfigLine(line)
		if key == "" {
			continue
		}

		if strings.EqualFold(key, "host") {
			hosts = append(hosts, SSHHost{Patterns: strings.Fields(value)})
			continue
		}
		if len(hosts) == 0 {
			// Directives before the first Host line apply to every host.
			hosts = append(hosts, SSHHost{Patterns: []string{"*"}})
		}
		current := &hosts[len(hosts)-1]

		switch strings.ToLower(key) {
		case "hostname":
			current.HostName = value
		case "port":
			current.Port = value
		case "user":
			current.User = value
		case "identityfile":
			current.IdentityFile = expandTilde(value, home)
		case "userknownhostsfile":
			// Only the first of several listed files is consulted.
			if fields := strings.Fields(value); len(fields) > 0 {
				current.UserKnownHostsFile = expandTilde(fields[0], home)
			}
		}
	}
	return hosts
}

// MatchSSHHost merges every block that matches name. As with ssh, the first
// value seen for a directive wins. It returns nil when no block matches.
func MatchSSHHost(hosts []SSHHost, name string) *SSHHost {
	var merged *SSHHost
	for _, h := range hosts {
		if !h.Matches(name) {
			continue
		}
		if merged == nil {
			merged = &SSHHost{Patterns: []string{name}}
		}
		merged.HostName = firstNonEmpty(merged.HostName, h.HostName)
		merged.Port = firstNonEmpty(merged.Port, h.Port)
		merged.User = firstNonEmpty(merged.User, h.User)
		merged.IdentityFile = firstNonEmpty(merged.IdentityFile, h.IdentityFile)
		merged.UserKnownHostsFile = firstNonEmpty(merged.UserKnownHostsFile, h.UserKnownHostsFile)
	}
	return merged
}

// ResolveConnection fills in a Connection for host. Values given explicitly
// (from the scp:// URL) take precedence over the SSH config, which in turn
// takes precedence over the defaults: port 22 and the current $USER.
func ResolveConnection(hosts []SSHHost, host, port, user string) Connection {
	conn := Connection{Host: host, Port: port, Username: user}
	if h := MatchSSHHost(hosts, host); h != nil {
		conn.Host = firstNonEmpty(h.HostName, host)
		conn.Port = firstNonEmpty(port, h.Port)
		conn.Username = firstNonEmpty(user, h.User)
		conn.KeyPath = h.IdentityFile
		conn.KnownHostsFile = h.UserKnownHostsFile
	}
	conn.Port = firstNonEmpty(conn.Port, "22")
	conn.Username = firstNonEmpty(conn.Username, os.Getenv("USER"))
	return conn
}

// splitSSHConfigLine splits "HostName example.com" or "HostName=example.com"
// into key and value.
func splitSSHConfigLine(line string) (string, string) {
	i := strings.IndexFunc(line, func(r rune) bool {
		return r == '=' || r == ' ' || r == '\t'
	})
	if i < 0 {
		return line, ""
	}
	key := line[:i]
	value := strings.TrimSpace(line[i+1:])
	value = strings.TrimSpace(strings.TrimPrefix(value, "="))
	return key, strings.Trim(value, `"`)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(p, home string) string {
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	if p == "~" {
		return home
	}
	return p
}
