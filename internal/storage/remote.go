package storage

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"path"
	"sync"
)

// Scheme is the URL scheme of remote paths.
const Scheme = "scp"

// Target is a parsed scp:// path.
type Target struct {
	User string
	Host string // host name or ~/.ssh/config alias
	Port string
	Path string
}

// ParseTarget parses scp://[user@]host[:port]/path.
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Scheme != Scheme {
		return Target{}, fmt.Errorf("parse %q: scheme must be %s", raw, Scheme)
	}
	if u.Hostname() == "" {
		return Target{}, fmt.Errorf("parse %q: missing host", raw)
	}
	if u.Path == "" || u.Path == "/" {
		return Target{}, fmt.Errorf("parse %q: missing file path", raw)
	}
	t := Target{
		Host: u.Hostname(),
		Port: u.Port(),
		Path: path.Clean(u.Path),
	}
	if u.User != nil {
		t.User = u.User.Username()
	}
	return t, nil
}

// String formats t back into its scp:// form.
func (t Target) String() string {
	u := url.URL{Scheme: Scheme, Host: t.Host, Path: t.Path}
	if t.Port != "" {
		u.Host = net.JoinHostPort(t.Host, t.Port)
	}
	if t.User != "" {
		u.User = url.User(t.User)
	}
	return u.String()
}

// endpoint identifies the connection a target is served by.
func (t Target) endpoint() string {
	return t.User + "@" + net.JoinHostPort(t.Host, t.Port)
}

// Conn is an open connection to a remote host.
type Conn interface {
	Exists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Close() error
}

// Dialer opens a connection for a target.
type Dialer func(t Target) (Conn, error)

// Remote serves scp:// paths. Connections are dialed on first use and
// reused for later operations on the same endpoint.
type Remote struct {
	dial Dialer

	mu    sync.Mutex
	conns map[string]Conn
}

var _ FS = (*Remote)(nil)

// NewRemote creates a Remote that opens connections with dial.
func NewRemote(dial Dialer) *Remote {
	return &Remote{dial: dial, conns: map[string]Conn{}}
}

func (r *Remote) Resolve(p string) (string, error) {
	t, err := ParseTarget(p)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func (r *Remote) Exists(path string) (bool, error) {
	var exists bool
	err := r.with(path, func(c Conn, remotePath string) error {
		var err error
		exists, err = c.Exists(remotePath)
		return err
	})
	return exists, err
}

func (r *Remote) ReadFile(path string) ([]byte, error) {
	var data []byte
	err := r.with(path, func(c Conn, remotePath string) error {
		var err error
		data, err = c.ReadFile(remotePath)
		return err
	})
	return data, err
}

func (r *Remote) WriteFile(path string, data []byte) error {
	return r.with(path, func(c Conn, remotePath string) error {
		return c.WriteFile(remotePath, data)
	})
}

// Close closes every cached connection.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for key, c := range r.conns {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", key, err))
		}
		delete(r.conns, key)
	}
	return errors.Join(errs...)
}

// with runs fn on the connection serving path. A failed operation drops
// the connection so the next call dials again.
func (r *Remote) with(path string, fn func(c Conn, remotePath string) error) error {
	t, err := ParseTarget(path)
	if err != nil {
		return err
	}
	key := t.endpoint()

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[key]
	if !ok {
		log.Printf("[Remote] dialing %s", key)
		c, err = r.dial(t)
		if err != nil {
			return fmt.Errorf("connect %s: %w", t.Host, err)
		}
		r.conns[key] = c
	}
	if err := fn(c, t.Path); err != nil {
		delete(r.conns, key)
		if cErr := c.Close(); cErr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", key, cErr))
		}
		return err
	}
	return nil
}
