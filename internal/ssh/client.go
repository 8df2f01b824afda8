package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bramvdbogaerde/go-scp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"vedit/internal/config"
)

// Client wraps an SSH connection used to read and write remote files.
type Client struct {
	client  *ssh.Client
	address string
}

// New creates a new SSH client connected to host:port with the given auth methods.
func New(host, port, username string, authMethods []ssh.AuthMethod, hkCallback ssh.HostKeyCallback) (*Client, error) {
	cfg := &ssh.ClientConfig{
		User:            username,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         10 * time.Second,
	}
	address := net.JoinHostPort(host, port)
	client, err := ssh.Dial("tcp", address, cfg)
	if err != nil {
		return nil, err
	}
	return &Client{client: client, address: address}, nil
}

// Dial connects to conn without any user interaction: keys come from the
// connection's identity file, the SSH agent and the default key paths, and
// host keys are checked against known_hosts.
func Dial(conn config.Connection) (*Client, error) {
	hk, err := KnownHostsCallback(conn.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("known hosts: %w", err)
	}
	auth := AuthMethods(conn.KeyPath)
	if len(auth) == 0 {
		return nil, errors.New("no usable SSH keys or agent")
	}
	return New(conn.Host, conn.Port, conn.Username, auth, hk)
}

// AuthMethods collects the non-interactive auth methods available: the
// explicit key file first, then the agent, then the default key paths.
func AuthMethods(keyPath string) []ssh.AuthMethod {
	var methods []ssh.AuthMethod
	if keyPath != "" {
		if am, err := PubKeyAuth(keyPath); err == nil {
			methods = append(methods, am)
		}
	}
	if am, err := AgentAuth(); err == nil {
		methods = append(methods, am)
	}
	for _, kp := range DefaultKeyPaths() {
		if kp == keyPath {
			continue
		}
		if am, err := PubKeyAuth(kp); err == nil {
			methods = append(methods, am)
		}
	}
	return methods
}

// PubKeyAuth returns an AuthMethod for public key authentication from a key file.
func PubKeyAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}

// AgentAuth returns an AuthMethod backed by the agent at $SSH_AUTH_SOCK.
func AgentAuth() (ssh.AuthMethod, error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, errors.New("SSH_AUTH_SOCK not set")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), nil
}

// DefaultKeyPaths lists the private keys ssh tries by default.
func DefaultKeyPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	names := []string{"id_ed25519", "id_ecdsa", "id_rsa"}
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(home, ".ssh", n))
	}
	return paths
}

// KnownHostsCallback verifies host keys against file, or ~/.ssh/known_hosts
// when file is empty.
func KnownHostsCallback(file string) (ssh.HostKeyCallback, error) {
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		file = filepath.Join(home, ".ssh", "known_hosts")
	}
	return knownhosts.New(file)
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Exists reports whether path exists on the remote host.
func (c *Client) Exists(path string) (exists bool, retErr error) {
	session, err := c.client.NewSession()
	if err != nil {
		return false, err
	}
	defer func() {
		if cErr := session.Close(); cErr != nil && !errors.Is(cErr, io.EOF) {
			retErr = errors.Join(retErr, fmt.Errorf("close session: %w", cErr))
		}
	}()

	err = session.Run("test -e " + shellQuote(path))
	var exitErr *ssh.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr) && exitErr.ExitStatus() == 1:
		return false, nil
	default:
		return false, fmt.Errorf("test %s on %s: %w", path, c.address, err)
	}
}

// ReadFile copies a remote file into memory.
func (c *Client) ReadFile(path string) ([]byte, error) {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return nil, err
	}
	defer scpClient.Close()

	var buf bytes.Buffer
	if err := scpClient.CopyFromRemotePassThru(context.Background(), &buf, path, nil); err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// WriteFile replaces the content of a remote file.
func (c *Client) WriteFile(path string, data []byte) error {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return err
	}
	defer scpClient.Close()

	if err := scpClient.CopyFile(context.Background(), bytes.NewReader(data), path, "0644"); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// shellQuote wraps a path in single quotes and escapes any single quotes within it,
// preventing shell injection when the path is used in a remote command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
