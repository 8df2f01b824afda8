package ssh

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"testing"

	"golang.org/x/crypto/ssh"
)

// existingPath is the only path the test server reports as present.
const existingPath = "/srv/notes.txt"

// testSSHServer starts a minimal SSH server for integration tests.
// It returns the address and a cleanup function.
func testSSHServer(t *testing.T) (addr string, cleanup func()) {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == "testuser" && string(pass) == "testpass" {
				return nil, nil
			}
			return nil, fmt.Errorf("auth failed")
		},
	}
	config.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go handleConn(conn, config)
		}
	}()

	return ln.Addr().String(), func() {
		ln.Close()
		<-done
	}
}

func handleConn(conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		return
	}
	defer sshConn.Close()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		ch, requests, err := newChan.Accept()
		if err != nil {
			return
		}

		go func() {
			defer ch.Close()
			for req := range requests {
				if req.Type != "exec" {
					if req.WantReply {
						req.Reply(false, nil)
					}
					continue
				}
				// Payload: uint32 length + command string.
				var cmd string
				if len(req.Payload) > 4 {
					n := int(binary.BigEndian.Uint32(req.Payload[:4]))
					if n > 0 && 4+n <= len(req.Payload) {
						cmd = string(req.Payload[4 : 4+n])
					}
				}
				if req.WantReply {
					req.Reply(true, nil)
				}
				status := uint32(1)
				if cmd == "test -e "+shellQuote(existingPath) {
					status = 0
				}
				payload := make([]byte, 4)
				binary.BigEndian.PutUint32(payload, status)
				ch.SendRequest("exit-status", false, payload)
				return
			}
		}()
	}
}

func dialTestServer(t *testing.T) *Client {
	t.Helper()
	addr, cleanup := testSSHServer(t)
	t.Cleanup(cleanup)

	host, port, _ := net.SplitHostPort(addr)
	client, err := New(host, port, "testuser",
		[]ssh.AuthMethod{ssh.Password("testpass")},
		ssh.InsecureIgnoreHostKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// ---------------------------------------------------------------------------
// Integration tests using test SSH server
// ---------------------------------------------------------------------------

func TestNewClient(t *testing.T) {
	client := dialTestServer(t)
	if client.client == nil {
		t.Error("client.client should not be nil")
	}
	if client.address == "" {
		t.Error("client.address should be set")
	}
}

func TestNewClientBadAuth(t *testing.T) {
	addr, cleanup := testSSHServer(t)
	defer cleanup()

	host, port, _ := net.SplitHostPort(addr)
	_, err := New(host, port, "testuser",
		[]ssh.AuthMethod{ssh.Password("wrong")},
		ssh.InsecureIgnoreHostKey())
	if err == nil {
		t.Error("expected auth failure")
	}
}

func TestClientExists(t *testing.T) {
	client := dialTestServer(t)

	ok, err := client.Exists(existingPath)
	if err != nil {
		t.Fatalf("Exists(%q) error = %v", existingPath, err)
	}
	if !ok {
		t.Errorf("Exists(%q) = false, want true", existingPath)
	}
}

func TestClientExistsMissing(t *testing.T) {
	client := dialTestServer(t)

	ok, err := client.Exists("/srv/missing.txt")
	if err != nil {
		t.Fatalf("Exists(missing) error = %v", err)
	}
	if ok {
		t.Error("Exists(missing) = true, want false")
	}
}

func TestClientReadWriteWithoutScp(t *testing.T) {
	// The test server has no scp binary; both directions must fail cleanly.
	client := dialTestServer(t)

	if _, err := client.ReadFile(existingPath); err == nil {
		t.Error("ReadFile should fail without a remote scp")
	}
	if err := client.WriteFile("/srv/out.txt", []byte("x")); err == nil {
		t.Error("WriteFile should fail without a remote scp")
	}
}
