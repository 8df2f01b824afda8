package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Local
// ---------------------------------------------------------------------------

func TestLocalResolve(t *testing.T) {
	l := Local{Dir: "/work"}
	tests := []struct {
		in, want string
	}{
		{"/abs/../abs/file.txt", "/abs/file.txt"},
		{"rel.txt", "/work/rel.txt"},
		{"sub/../x.txt", "/work/x.txt"},
	}
	for _, tt := range tests {
		got, err := l.Resolve(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestLocalResolveWorkingDir(t *testing.T) {
	got, err := Local{}.Resolve("file.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Resolve() = %q, want absolute path", got)
	}
}

func TestLocalResolveEmpty(t *testing.T) {
	if _, err := (Local{}).Resolve(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLocalReadWriteExists(t *testing.T) {
	l := Local{}
	path := filepath.Join(t.TempDir(), "f.txt")

	ok, err := l.Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists() before write = %v, %v", ok, err)
	}
	if err := l.WriteFile(path, []byte("data")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	ok, err = l.Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists() after write = %v, %v", ok, err)
	}
	data, err := l.ReadFile(path)
	if err != nil || string(data) != "data" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o600 != 0o600 {
		t.Errorf("file perm = %o, want owner read/write", perm)
	}
}

// ---------------------------------------------------------------------------
// Router
// ---------------------------------------------------------------------------

// memFS records which backend served a call.
type memFS struct {
	name  string
	files map[string][]byte
}

func newMemFS(name string) *memFS { return &memFS{name: name, files: map[string][]byte{}} }

func (m *memFS) Resolve(path string) (string, error) { return m.name + ":" + path, nil }
func (m *memFS) Exists(path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}
func (m *memFS) ReadFile(path string) ([]byte, error) { return m.files[path], nil }
func (m *memFS) WriteFile(path string, data []byte) error {
	m.files[path] = data
	return nil
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"scp://host/etc/hosts", true},
		{"/etc/hosts", false},
		{"scp:/host", false},
		{"relative/scp://x", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.path); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRouterDispatch(t *testing.T) {
	local, remote := newMemFS("local"), newMemFS("remote")
	r := Router{Local: local, Remote: remote}

	if got, _ := r.Resolve("/a"); got != "local:/a" {
		t.Errorf("Resolve(local) = %q", got)
	}
	if got, _ := r.Resolve("scp://h/a"); got != "remote:scp://h/a" {
		t.Errorf("Resolve(remote) = %q", got)
	}

	if err := r.WriteFile("scp://h/a", []byte("r")); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteFile("/a", []byte("l")); err != nil {
		t.Fatal(err)
	}
	if string(remote.files["scp://h/a"]) != "r" || string(local.files["/a"]) != "l" {
		t.Errorf("writes went to the wrong backend: local=%v remote=%v", local.files, remote.files)
	}
	if ok, _ := r.Exists("scp://h/a"); !ok {
		t.Error("Exists(remote) = false")
	}
	if data, _ := r.ReadFile("/a"); string(data) != "l" {
		t.Errorf("ReadFile(local) = %q", data)
	}
}

func TestRouterWithoutRemote(t *testing.T) {
	r := Router{Local: newMemFS("local")}
	_, err := r.ReadFile("scp://h/a")
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("ReadFile() error = %v, want not available", err)
	}
	if _, err := r.Resolve("scp://h/a"); err == nil {
		t.Error("Resolve() should fail without a remote backend")
	}
}
