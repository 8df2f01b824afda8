// Package storage provides the file access used to load and save buffers.
//
// Paths are either local filesystem paths or remote paths of the form
// scp://[user@]host[:port]/path. Router sends each path to the right
// backend.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS is the filesystem collaborator of a buffer.
type FS interface {
	// Resolve turns a user supplied path into the canonical path that is
	// stored on the buffer.
	Resolve(path string) (string, error)
	Exists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Local reads and writes files on the local disk. Relative paths are
// resolved against Dir, or the working directory when Dir is empty.
type Local struct {
	Dir string
}

var _ FS = Local{}

func (l Local) Resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if l.Dir != "" {
		return filepath.Join(l.Dir, path), nil
	}
	return filepath.Abs(path)
}

func (l Local) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (l Local) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// Router dispatches scp:// paths to Remote and everything else to Local.
type Router struct {
	Local  FS
	Remote FS
}

var _ FS = Router{}

// IsRemote reports whether path names a file on a remote host.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, Scheme+"://")
}

func (r Router) pick(path string) (FS, error) {
	if !IsRemote(path) {
		return r.Local, nil
	}
	if r.Remote == nil {
		return nil, errors.New("remote files are not available")
	}
	return r.Remote, nil
}

func (r Router) Resolve(path string) (string, error) {
	b, err := r.pick(path)
	if err != nil {
		return "", err
	}
	return b.Resolve(path)
}

func (r Router) Exists(path string) (bool, error) {
	b, err := r.pick(path)
	if err != nil {
		return false, err
	}
	return b.Exists(path)
}

func (r Router) ReadFile(path string) ([]byte, error) {
	b, err := r.pick(path)
	if err != nil {
		return nil, err
	}
	return b.ReadFile(path)
}

func (r Router) WriteFile(path string, data []byte) error {
	b, err := r.pick(path)
	if err != nil {
		return err
	}
	return b.WriteFile(path, data)
}
