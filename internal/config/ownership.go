package config

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FixOwnership hands path, and any directories between it and the home
// directory, to the owner of the home directory. It only acts when the
// editor runs as root in a home that belongs to someone else, as happens
// in dev containers, so the settings file stays writable by that user.
func FixOwnership(path string) {
	if os.Getuid() != 0 {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return
	}
	uid, gid, ok := owner(home)
	if !ok || uid == 0 {
		return
	}

	_ = os.Lchown(path, uid, gid)
	for dir := filepath.Dir(path); insideHome(home, dir); dir = filepath.Dir(dir) {
		dirUID, _, ok := owner(dir)
		if !ok || dirUID == uid {
			break
		}
		_ = os.Lchown(dir, uid, gid)
	}
}

func owner(path string) (uid, gid int, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}

// insideHome reports whether dir lies strictly below home.
func insideHome(home, dir string) bool {
	rel, err := filepath.Rel(home, dir)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
