// Package fs provides filesystem utilities for rolesmanifest.
// All disk access goes through the FS interface so commands can be tested with stubs.
package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// FS is the filesystem surface used by rolesmanifest.
type FS interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]iofs.DirEntry, error)
	Stat(path string) (iofs.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(path string) error
	Chmod(path string, perm os.FileMode) error
	CreateTemp(dir, pattern string) (string, io.WriteCloser, error)
}

// RealFS implements FS on top of package os.
type RealFS struct{}

// NewRealFS returns the os-backed filesystem.
func NewRealFS() *RealFS {
	return &RealFS{}
}

func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (RealFS) ReadDir(path string) ([]iofs.DirEntry, error) {
	return os.ReadDir(path)
}

func (RealFS) Stat(path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

func (RealFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (RealFS) Remove(path string) error {
	return os.Remove(path)
}

func (RealFS) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

// CreateTemp creates a temp file in dir and returns its path and an open handle.
func (RealFS) CreateTemp(dir, pattern string) (string, io.WriteCloser, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}

// WriteFileAtomic writes data to path via a temp file in the same directory and a rename.
// On any failure the temp file is removed and the previous content of path is untouched.
func WriteFileAtomic(fsys FS, path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmpPath, w, err := fsys.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err = w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	if s, ok := w.(interface{ Sync() error }); ok {
		if err = s.Sync(); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err = w.Close(); err != nil {
		return err
	}
	if err = fsys.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return fsys.Rename(tmpPath, path)
}
