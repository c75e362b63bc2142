package fs

import (
	"io/fs"
	"os"

	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// FS wraps the filesystem operations used by the daemon.
type FS interface {
	UserHomeDir() (string, error)
	Getwd() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	DirExists(path string) (bool, error)
	FileExists(path string) (bool, error)
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	TempFile(dir, pattern string) (*os.File, error)
	Chmod(name string, mode os.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

type fsImpl struct{}

// New creates a new FS backed by the os package.
func New() FS {
	return fsImpl{}
}

// UserHomeDir returns the current user's home directory.
func (fsImpl) UserHomeDir() (string, error) { return os.UserHomeDir() }

// Getwd returns the working directory of the process.
func (fsImpl) Getwd() (string, error) { return os.Getwd() }

// MkdirAll creates a directory and all its parents.
func (fsImpl) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// ReadDir reads all the items in a directory (non-recursive)
func (fsImpl) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (fsImpl) DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (fsImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (fsImpl) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fsImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fsImpl) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (fsImpl) TempFile(dir, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

func (fsImpl) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (fsImpl) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (fsImpl) Remove(name string) error {
	return os.Remove(name)
}
