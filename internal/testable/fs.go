// Package testable provides a small seam over the file system operations
// the CLI performs, so commands can be tested without touching the real
// file system.
package testable

import "os"

// FileSystem covers the file operations CLI commands perform: probing a
// path before writing, creating report output files, and writing the
// starter config. The production implementation (OsFileSystem) delegates
// to the standard library.
type FileSystem interface {
	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// Create creates or truncates the named file.
	Create(name string) (*os.File, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// OsFileSystem is the production FileSystem backed by package os.
type OsFileSystem struct{}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Create wraps os.Create.
func (OsFileSystem) Create(name string) (*os.File, error) {
	return os.Create(name) //nolint:gosec // caller controls path
}

// WriteFile wraps os.WriteFile.
func (OsFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm) //nolint:gosec // caller controls path and perms
}

// DefaultFS is the FileSystem commands use when no mock is injected.
var DefaultFS FileSystem = OsFileSystem{}
