// Package storage provides the persistence backends for the address book.
// Each backend stores the serialized book as one blob: File keeps it as plain
// JSON on a filesystem, Vault keeps it encrypted in a zstore.
package storage

import (
	"fmt"
	"path"

	"github.com/zarlcorp/core/pkg/zfilesystem"
)

// File stores the book as a single file on fsys.
type File struct {
	fs   zfilesystem.ReadWriteFileFS
	name string
}

// NewFile returns a provider for the file called name on fsys. name uses
// forward slashes and is relative to the root of fsys.
func NewFile(fsys zfilesystem.ReadWriteFileFS, name string) *File {
	return &File{fs: fsys, name: name}
}

// Name returns the file name the provider reads and writes.
func (f *File) Name() string { return f.name }

// Load reads the whole file. A missing file yields an error matching
// fs.ErrNotExist.
func (f *File) Load() ([]byte, error) {
	data, err := f.fs.ReadFile(f.name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.name, err)
	}
	return data, nil
}

// Save replaces the file content with data.
func (f *File) Save(data []byte) error {
	if dir := path.Dir(f.name); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := f.fs.WriteFile(f.name, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}
	return nil
}
