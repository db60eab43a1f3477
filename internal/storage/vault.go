package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
)

const (
	vaultCollection = "book"
	vaultKey        = "contacts"
)

// blob wraps the serialized book so it can live in a zstore collection.
type blob struct {
	Data []byte `json:"data"`
}

// Vault stores the book encrypted under a master password.
type Vault struct {
	store *zstore.Store
	blobs *zstore.Collection[blob]
}

// OpenVault opens or initializes an encrypted store on fsys. A wrong password
// returns zstore.ErrWrongPassword.
func OpenVault(fsys zfilesystem.ReadWriteFileFS, password []byte) (*Vault, error) {
	s, err := zstore.Open(fsys, password)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	col, err := zstore.NewCollection[blob](s, vaultCollection)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open vault: %w", err)
	}

	return &Vault{store: s, blobs: col}, nil
}

// Load decrypts the stored book. An empty vault yields an error matching
// fs.ErrNotExist.
func (v *Vault) Load() ([]byte, error) {
	b, err := v.blobs.Get(vaultKey)
	if errors.Is(err, zstore.ErrNotFound) {
		return nil, fmt.Errorf("read vault: %w", fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	return b.Data, nil
}

// Save encrypts data and replaces the stored book.
func (v *Vault) Save(data []byte) error {
	if err := v.blobs.Put(vaultKey, blob{Data: data}); err != nil {
		return fmt.Errorf("write vault: %w", err)
	}
	return nil
}

// Close releases the store and erases its key from memory.
func (v *Vault) Close() error {
	if err := v.store.Close(); err != nil {
		return fmt.Errorf("close vault: %w", err)
	}
	return nil
}
