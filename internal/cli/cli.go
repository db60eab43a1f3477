// Package cli implements zbook's command-line subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zbook/internal/book"
	"github.com/zarlcorp/zbook/internal/config"
	"github.com/zarlcorp/zbook/internal/storage"
	"golang.org/x/term"
)

// DataDir returns the default data directory for zbook.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zbook"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zbook"
	}
	return home + "/.local/share/zbook"
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the encrypted vault has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// Opener opens the address book described by a config inside a data dir.
type Opener struct {
	Dir    string
	Config *config.Config
}

// Encrypted reports whether opening requires a master password.
func (o Opener) Encrypted() bool { return o.Config.Storage.Encrypt }

// FirstRun reports whether an encrypted book would be created from scratch.
func (o Opener) FirstRun() bool { return o.Encrypted() && IsFirstRun(o.Dir) }

// Location describes where the book lives, for messages.
func (o Opener) Location() string {
	if o.Encrypted() {
		return o.Dir + " (encrypted)"
	}
	return filepath.Join(o.Dir, o.Config.Storage.File)
}

// Open opens the book. password is ignored for plain storage and erased after
// use for encrypted storage. The returned close func releases the storage.
func (o Opener) Open(password []byte) (*book.Book, func() error, error) {
	if err := os.MkdirAll(o.Dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(o.Dir)
	return openOn(fsys, o.Config, password)
}

func openOn(fsys zfilesystem.ReadWriteFileFS, cfg *config.Config, password []byte) (*book.Book, func() error, error) {
	if !cfg.Storage.Encrypt {
		b, err := book.Open(storage.NewFile(fsys, cfg.Storage.File))
		if err != nil {
			return nil, nil, err
		}
		return b, func() error { return nil }, nil
	}

	v, err := storage.OpenVault(fsys, password)
	zcrypto.Erase(password)
	if err != nil {
		return nil, nil, err
	}

	b, err := book.Open(v)
	if err != nil {
		v.Close()
		return nil, nil, err
	}
	return b, v.Close, nil
}

// OpenPrompt opens the book, prompting on w for a password when the book is
// encrypted.
func OpenPrompt(o Opener, w io.Writer) (*book.Book, func() error, error) {
	if !o.Encrypted() {
		return o.Open(nil)
	}

	var pass string
	var err error
	if o.FirstRun() {
		pass, err = ReadNewPassword(w)
	} else {
		pass, err = ReadPassword("master password: ", w)
	}
	if err != nil {
		return nil, nil, err
	}
	return o.Open([]byte(pass))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
