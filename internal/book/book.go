// Package book implements the address book: an insertion-ordered collection of
// contact records keyed by name and persisted through a Provider after every
// mutation.
package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/zarlcorp/zbook/internal/contact"
)

const formatVersion = 1

var (
	// ErrPersistence wraps any provider or codec failure other than missing data.
	ErrPersistence = errors.New("persistence error")

	// ErrNotFound is returned when a named record does not exist.
	ErrNotFound = errors.New("contact not found")

	// ErrInvalidName is returned for names that are not valid UTF-8. The JSON
	// document cannot hold them without rewriting bytes.
	ErrInvalidName = errors.New("name is not valid UTF-8")
)

// Provider loads and saves the serialized book as a single blob.
// Load must return an error matching fs.ErrNotExist when nothing has been saved.
type Provider interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Book is the keyed record collection. It is not safe for concurrent use.
type Book struct {
	provider Provider
	names    []string
	records  map[string]*contact.Record
}

// document is the on-disk layout. Records are stored as a list so that
// insertion order survives a round trip.
type document struct {
	Version  int               `json:"version"`
	Contacts []*contact.Record `json:"contacts"`
}

// Open creates a book backed by p and loads whatever p holds. Missing data
// gives an empty book.
func Open(p Provider) (*Book, error) {
	b := &Book{
		provider: p,
		records:  make(map[string]*contact.Record),
	}
	if err := b.Load(); err != nil {
		return nil, err
	}
	return b, nil
}

// Add inserts a copy of r under its name, replacing any record with the same
// name, then saves. If the save fails the book is restored to its previous
// state.
func (b *Book) Add(r *contact.Record) error {
	name := r.Name().Value()
	if !utf8.ValidString(name) {
		return fmt.Errorf("add %q: %w", name, ErrInvalidName)
	}
	prev, existed := b.records[name]

	r = r.Clone()

	b.records[name] = r
	if !existed {
		b.names = append(b.names, name)
	}

	if err := b.Save(); err != nil {
		if existed {
			b.records[name] = prev
		} else {
			b.remove(name)
		}
		return fmt.Errorf("add %q: %w", name, err)
	}
	return nil
}

// Find returns a copy of the record stored under name. Changes to the copy
// are not stored; use Update.
func (b *Book) Find(name string) (*contact.Record, bool) {
	r, ok := b.records[name]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Delete removes the record stored under name. Deleting a missing name is a
// no-op and does not touch storage.
func (b *Book) Delete(name string) error {
	r, ok := b.records[name]
	if !ok {
		return nil
	}

	idx := slices.Index(b.names, name)
	b.remove(name)

	if err := b.Save(); err != nil {
		b.records[name] = r
		b.names = slices.Insert(b.names, idx, name)
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

// Update applies fn to a copy of the record stored under name and, if fn
// succeeds, stores the copy and saves. A failing fn or save leaves the book
// unchanged.
func (b *Book) Update(name string, fn func(*contact.Record) error) error {
	prev, ok := b.records[name]
	if !ok {
		return fmt.Errorf("update %q: %w", name, ErrNotFound)
	}

	next := prev.Clone()
	if err := fn(next); err != nil {
		return err
	}

	b.records[name] = next
	if err := b.Save(); err != nil {
		b.records[name] = prev
		return fmt.Errorf("update %q: %w", name, err)
	}
	return nil
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.names) }

// Names returns the record names in insertion order.
func (b *Book) Names() []string { return slices.Clone(b.names) }

// Search returns the records whose rendered form, or any rendered phone,
// contains term. Results are copies in insertion order.
func (b *Book) Search(term string) []*contact.Record {
	var found []*contact.Record
	for _, name := range b.names {
		r := b.records[name]
		if matches(r, term) {
			found = append(found, r.Clone())
		}
	}
	return found
}

func matches(r *contact.Record, term string) bool {
	if strings.Contains(r.String(), term) {
		return true
	}
	for _, p := range r.Phones() {
		if strings.Contains(p.String(), term) {
			return true
		}
	}
	return false
}

// Save writes the whole book through the provider, replacing prior content.
func (b *Book) Save() error {
	doc := document{
		Version:  formatVersion,
		Contacts: make([]*contact.Record, 0, len(b.names)),
	}
	for _, name := range b.names {
		doc.Contacts = append(doc.Contacts, b.records[name])
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save book: marshal: %w: %w", ErrPersistence, err)
	}

	if err := b.provider.Save(data); err != nil {
		return fmt.Errorf("save book: %w: %w", ErrPersistence, err)
	}

	slog.Debug("book saved", "contacts", len(b.names))
	return nil
}

// Load replaces the in-memory book with the provider's content. Missing data
// empties the book without error. On any other failure the book is unchanged.
func (b *Book) Load() error {
	data, err := b.provider.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.names = nil
			b.records = make(map[string]*contact.Record)
			slog.Debug("book empty", "reason", "no saved data")
			return nil
		}
		return fmt.Errorf("load book: %w: %w", ErrPersistence, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("load book: unmarshal: %w: %w", ErrPersistence, err)
	}
	if doc.Version != formatVersion {
		return fmt.Errorf("load book: unsupported version %d: %w", doc.Version, ErrPersistence)
	}

	names := make([]string, 0, len(doc.Contacts))
	records := make(map[string]*contact.Record, len(doc.Contacts))
	for _, r := range doc.Contacts {
		if r == nil {
			continue
		}
		name := r.Name().Value()
		if _, dup := records[name]; !dup {
			names = append(names, name)
		}
		records[name] = r
	}

	b.names = names
	b.records = records
	slog.Debug("book loaded", "contacts", len(names))
	return nil
}

func (b *Book) remove(name string) {
	delete(b.records, name)
	if i := slices.Index(b.names, name); i >= 0 {
		b.names = slices.Delete(b.names, i, i+1)
	}
}
