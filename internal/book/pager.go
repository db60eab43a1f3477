package book

import (
	"errors"
	"fmt"
	"iter"

	"github.com/zarlcorp/zbook/internal/contact"
)

// DefaultChunkSize is the chunk size used when listing the whole book.
const DefaultChunkSize = 10

// ErrInvalidChunkSize is returned when a chunk size is zero or negative.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Pager hands out consecutive chunks of records in insertion order. The set of
// names is fixed when the pager is created; records deleted from the book
// before their chunk is produced are skipped. Chunks hold copies of the
// records. A drained pager stays drained.
type Pager struct {
	book  *Book
	names []string
	size  int
}

// Pager returns a pager over the current records that yields chunks of at
// most size records.
func (b *Book) Pager(size int) (*Pager, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pager %d: %w", size, ErrInvalidChunkSize)
	}
	return &Pager{book: b, names: b.Names(), size: size}, nil
}

// Next returns the next chunk. It reports false once every record has been
// handed out.
func (p *Pager) Next() ([]*contact.Record, bool) {
	for len(p.names) > 0 {
		n := min(p.size, len(p.names))
		batch := p.names[:n]
		p.names = p.names[n:]

		chunk := make([]*contact.Record, 0, n)
		for _, name := range batch {
			if r, ok := p.book.records[name]; ok {
				chunk = append(chunk, r.Clone())
			}
		}
		if len(chunk) > 0 {
			return chunk, true
		}
	}
	return nil, false
}

// Remaining reports how many names have not been handed out yet.
func (p *Pager) Remaining() int { return len(p.names) }

// All drains the pager as a sequence of chunks.
func (p *Pager) All() iter.Seq[[]*contact.Record] {
	return func(yield func([]*contact.Record) bool) {
		for {
			chunk, ok := p.Next()
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}

// Chunks is shorthand for b.Pager(size) followed by All.
func (b *Book) Chunks(size int) (iter.Seq[[]*contact.Record], error) {
	p, err := b.Pager(size)
	if err != nil {
		return nil, err
	}
	return p.All(), nil
}
