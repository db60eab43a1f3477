package book

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func addNames(t *testing.T, b *Book, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := b.Add(newRecord(t, name, "")); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
}

func chunkNames(t *testing.T, b *Book, size int) [][]string {
	t.Helper()
	seq, err := b.Chunks(size)
	if err != nil {
		t.Fatalf("chunks: %v", err)
	}
	var out [][]string
	for chunk := range seq {
		var names []string
		for _, r := range chunk {
			names = append(names, r.Name().Value())
		}
		out = append(out, names)
	}
	return out
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		size  int
		want  [][]string
	}{
		{"two then one", []string{"A", "B", "C"}, 2, [][]string{{"A", "B"}, {"C"}}},
		{"exact fit", []string{"A", "B", "C", "D"}, 2, [][]string{{"A", "B"}, {"C", "D"}}},
		{"size larger than book", []string{"A", "B"}, 10, [][]string{{"A", "B"}}},
		{"size one", []string{"A", "B"}, 1, [][]string{{"A"}, {"B"}}},
		{"empty book", nil, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := openTestBook(t)
			addNames(t, b, tt.names...)

			got := chunkNames(t, b, tt.size)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("chunks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChunksInvalidSize(t *testing.T) {
	b, _ := openTestBook(t)
	addNames(t, b, "A")

	for _, size := range []int{0, -1} {
		if _, err := b.Chunks(size); !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("Chunks(%d) err = %v, want ErrInvalidChunkSize", size, err)
		}
		if _, err := b.Pager(size); !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("Pager(%d) err = %v, want ErrInvalidChunkSize", size, err)
		}
	}
}

func TestPagerNotRestartable(t *testing.T) {
	b, _ := openTestBook(t)
	addNames(t, b, "A", "B", "C")

	seq, err := b.Chunks(2)
	if err != nil {
		t.Fatalf("chunks: %v", err)
	}

	count := 0
	for range seq {
		count++
	}
	if count != 2 {
		t.Fatalf("first pass chunks = %d, want 2", count)
	}

	for range seq {
		t.Fatal("second pass should yield nothing")
	}
}

func TestPagerIsLazy(t *testing.T) {
	b, _ := openTestBook(t)
	addNames(t, b, "A", "B", "C", "D")

	p, err := b.Pager(2)
	if err != nil {
		t.Fatalf("pager: %v", err)
	}

	first, ok := p.Next()
	if !ok || len(first) != 2 {
		t.Fatalf("first chunk = %v, %v", first, ok)
	}
	if p.Remaining() != 2 {
		t.Errorf("remaining = %d, want 2", p.Remaining())
	}

	// records removed before their chunk is reached are skipped
	if err := b.Delete("C"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// records added after the pager was created are not visited
	addNames(t, b, "E")

	second, ok := p.Next()
	if !ok {
		t.Fatal("expected a second chunk")
	}
	if len(second) != 1 || second[0].Name().Value() != "D" {
		t.Errorf("second chunk = %v, want [D]", second)
	}

	if _, ok := p.Next(); ok {
		t.Error("pager should be drained")
	}
}

func TestPagerEarlyBreak(t *testing.T) {
	b, _ := openTestBook(t)
	addNames(t, b, "A", "B", "C")

	p, err := b.Pager(1)
	if err != nil {
		t.Fatalf("pager: %v", err)
	}
	for range p.All() {
		break
	}

	chunk, ok := p.Next()
	if !ok || chunk[0].Name().Value() != "B" {
		t.Errorf("after break next = %v, %v, want [B]", chunk, ok)
	}
}

func TestUpcoming(t *testing.T) {
	b, _ := openTestBook(t)
	for _, r := range []struct{ name, bd string }{
		{"far", "1990-12-01"},
		{"today", "1985-03-10"},
		{"none", ""},
		{"soon", "2001-03-12"},
		{"also soon", "1970-03-12"},
		{"passed", "1999-03-09"},
	} {
		if err := b.Add(newRecord(t, r.name, r.bd)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	var got []string
	var days []int
	for _, u := range b.Upcoming(now, 7) {
		got = append(got, u.Record.Name().Value())
		days = append(days, u.Days)
	}

	if diff := cmp.Diff([]string{"today", "soon", "also soon"}, got); diff != "" {
		t.Errorf("upcoming mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2, 2}, days); diff != "" {
		t.Errorf("days mismatch (-want +got):\n%s", diff)
	}
}

func TestUpcomingWhen(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "today"},
		{1, "tomorrow"},
		{5, "in 5 days"},
	}
	for _, tt := range tests {
		if got := (Upcoming{Days: tt.days}).When(); got != tt.want {
			t.Errorf("When() with %d days = %q, want %q", tt.days, got, tt.want)
		}
	}
}
