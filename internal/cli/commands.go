package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/zarlcorp/zbook/internal/book"
	"github.com/zarlcorp/zbook/internal/contact"
)

// Add stores a new contact, replacing any contact with the same name.
func Add(w io.Writer, b *book.Book, name string, phones []string, birthday string) error {
	r, err := contact.NewRecord(name, birthday)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			return fmt.Errorf("add: %w", err)
		}
	}

	_, replaced := b.Find(name)
	if err := b.Add(r); err != nil {
		return err
	}

	if replaced {
		fmt.Fprintf(w, "replaced %s\n", name)
	} else {
		fmt.Fprintf(w, "added %s\n", name)
	}
	return nil
}

// Find prints every contact whose summary or phones contain term.
func Find(w io.Writer, b *book.Book, term string, asJSON bool) error {
	found := b.Search(term)

	if asJSON {
		if found == nil {
			found = []*contact.Record{}
		}
		return printJSON(w, found)
	}

	if len(found) == 0 {
		fmt.Fprintln(w, "no contacts found")
		return nil
	}
	for _, r := range found {
		fmt.Fprintln(w, r)
	}
	return nil
}

// Delete removes a contact by exact name.
func Delete(w io.Writer, b *book.Book, name string) error {
	if _, ok := b.Find(name); !ok {
		fmt.Fprintf(w, "no contact named %q\n", name)
		return nil
	}
	if err := b.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "deleted %s\n", name)
	return nil
}

// List prints the whole book chunk by chunk.
func List(w io.Writer, b *book.Book, chunkSize int, asJSON bool) error {
	chunks, err := b.Chunks(chunkSize)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	if asJSON {
		all := make([]*contact.Record, 0, b.Len())
		for chunk := range chunks {
			all = append(all, chunk...)
		}
		return printJSON(w, all)
	}

	if b.Len() == 0 {
		fmt.Fprintln(w, "no saved contacts")
		return nil
	}

	page := 0
	for chunk := range chunks {
		if page > 0 {
			fmt.Fprintln(w)
		}
		page++
		for _, r := range chunk {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
	return nil
}

// AddPhone appends a phone to an existing contact.
func AddPhone(w io.Writer, b *book.Book, name, phone string) error {
	err := b.Update(name, func(r *contact.Record) error {
		return r.AddPhone(phone)
	})
	if err != nil {
		return fmt.Errorf("phone add: %w", err)
	}
	fmt.Fprintf(w, "added %s to %s\n", phone, name)
	return nil
}

// RemovePhone removes every copy of a phone from a contact.
func RemovePhone(w io.Writer, b *book.Book, name, phone string) error {
	err := b.Update(name, func(r *contact.Record) error {
		r.RemovePhone(phone)
		return nil
	})
	if err != nil {
		return fmt.Errorf("phone remove: %w", err)
	}
	fmt.Fprintf(w, "removed %s from %s\n", phone, name)
	return nil
}

// EditPhone replaces a contact's phone in place.
func EditPhone(w io.Writer, b *book.Book, name, oldPhone, newPhone string) error {
	err := b.Update(name, func(r *contact.Record) error {
		return r.EditPhone(oldPhone, newPhone)
	})
	if err != nil {
		return fmt.Errorf("phone edit: %w", err)
	}
	fmt.Fprintf(w, "changed %s to %s for %s\n", oldPhone, newPhone, name)
	return nil
}

// SetBirthday sets or, with an empty date, clears a contact's birthday.
func SetBirthday(w io.Writer, b *book.Book, name, date string) error {
	err := b.Update(name, func(r *contact.Record) error {
		return r.SetBirthday(date)
	})
	if err != nil {
		return fmt.Errorf("birthday: %w", err)
	}
	if date == "" {
		fmt.Fprintf(w, "cleared birthday for %s\n", name)
	} else {
		fmt.Fprintf(w, "set birthday %s for %s\n", date, name)
	}
	return nil
}

// Birthdays prints contacts with a birthday in the next window days.
func Birthdays(w io.Writer, b *book.Book, now time.Time, window int) error {
	if window < 0 {
		return fmt.Errorf("birthdays: window must be non-negative, got %d", window)
	}

	upcoming := b.Upcoming(now, window)
	if len(upcoming) == 0 {
		fmt.Fprintf(w, "no birthdays in the next %d days\n", window)
		return nil
	}

	for _, u := range upcoming {
		bd, _ := u.Record.Birthday()
		fmt.Fprintf(w, "  %-20s %s  %s\n", u.Record.Name(), bd, u.When())
	}
	return nil
}
