package contact

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is one contact: a fixed name, an ordered list of phones and an
// optional birthday. The zero value is not usable; build records with NewRecord.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones. An empty birthday means the
// contact has none.
func NewRecord(name, birthday string) (*Record, error) {
	r := &Record{name: NewName(name)}
	if birthday != "" {
		b, err := NewBirthday(birthday)
		if err != nil {
			return nil, err
		}
		r.birthday = &b
	}
	return r, nil
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := &Record{name: r.name, phones: r.Phones()}
	if r.birthday != nil {
		b := *r.birthday
		c.birthday = &b
	}
	return c
}

// Name returns the record's name. It cannot be changed after construction.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// SetBirthday validates s and replaces the birthday. An empty s clears it.
// On a validation error the previous birthday is kept.
func (r *Record) SetBirthday(s string) error {
	if s == "" {
		r.ClearBirthday()
		return nil
	}
	b, err := NewBirthday(s)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// ClearBirthday removes the birthday.
func (r *Record) ClearBirthday() { r.birthday = nil }

// AddPhone validates phone and appends it. Duplicates are allowed.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to phone. Nothing happens if none match.
func (r *Record) RemovePhone(phone string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.String() != phone {
			kept = append(kept, p)
		}
	}
	clear(r.phones[len(kept):])
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldPhone with newPhone, keeping
// its position. The record is unchanged if oldPhone is missing or newPhone is
// invalid.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	i := r.indexPhone(oldPhone)
	if i < 0 {
		return fmt.Errorf("edit %q: %w", oldPhone, ErrPhoneNotFound)
	}
	p, err := NewPhone(newPhone)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to phone.
func (r *Record) FindPhone(phone string) (Phone, bool) {
	i := r.indexPhone(phone)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

func (r *Record) indexPhone(phone string) int {
	for i, p := range r.phones {
		if p.String() == phone {
			return i
		}
	}
	return -1
}

// DaysToBirthday returns the number of whole days from now's calendar date to
// the next occurrence of the birthday. A birthday falling on now's date gives 0.
// Feb 29 birthdays fall on Mar 1 in non-leap years.
func (r *Record) DaysToBirthday(now time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}

	bd := r.birthday.Value()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	next := time.Date(today.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	}

	return int(next.Sub(today).Hours() / 24), true
}

// String renders the record for display and substring search.
func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}

	s := fmt.Sprintf("Contact: %s, phones: %s", r.name, strings.Join(phones, "; "))
	if r.birthday != nil {
		s += ", birthday: " + r.birthday.String()
	}
	return s
}

// recordJSON is the persisted form of a Record.
type recordJSON struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

func (r *Record) MarshalJSON() ([]byte, error) {
	rj := recordJSON{
		Name:   r.name.Value(),
		Phones: make([]string, len(r.phones)),
	}
	for i, p := range r.phones {
		rj.Phones[i] = p.Value()
	}
	if r.birthday != nil {
		rj.Birthday = r.birthday.String()
	}
	return json.Marshal(rj)
}

// UnmarshalJSON decodes a record and runs every field through its
// constructor, so stored data cannot bypass validation.
func (r *Record) UnmarshalJSON(data []byte) error {
	var rj recordJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	dec, err := NewRecord(rj.Name, rj.Birthday)
	if err != nil {
		return fmt.Errorf("decode record %q: %w", rj.Name, err)
	}
	for _, p := range rj.Phones {
		if err := dec.AddPhone(p); err != nil {
			return fmt.Errorf("decode record %q: %w", rj.Name, err)
		}
	}

	*r = *dec
	return nil
}
