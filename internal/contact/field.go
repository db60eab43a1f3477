// Package contact defines the validated fields and records of the address book.
// Every field is built through a constructor that validates its input, so a
// live Name, Phone or Birthday always holds an acceptable value.
package contact

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted birthday format.
const DateLayout = "2006-01-02"

const phoneDigits = 10

var (
	// ErrInvalidPhoneFormat is returned for anything but exactly ten decimal digits.
	ErrInvalidPhoneFormat = errors.New("invalid phone format: want 10 digits")

	// ErrInvalidDateFormat is returned when a birthday is not a real YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New("invalid date format: use YYYY-MM-DD")

	// ErrPhoneNotFound is returned by EditPhone when the old phone is absent.
	ErrPhoneNotFound = errors.New("phone not found in record")
)

// Name is a contact's name. Any string is accepted.
type Name struct {
	value string
}

// NewName wraps s. It never fails.
func NewName(s string) Name {
	return Name{value: s}
}

func (n Name) Value() string  { return n.value }
func (n Name) String() string { return n.value }

// Phone is a ten digit phone number.
type Phone struct {
	value string
}

// NewPhone validates s and returns it as a Phone.
func NewPhone(s string) (Phone, error) {
	if len(s) != phoneDigits {
		return Phone{}, fmt.Errorf("phone %q: %w", s, ErrInvalidPhoneFormat)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Phone{}, fmt.Errorf("phone %q: %w", s, ErrInvalidPhoneFormat)
		}
	}
	return Phone{value: s}, nil
}

func (p Phone) Value() string  { return p.value }
func (p Phone) String() string { return p.value }

// Birthday is a calendar date with no time component.
type Birthday struct {
	value time.Time
}

// NewBirthday parses s as YYYY-MM-DD. Impossible dates such as 2023-02-30
// are rejected.
func NewBirthday(s string) (Birthday, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Birthday{}, fmt.Errorf("birthday %q: %w", s, ErrInvalidDateFormat)
	}
	return Birthday{value: t}, nil
}

// Value returns the parsed date at midnight UTC.
func (b Birthday) Value() time.Time { return b.value }
func (b Birthday) String() string   { return b.value.Format(DateLayout) }
