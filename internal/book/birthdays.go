package book

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/zarlcorp/zbook/internal/contact"
)

// Upcoming pairs a record with the days left until its birthday.
type Upcoming struct {
	Record *contact.Record
	Days   int
}

// When describes the countdown: "today", "tomorrow" or "in N days".
func (u Upcoming) When() string {
	switch u.Days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", u.Days)
}

// Upcoming returns the records whose next birthday is at most window days
// after now, soonest first. Ties keep insertion order.
func (b *Book) Upcoming(now time.Time, window int) []Upcoming {
	var out []Upcoming
	for _, name := range b.names {
		r := b.records[name]
		days, ok := r.DaysToBirthday(now)
		if !ok || days > window {
			continue
		}
		out = append(out, Upcoming{Record: r.Clone(), Days: days})
	}

	slices.SortStableFunc(out, func(a, b Upcoming) int {
		return cmp.Compare(a.Days, b.Days)
	})
	return out
}
