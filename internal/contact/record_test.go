package contact

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestRecord(t *testing.T, name, birthday string, phones ...string) *Record {
	t.Helper()
	r, err := NewRecord(name, birthday)
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			t.Fatalf("add phone %s: %v", p, err)
		}
	}
	return r
}

func phoneStrings(r *Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func assertPhones(t *testing.T, r *Record, want ...string) {
	t.Helper()
	got := phoneStrings(r)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("phones = %v, want %v", got, want)
	}
}

func TestNewRecord(t *testing.T) {
	r := newTestRecord(t, "Ann", "")
	if r.Name().Value() != "Ann" {
		t.Errorf("name = %q, want Ann", r.Name().Value())
	}
	if len(r.Phones()) != 0 {
		t.Errorf("phones = %v, want none", r.Phones())
	}
	if _, ok := r.Birthday(); ok {
		t.Error("birthday should be absent")
	}
}

func TestNewRecordWithBirthday(t *testing.T) {
	r := newTestRecord(t, "Ann", "1990-06-15")
	b, ok := r.Birthday()
	if !ok {
		t.Fatal("birthday should be set")
	}
	if b.String() != "1990-06-15" {
		t.Errorf("birthday = %s, want 1990-06-15", b)
	}
}

func TestNewRecordInvalidBirthday(t *testing.T) {
	r, err := NewRecord("Ann", "2023-02-30")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("err = %v, want ErrInvalidDateFormat", err)
	}
	if r != nil {
		t.Fatal("record should not exist on error")
	}
}

func TestAddPhoneKeepsOrderAndDuplicates(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111", "2222222222", "1111111111")
	assertPhones(t, r, "1111111111", "2222222222", "1111111111")
}

func TestAddPhoneInvalidLeavesRecord(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111")

	err := r.AddPhone("12345")
	if !errors.Is(err, ErrInvalidPhoneFormat) {
		t.Fatalf("err = %v, want ErrInvalidPhoneFormat", err)
	}
	assertPhones(t, r, "1111111111")
}

func TestPhonesReturnsCopy(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111")
	phones := r.Phones()
	phones[0] = Phone{value: "tampered"}
	assertPhones(t, r, "1111111111")
}

func TestRemovePhoneRemovesAllMatches(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111", "2222222222", "1111111111", "3333333333")

	r.RemovePhone("1111111111")
	assertPhones(t, r, "2222222222", "3333333333")
}

func TestRemovePhoneMissingIsNoop(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111")

	r.RemovePhone("9999999999")
	r.RemovePhone("not a phone")
	assertPhones(t, r, "1111111111")
}

func TestEditPhone(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1234567890")

	if err := r.EditPhone("1234567890", "0987654321"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if _, ok := r.FindPhone("0987654321"); !ok {
		t.Error("new phone not found")
	}
	if _, ok := r.FindPhone("1234567890"); ok {
		t.Error("old phone still present")
	}
}

func TestEditPhoneReplacesFirstMatchInPlace(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111", "2222222222", "2222222222", "3333333333")

	if err := r.EditPhone("2222222222", "4444444444"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	assertPhones(t, r, "1111111111", "4444444444", "2222222222", "3333333333")
}

func TestEditPhoneNotFound(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1234567890")

	err := r.EditPhone("5555555555", "0987654321")
	if !errors.Is(err, ErrPhoneNotFound) {
		t.Fatalf("err = %v, want ErrPhoneNotFound", err)
	}
	assertPhones(t, r, "1234567890")
}

func TestEditPhoneInvalidNewPhone(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1234567890")

	err := r.EditPhone("1234567890", "abc")
	if !errors.Is(err, ErrInvalidPhoneFormat) {
		t.Fatalf("err = %v, want ErrInvalidPhoneFormat", err)
	}
	assertPhones(t, r, "1234567890")
}

func TestFindPhone(t *testing.T) {
	r := newTestRecord(t, "Ann", "", "1111111111", "2222222222")

	p, ok := r.FindPhone("2222222222")
	if !ok {
		t.Fatal("phone not found")
	}
	if p.Value() != "2222222222" {
		t.Errorf("found %s, want 2222222222", p)
	}

	if _, ok := r.FindPhone("3333333333"); ok {
		t.Error("unexpected match")
	}
}

func TestSetBirthday(t *testing.T) {
	r := newTestRecord(t, "Ann", "1990-06-15")

	if err := r.SetBirthday("bad"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("err = %v, want ErrInvalidDateFormat", err)
	}
	if b, _ := r.Birthday(); b.String() != "1990-06-15" {
		t.Errorf("birthday changed to %s after failed set", b)
	}

	if err := r.SetBirthday("1991-07-16"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if b, _ := r.Birthday(); b.String() != "1991-07-16" {
		t.Errorf("birthday = %s, want 1991-07-16", b)
	}

	if err := r.SetBirthday(""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := r.Birthday(); ok {
		t.Error("birthday should be cleared")
	}

	if err := r.SetBirthday("2000-01-01"); err != nil {
		t.Fatal(err)
	}
	r.ClearBirthday()
	if _, ok := r.Birthday(); ok {
		t.Error("ClearBirthday should remove the birthday")
	}
	if _, ok := r.DaysToBirthday(time.Now()); ok {
		t.Error("no birthday means no countdown")
	}
}

func TestDaysToBirthday(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		now      time.Time
		want     int
	}{
		{"today", "2000-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0},
		{"today late in the day", "2000-03-01", time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), 0},
		{"tomorrow", "2000-03-02", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 1},
		{"yesterday rolls over leap year span", "2000-03-01", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 364},
		{"yesterday rolls over into leap year", "2000-03-01", time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC), 365},
		{"new year", "1990-01-01", time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC), 1},
		{"leap day in leap year", "2000-02-29", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 28},
		{"leap day in common year", "2000-02-29", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 28},
		{"local zone uses local date", "2000-03-01", time.Date(2024, 3, 1, 23, 0, 0, 0, time.FixedZone("x", -5*3600)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecord(t, "Ann", tt.birthday)
			got, ok := r.DaysToBirthday(tt.now)
			if !ok {
				t.Fatal("expected a result")
			}
			if got != tt.want {
				t.Errorf("DaysToBirthday = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysToBirthdayNoBirthday(t *testing.T) {
	r := newTestRecord(t, "Ann", "")
	if _, ok := r.DaysToBirthday(time.Now()); ok {
		t.Error("expected no result without a birthday")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
		want string
	}{
		{
			name: "phones and birthday",
			rec:  newTestRecord(t, "Ann", "1990-06-15", "1111111111", "2222222222"),
			want: "Contact: Ann, phones: 1111111111; 2222222222, birthday: 1990-06-15",
		},
		{
			name: "no phones",
			rec:  newTestRecord(t, "Bob", ""),
			want: "Contact: Bob, phones: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := newTestRecord(t, "Ann", "1990-06-15", "2222222222", "1111111111", "2222222222")

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.String() != want.String() {
		t.Errorf("round trip = %q, want %q", got.String(), want.String())
	}
}

func TestJSONOmitsMissingBirthday(t *testing.T) {
	data, err := json.Marshal(newTestRecord(t, "Ann", "", "1111111111"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "birthday") {
		t.Errorf("json %s should not contain birthday", data)
	}
}

func TestUnmarshalRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bad phone", `{"name":"Ann","phones":["123"]}`, ErrInvalidPhoneFormat},
		{"bad birthday", `{"name":"Ann","phones":[],"birthday":"2023-02-30"}`, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.data), &r)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
