package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinutesPerDay   = 24 * 60
	DateLayout      = "2006-01-02"
	MaxNotesLength  = 1000
	timeOfDayLayout = "%02d:%02d"
)

// TimeOfDay is a wall-clock time in minutes since midnight. 24:00 is allowed as an end bound.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	t := TimeOfDay(hour*60 + minute)
	if !t.IsValid() {
		return 0, ErrInvalidTimeOfDay
	}
	return t, nil
}

// ParseTimeOfDay accepts "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, ErrInvalidTimeOfDay
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func TimeOfDayFromDuration(d time.Duration) (TimeOfDay, error) {
	if d%time.Minute != 0 {
		return 0, ErrInvalidTimeOfDay
	}
	t := TimeOfDay(d / time.Minute)
	if !t.IsValid() {
		return 0, ErrInvalidTimeOfDay
	}
	return t, nil
}

func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t <= MinutesPerDay
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Duration is the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf(timeOfDayLayout, int(t)/60, int(t)%60)
}

// TimeRange is the half-open interval [start, end) on a single calendar date.
type TimeRange struct {
	date  time.Time
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeRange(date time.Time, start, end TimeOfDay) (TimeRange, error) {
	tr := TimeRange{
		date:  normalizeDate(date),
		start: start,
		end:   end,
	}
	if err := tr.Validate(); err != nil {
		return TimeRange{}, err
	}
	return tr, nil
}

// ParseTimeRange builds a range from "YYYY-MM-DD" and two "HH:MM" values.
func ParseTimeRange(date, start, end string) (TimeRange, error) {
	d, err := ParseDate(date)
	if err != nil {
		return TimeRange{}, err
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeRange{}, err
	}
	return NewTimeRange(d, s, e)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (r TimeRange) Validate() error {
	if r.date.IsZero() || !r.start.IsValid() || !r.end.IsValid() || r.start >= r.end {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether both ranges share at least one minute on the same date.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return Overlaps(r, other)
}

func Overlaps(a, b TimeRange) bool {
	return a.date.Equal(b.date) && a.start < b.end && b.start < a.end
}

func (r TimeRange) Date() time.Time {
	return r.date
}

func (r TimeRange) DateString() string {
	return r.date.Format(DateLayout)
}

func (r TimeRange) Start() TimeOfDay {
	return r.start
}

func (r TimeRange) End() TimeOfDay {
	return r.end
}

func (r TimeRange) Duration() time.Duration {
	return (r.end - r.start).Duration()
}

// StartAt resolves the range start to an instant in the business time zone.
func (r TimeRange) StartAt(loc *time.Location) time.Time {
	return r.instant(r.start, loc)
}

func (r TimeRange) EndAt(loc *time.Location) time.Time {
	return r.instant(r.end, loc)
}

func (r TimeRange) instant(t TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := r.date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(t.Duration())
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s [%s,%s)", r.DateString(), r.start, r.end)
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money is an amount in minor currency units.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{amount: amount}, nil
}

func (m Money) Amount() int64 {
	return m.amount
}

type Notes struct {
	value string
}

func NewNotes(s string) (Notes, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: s}, nil
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}
