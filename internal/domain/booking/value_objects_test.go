//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"salon-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, date, start, end string) booking.TimeRange {
	t.Helper()
	tr, err := booking.ParseTimeRange(date, start, end)
	require.NoError(t, err)
	return tr
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		errIs   error
	}{
		{in: "00:00", minutes: 0},
		{in: "09:30", minutes: 570},
		{in: "23:59", minutes: 1439},
		{in: "24:00", minutes: booking.MinutesPerDay},
		{in: "24:01", errIs: booking.ErrInvalidTimeOfDay},
		{in: "12:60", errIs: booking.ErrInvalidTimeOfDay},
		{in: "9:30", errIs: booking.ErrInvalidTimeOfDay},
		{in: "ab:cd", errIs: booking.ErrInvalidTimeOfDay},
		{in: "", errIs: booking.ErrInvalidTimeOfDay},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := booking.ParseTimeOfDay(tc.in)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, got.Minutes())
			assert.Equal(t, tc.in, got.String())
		})
	}
}

func TestTimeRangeValidate(t *testing.T) {
	t.Run("start before end is valid", func(t *testing.T) {
		tr := mustRange(t, "2024-01-15", "14:00", "15:00")
		assert.NoError(t, tr.Validate())
		assert.Equal(t, time.Hour, tr.Duration())
		assert.Equal(t, "2024-01-15", tr.DateString())
	})

	t.Run("start equal to end is rejected", func(t *testing.T) {
		_, err := booking.ParseTimeRange("2024-01-15", "14:00", "14:00")
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		_, err := booking.ParseTimeRange("2024-01-15", "15:00", "14:00")
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
	})

	t.Run("range may end at midnight", func(t *testing.T) {
		tr := mustRange(t, "2024-01-15", "23:00", "24:00")
		assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), tr.EndAt(time.UTC))
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := booking.ParseTimeRange("15/01/2024", "14:00", "15:00")
		assert.ErrorIs(t, err, booking.ErrInvalidDate)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		assert.ErrorIs(t, booking.TimeRange{}.Validate(), booking.ErrInvalidTimeRange)
	})

	t.Run("date is normalised to the calendar day", func(t *testing.T) {
		bangkok := time.FixedZone("ICT", 7*60*60)
		start, _ := booking.NewTimeOfDay(10, 0)
		end, _ := booking.NewTimeOfDay(11, 0)
		a, err := booking.NewTimeRange(time.Date(2024, 1, 15, 23, 30, 0, 0, bangkok), start, end)
		require.NoError(t, err)
		b := mustRange(t, "2024-01-15", "10:30", "11:30")
		assert.True(t, a.Overlaps(b))
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b [3]string
		want bool
	}{
		{name: "identical", a: [3]string{"2024-01-15", "14:00", "15:00"}, b: [3]string{"2024-01-15", "14:00", "15:00"}, want: true},
		{name: "partial overlap", a: [3]string{"2024-01-15", "14:00", "15:00"}, b: [3]string{"2024-01-15", "14:30", "15:30"}, want: true},
		{name: "containment", a: [3]string{"2024-01-15", "13:00", "17:00"}, b: [3]string{"2024-01-15", "14:00", "15:00"}, want: true},
		{name: "adjacent after", a: [3]string{"2024-01-15", "14:00", "15:00"}, b: [3]string{"2024-01-15", "15:00", "16:00"}, want: false},
		{name: "adjacent before", a: [3]string{"2024-01-15", "14:00", "15:00"}, b: [3]string{"2024-01-15", "13:00", "14:00"}, want: false},
		{name: "disjoint", a: [3]string{"2024-01-15", "09:00", "10:00"}, b: [3]string{"2024-01-15", "14:00", "15:00"}, want: false},
		{name: "one minute overlap", a: [3]string{"2024-01-15", "14:00", "15:00"}, b: [3]string{"2024-01-15", "14:59", "16:00"}, want: true},
		{name: "different dates same times", a: [3]string{"2024-01-15", "14:00", "15:00"}, b: [3]string{"2024-01-16", "14:00", "15:00"}, want: false},
		{name: "different dates full day", a: [3]string{"2024-01-15", "00:00", "24:00"}, b: [3]string{"2024-01-16", "00:00", "24:00"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := mustRange(t, tc.a[0], tc.a[1], tc.a[2])
			b := mustRange(t, tc.b[0], tc.b[1], tc.b[2])
			assert.Equal(t, tc.want, booking.Overlaps(a, b))
			assert.Equal(t, booking.Overlaps(a, b), booking.Overlaps(b, a), "overlap must be symmetric")
			assert.True(t, booking.Overlaps(a, a), "valid range overlaps itself")
		})
	}
}

func TestOverlapsExhaustive(t *testing.T) {
	// every pair of hour-aligned ranges within a working day
	var ranges []booking.TimeRange
	for s := 8; s < 20; s++ {
		for e := s + 1; e <= 20; e++ {
			start, _ := booking.NewTimeOfDay(s, 0)
			end, _ := booking.NewTimeOfDay(e, 0)
			tr, err := booking.NewTimeRange(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start, end)
			require.NoError(t, err)
			ranges = append(ranges, tr)
		}
	}
	for _, a := range ranges {
		for _, b := range ranges {
			want := a.Start() < b.End() && b.Start() < a.End()
			assert.Equal(t, want, booking.Overlaps(a, b), "%s vs %s", a, b)
			assert.Equal(t, booking.Overlaps(a, b), booking.Overlaps(b, a))
		}
	}
}

func TestMoneyAndNotes(t *testing.T) {
	_, err := booking.NewMoney(-1)
	assert.ErrorIs(t, err, booking.ErrNegativePrice)

	m, err := booking.NewMoney(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Amount())

	n, err := booking.NewNotes("  french tips  ")
	require.NoError(t, err)
	assert.Equal(t, "french tips", n.String())

	_, err = booking.NewNotes(strings.Repeat("ก", booking.MaxNotesLength))
	assert.NoError(t, err, "length counts runes, not bytes")

	_, err = booking.NewNotes(strings.Repeat("a", booking.MaxNotesLength+1))
	assert.ErrorIs(t, err, booking.ErrNotesTooLong)
}
