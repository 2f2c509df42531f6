package helpers

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	DateLayout      = "Jan 02, 2006"
	DateTimeLayout  = "Jan 02, 2006 03:04 PM"
	TimeLayout      = "03:04 PM"
	InputLayout     = "2006-01-02T15:04"
	FriendlyLayout  = "Monday, Jan 02"
	MonthDayLayout  = "Jan 2"
	LongMonthLayout = "January"
)

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// FormatDateForInput renders t for a datetime-local input.
func FormatDateForInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(InputLayout)
}

// ZoneFromOffset turns a browser timezone offset (minutes behind UTC, as
// Date.getTimezoneOffset reports it) into a fixed zone.
func ZoneFromOffset(v string) (*time.Location, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < -14*60 || n > 12*60 {
		return nil, false
	}
	return time.FixedZone("", -n*60), true
}

// InZone reads the wall clock of t as a time in loc.
func InZone(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() || loc == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// RelativeTime is "3 days ago" or "2 hours from now" measured from now.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FriendlyDate is Today, Tomorrow or a weekday date.
func FriendlyDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	switch {
	case SameDay(t, now):
		return "Today"
	case SameDay(t, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return t.Format(FriendlyLayout)
}

func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (c Countdown) Done() bool {
	return c == Countdown{}
}

func CountdownTo(t, now time.Time) Countdown {
	d := t.Sub(now)
	if t.IsZero() || d <= 0 {
		return Countdown{}
	}
	secs := int(d.Seconds())
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}
