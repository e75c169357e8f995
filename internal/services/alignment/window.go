package alignment

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the calendar-day format used in requests and day records.
const DayLayout = "2006-01-02"

// DayWindow is one calendar day in the service's fixed offset, expressed as
// the half-open UTC interval [Start, End).
type DayWindow struct {
	Date  string
	Start time.Time
	End   time.Time

	zone *time.Location
}

// WeekRange is the Sunday..Saturday week around a day. End is the following
// Sunday so it can be used as an exclusive bound.
type WeekRange struct {
	Start    string
	End      string
	Saturday string
}

func fixedZone(offset time.Duration) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+03d:%02d", int(offset.Hours()), absInt(int(offset.Minutes())%60)), int(offset.Seconds()))
}

// ResolveDay normalizes a user supplied date into a day window. An empty input
// means the day containing now; otherwise the input must be a YYYY-MM-DD
// calendar date or an RFC3339 instant.
func ResolveDay(input string, now time.Time, offset time.Duration) (DayWindow, error) {
	zone := fixedZone(offset)
	input = strings.TrimSpace(input)

	if input == "" {
		return windowAt(now.In(zone)), nil
	}
	if day, err := time.ParseInLocation(DayLayout, input, zone); err == nil {
		return windowAt(day), nil
	}
	if instant, err := time.Parse(time.RFC3339, input); err == nil {
		return windowAt(instant.In(zone)), nil
	}
	return DayWindow{}, fmt.Errorf("%w: %q (use YYYY-MM-DD or RFC3339)", ErrInvalidDate, input)
}

func windowAt(local time.Time) DayWindow {
	zone := local.Location()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
	end := start.AddDate(0, 0, 1)
	return DayWindow{
		Date:  start.Format(DayLayout),
		Start: start.UTC(),
		End:   end.UTC(),
		zone:  zone,
	}
}

func (w DayWindow) local() time.Time {
	zone := w.zone
	if zone == nil {
		zone = time.UTC
	}
	return w.Start.In(zone)
}

// Contains reports whether t falls inside [Start, End).
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Previous returns the window of the calendar day before w.
func (w DayWindow) Previous() DayWindow {
	return windowAt(w.local().AddDate(0, 0, -1))
}

// Week returns the Sunday..Saturday week containing w.
func (w DayWindow) Week() WeekRange {
	local := w.local()
	sunday := local.AddDate(0, 0, -int(local.Weekday()))
	return WeekRange{
		Start:    sunday.Format(DayLayout),
		End:      sunday.AddDate(0, 0, 7).Format(DayLayout),
		Saturday: sunday.AddDate(0, 0, 6).Format(DayLayout),
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
