package aggregation

import (
	"fmt"
	"time"
)

// Window is a closed interval of wall-clock time.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
}

// DayWindow spans date 00:00:00 through 23:59:59.
func DayWindow(date time.Time, loc *time.Location) Window {
	return Window{Start: startOfDay(date, loc), End: endOfDay(date, loc)}
}

// WeekWindow spans the Monday on or before date through the following Sunday 23:59:59.
func WeekWindow(date time.Time, loc *time.Location) Window {
	start := startOfDay(date, loc)
	start = start.AddDate(0, 0, -weekdayIndex(start))
	return Window{Start: start, End: endOfDay(start.AddDate(0, 0, 6), loc)}
}

// MonthWindow spans the first of the month through its last second, found by
// stepping back one second from the first of the next month.
func MonthWindow(date time.Time, loc *time.Location) Window {
	date = date.In(loc)
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	next := start.AddDate(0, 1, 0)
	return Window{Start: start, End: next.Add(-time.Second)}
}

// MonthSlices cuts a month into consecutive 7-day windows starting on day 1.
// The last window is clipped to the month end.
func MonthSlices(month Window, loc *time.Location) []Window {
	var slices []Window
	for start := month.Start; start.Before(month.End); start = start.AddDate(0, 0, 7) {
		end := endOfDay(start.AddDate(0, 0, 6), loc)
		if end.After(month.End) {
			end = month.End
		}
		slices = append(slices, Window{Start: start, End: end})
	}
	return slices
}

// weekdayIndex numbers days Monday=0 .. Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekLabel formats t as YYYY-Www where ww is the week of the year counting
// Sundays as the first day of the week; days before the first Sunday are week 00.
func WeekLabel(t time.Time) string {
	yday := t.YearDay() - 1
	week := (yday + 7 - int(t.Weekday())) / 7
	return fmt.Sprintf("%04d-W%02d", t.Year(), week)
}
