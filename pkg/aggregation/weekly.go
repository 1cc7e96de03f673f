package aggregation

import (
	"time"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeeklyResourceCounts counts terminal events per category for the Monday-based
// week containing date, with one breakdown entry for every day of that week.
func (e *Engine) WeeklyResourceCounts(date time.Time, events []domain.Event) domain.WeeklyView {
	window := WeekWindow(date, e.loc)
	view := domain.WeeklyView{
		WeekStart:  window.Start,
		WeekEnd:    window.End,
		Categories: map[string]domain.CategoryTotal{},
		Days:       make([]domain.DayBreakdown, len(dayNames)),
	}

	for i := range view.Days {
		view.Days[i] = domain.DayBreakdown{
			Day:        dayNames[i],
			Date:       window.Start.AddDate(0, 0, i),
			Categories: map[string]int{},
		}
	}

	for _, ev := range deletedWithin(events, window) {
		addCategory(view.Categories, ev)
		day := weekdayIndex(ev.Timestamp.In(e.loc))
		view.Days[day].Categories[ev.ResourceType]++
	}

	view.Totals = totalsOf(view.Categories)
	return view
}
