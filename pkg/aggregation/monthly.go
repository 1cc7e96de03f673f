package aggregation

import (
	"time"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
)

// MonthlyResourceCounts counts terminal events per category for the month of
// date and splits them across 7-day windows starting on the 1st.
//
// Windows are labelled by the week of their first day and events by the week
// of their own day. An event whose label matches no window is left out of the
// window breakdown but still counts towards the category totals.
func (e *Engine) MonthlyResourceCounts(date time.Time, events []domain.Event) domain.MonthlyView {
	month := MonthWindow(date, e.loc)
	view := domain.MonthlyView{
		Month:      month.Start,
		MonthEnd:   month.End,
		Categories: map[string]domain.CategoryTotal{},
		Windows:    []domain.WindowBreakdown{},
	}

	byLabel := make(map[string]int)
	for _, slice := range MonthSlices(month, e.loc) {
		label := WeekLabel(slice.Start)
		byLabel[label] = len(view.Windows)
		view.Windows = append(view.Windows, domain.WindowBreakdown{
			Label:      label,
			Start:      slice.Start,
			End:        slice.End,
			Categories: map[string]int{},
		})
	}

	for _, ev := range deletedWithin(events, month) {
		addCategory(view.Categories, ev)

		i, ok := byLabel[WeekLabel(ev.Timestamp.In(e.loc))]
		if !ok {
			continue
		}
		view.Windows[i].Categories[ev.ResourceType]++
	}

	view.Totals = totalsOf(view.Categories)
	return view
}
