package aggregation

import (
	"sort"
	"time"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// displayNameFields are tried in order; the first non-empty value names the resource.
var displayNameFields = []func(domain.Event) string{
	func(e domain.Event) string { return e.InstanceName },
	func(e domain.Event) string { return e.VolumeName },
	func(e domain.Event) string { return e.LoadBalancerName },
	func(e domain.Event) string { return e.VpcName },
}

func DisplayName(e domain.Event) string {
	for _, field := range displayNameFields {
		if name := field(e); name != "" {
			return name
		}
	}
	return unnamedResource
}

// DailyDeletedResources lists terminal events observed on date, highest savings first.
func (e *Engine) DailyDeletedResources(date time.Time, events []domain.Event) domain.DailyView {
	window := DayWindow(date, e.loc)
	view := domain.DailyView{
		Date:       window.Start,
		Resources:  []domain.DailyDeletion{},
		Categories: map[string]int{},
		Totals: domain.Totals{
			MonthlySavings: decimal.Zero,
			AnnualSavings:  decimal.Zero,
		},
	}

	for _, ev := range deletedWithin(events, window) {
		id := ev.ResourceID
		if id == "" {
			id = noResourceID
		}
		view.Resources = append(view.Resources, domain.DailyDeletion{
			ResourceType:   ev.ResourceType,
			ResourceID:     id,
			ResourceName:   DisplayName(ev),
			MonthlySavings: ev.MonthlySavings,
			AnnualSavings:  ev.MonthlySavings.Mul(monthsPerYear),
			DeletedAt:      ev.Timestamp.In(e.loc),
		})
		view.Totals.MonthlySavings = view.Totals.MonthlySavings.Add(ev.MonthlySavings)
		view.Categories[ev.ResourceType]++
	}

	sort.SliceStable(view.Resources, func(i, j int) bool {
		return view.Resources[i].MonthlySavings.GreaterThan(view.Resources[j].MonthlySavings)
	})

	view.Totals.ResourcesDeleted = len(view.Resources)
	view.Totals.AnnualSavings = view.Totals.MonthlySavings.Mul(monthsPerYear)
	return view
}

func deletedWithin(events []domain.Event, window Window) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if !ev.Status.IsTerminal() || !ev.HasTimestamp() {
			continue
		}
		if window.Contains(ev.Timestamp) {
			out = append(out, ev)
		}
	}
	return out
}

func addCategory(categories map[string]domain.CategoryTotal, ev domain.Event) {
	c, ok := categories[ev.ResourceType]
	if !ok {
		c.MonthlySavings = decimal.Zero
	}
	c.Count++
	c.MonthlySavings = c.MonthlySavings.Add(ev.MonthlySavings)
	categories[ev.ResourceType] = c
}

func totalsOf(categories map[string]domain.CategoryTotal) domain.Totals {
	t := domain.Totals{MonthlySavings: decimal.Zero}
	for _, c := range categories {
		t.ResourcesDeleted += c.Count
		t.MonthlySavings = t.MonthlySavings.Add(c.MonthlySavings)
	}
	t.AnnualSavings = t.MonthlySavings.Mul(monthsPerYear)
	return t
}
