package aggregation

import (
	"sort"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const currencyPlaces = 2

// Snapshot aggregates the full event log into the dashboard document.
func (e *Engine) Snapshot(events []domain.Event) domain.Snapshot {
	latest := latestStates(events)

	return domain.Snapshot{
		Metadata: &domain.SnapshotMetadata{
			LastUpdated:     e.now().UTC(),
			Version:         domain.SnapshotVersion,
			TotalLogEntries: len(events),
			UniqueResources: len(latest),
		},
		Overview:         Overview(latest),
		Breakdown:        Breakdown(latest),
		Activity:         e.Activity(events),
		CurrentResources: e.CurrentResources(latest),
		DeletedResources: DeletedResources(latest),
	}
}

// Overview partitions current resource states and totals the monthly cost of
// deleted ones, rounded to cents.
func Overview(latest []domain.Event) *domain.Overview {
	o := &domain.Overview{TotalResources: len(latest)}
	savings := decimal.Zero

	for _, ev := range latest {
		switch {
		case ev.Status.IsTerminal():
			o.ResourcesDeleted++
			savings = savings.Add(ev.MonthlyCost)
		case ev.Status.IsIdle():
			o.IdleResources++
		case ev.Status.IsActive():
			o.ActiveResources++
		}
	}

	o.MonthlySavings = savings.Round(currencyPlaces)
	o.AnnualSavings = savings.Mul(monthsPerYear).Round(currencyPlaces)
	return o
}

func Breakdown(latest []domain.Event) map[string]domain.TypeBreakdown {
	breakdown := make(map[string]domain.TypeBreakdown)

	for _, ev := range latest {
		b, ok := breakdown[ev.ResourceType]
		if !ok {
			b.MonthlySavings = decimal.Zero
		}
		b.Count++
		switch {
		case ev.Status.IsTerminal():
			b.Deleted++
			b.MonthlySavings = b.MonthlySavings.Add(ev.MonthlyCost)
		case ev.Status.IsIdle():
			b.Idle++
		case ev.Status.IsActive():
			b.Active++
		}
		breakdown[ev.ResourceType] = b
	}

	for resourceType, b := range breakdown {
		b.MonthlySavings = b.MonthlySavings.Round(currencyPlaces)
		breakdown[resourceType] = b
	}
	return breakdown
}

// Activity counts raw events per calendar day over the trailing 30 days.
// Events without a readable timestamp are skipped.
func (e *Engine) Activity(events []domain.Event) []domain.DailyActivity {
	cutoff := e.Now().Add(-activityWindow)
	byDate := make(map[string]*domain.DailyActivity)

	for _, ev := range events {
		if !ev.HasTimestamp() || ev.Timestamp.Before(cutoff) {
			continue
		}
		date := ev.Timestamp.In(e.loc).Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &domain.DailyActivity{Date: date}
			byDate[date] = day
		}

		switch {
		case ev.Status.IsTerminal():
			day.Deleted++
		case ev.Status.IsWarned():
			day.Warned++
		case ev.Status.IsActive():
			day.Active++
		}
	}

	activity := make([]domain.DailyActivity, 0, len(byDate))
	for _, day := range byDate {
		activity = append(activity, *day)
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Date < activity[j].Date
	})
	return activity
}

// CurrentResources lists non-terminal resources, most expensive first.
func (e *Engine) CurrentResources(latest []domain.Event) []domain.CurrentResource {
	current := make([]domain.CurrentResource, 0, len(latest))
	for _, ev := range latest {
		if ev.Status.IsTerminal() {
			continue
		}
		region := ev.Region
		if region == "" {
			region = e.defaultRegion
		}
		current = append(current, domain.CurrentResource{
			ResourceID:   ev.ResourceID,
			ResourceType: ev.ResourceType,
			Status:       ev.Status,
			MonthlyCost:  ev.MonthlyCost,
			LastChecked:  ev.RawTimestamp,
			Region:       region,
		})
	}

	sort.SliceStable(current, func(i, j int) bool {
		return current[i].MonthlyCost.GreaterThan(current[j].MonthlyCost)
	})
	return current
}

// DeletedResources lists terminal resources, most recently deleted first.
func DeletedResources(latest []domain.Event) []domain.DeletedResource {
	var terminal []domain.Event
	for _, ev := range latest {
		if ev.Status.IsTerminal() {
			terminal = append(terminal, ev)
		}
	}

	sort.SliceStable(terminal, func(i, j int) bool {
		return terminal[i].Timestamp.After(terminal[j].Timestamp)
	})

	deleted := make([]domain.DeletedResource, 0, len(terminal))
	for _, ev := range terminal {
		backup := ev.BackupLocation
		if backup == "" {
			backup = noBackup
		}
		deleted = append(deleted, domain.DeletedResource{
			ResourceID:     ev.ResourceID,
			ResourceType:   ev.ResourceType,
			Status:         ev.Status,
			MonthlySavings: ev.MonthlyCost,
			DeletedAt:      ev.RawTimestamp,
			BackupLocation: backup,
		})
	}
	return deleted
}
