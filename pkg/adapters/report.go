package adapters

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
)

const (
	reportCurrency = "USD"
	perMonth       = "USD/mo"
)

func MapDailyViewDomainToReport(v domain.DailyView) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(v.Resources))
	for _, r := range v.Resources {
		details = append(details, domain.ReportDetail{
			Name:        fmt.Sprintf("%s (%s)", r.ResourceName, r.ResourceID),
			Value:       r.MonthlySavings.StringFixed(2),
			Unit:        perMonth,
			Description: fmt.Sprintf("%s deleted %s", r.ResourceType, r.DeletedAt.Format(DateTimeLayout)),
		})
	}

	end := v.Date.AddDate(0, 0, 1).Add(-time.Second)
	return &domain.Report{
		Title:  "Deleted resources on " + v.Date.Format(DateLayout),
		Period: period(v.Date, end),
		Sections: []domain.ReportSection{{
			Title:   "Deleted resources",
			Summary: totalsSummary(v.Totals, countSummary(v.Categories)),
			Details: details,
		}},
		TotalAmount: v.Totals.MonthlySavings,
		Currency:    reportCurrency,
	}
}

func MapWeeklyViewDomainToReport(v domain.WeeklyView) *domain.Report {
	days := make([]domain.ReportDetail, 0, len(v.Days))
	for _, d := range v.Days {
		days = append(days, domain.ReportDetail{
			Name:        fmt.Sprintf("%s %s", d.Day, d.Date.Format(DateLayout)),
			Value:       sumCounts(d.Categories),
			Unit:        "resources",
			Description: describeCounts(d.Categories),
		})
	}

	return &domain.Report{
		Title:  "Weekly deletions",
		Period: period(v.WeekStart, v.WeekEnd),
		Sections: []domain.ReportSection{
			{
				Title:   "Categories",
				Summary: totalsSummary(v.Totals, nil),
				Details: categoryDetails(v.Categories),
			},
			{Title: "Daily breakdown", Details: days},
		},
		TotalAmount: v.Totals.MonthlySavings,
		Currency:    reportCurrency,
	}
}

func MapMonthlyViewDomainToReport(v domain.MonthlyView) *domain.Report {
	windows := make([]domain.ReportDetail, 0, len(v.Windows))
	for _, w := range v.Windows {
		windows = append(windows, domain.ReportDetail{
			Name:        fmt.Sprintf("%s %s..%s", w.Label, w.Start.Format(DateLayout), w.End.Format(DateLayout)),
			Value:       sumCounts(w.Categories),
			Unit:        "resources",
			Description: describeCounts(w.Categories),
		})
	}

	return &domain.Report{
		Title:  "Monthly deletions " + v.Month.Format(monthLayout),
		Period: period(v.Month, v.MonthEnd),
		Sections: []domain.ReportSection{
			{
				Title:   "Categories",
				Summary: totalsSummary(v.Totals, nil),
				Details: categoryDetails(v.Categories),
			},
			{Title: "Weekly breakdown", Details: windows},
		},
		TotalAmount: v.Totals.MonthlySavings,
		Currency:    reportCurrency,
	}
}

func period(start, end time.Time) domain.TimePeriod {
	return domain.TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}

func totalsSummary(t domain.Totals, extra map[string]interface{}) map[string]interface{} {
	summary := map[string]interface{}{
		"Resources deleted": t.ResourcesDeleted,
		"Monthly savings":   t.MonthlySavings.StringFixed(2),
		"Annual savings":    t.AnnualSavings.StringFixed(2),
	}
	for k, v := range extra {
		summary[k] = v
	}
	return summary
}

func countSummary(counts map[string]int) map[string]interface{} {
	out := make(map[string]interface{}, len(counts))
	for name, n := range counts {
		out[name] = n
	}
	return out
}

func categoryDetails(categories map[string]domain.CategoryTotal) []domain.ReportDetail {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make([]domain.ReportDetail, 0, len(names))
	for _, name := range names {
		c := categories[name]
		details = append(details, domain.ReportDetail{
			Name:        name,
			Value:       c.Count,
			Unit:        "resources",
			Description: c.MonthlySavings.StringFixed(2) + " " + perMonth,
		})
	}
	return details
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

func describeCounts(counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for name, n := range counts {
		parts = append(parts, fmt.Sprintf("%s=%d", name, n))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
