package adapters

import (
	"github.com/cost-guardian/dashboard/pkg/models/api"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

func MapDailyViewDomainToApi(v domain.DailyView) api.DailyResponse {
	resources := make([]api.DeletedResource, 0, len(v.Resources))
	for _, r := range v.Resources {
		resources = append(resources, api.DeletedResource{
			ResourceType:        r.ResourceType,
			ResourceID:          r.ResourceID,
			ResourceName:        r.ResourceName,
			MonthlySavings:      toFloat(r.MonthlySavings),
			AnnualSavings:       toFloat(r.AnnualSavings),
			DeletedAt:           FormatISOLocal(r.DeletedAt),
			DeletedDateReadable: r.DeletedAt.Format(DateTimeLayout),
		})
	}

	return api.DailyResponse{
		View:      string(domain.ViewDaily),
		Date:      v.Date.Format(DateLayout),
		Resources: resources,
		Summary: api.DailySummary{
			Summary:    mapTotals(v.Totals),
			Categories: nonNilCounts(v.Categories),
		},
	}
}

func MapWeeklyViewDomainToApi(v domain.WeeklyView) api.WeeklyResponse {
	days := make([]api.DayBreakdown, 0, len(v.Days))
	for _, d := range v.Days {
		days = append(days, api.DayBreakdown{
			Day:        d.Day,
			Date:       d.Date.Format(DateLayout),
			Categories: nonNilCounts(d.Categories),
		})
	}

	return api.WeeklyResponse{
		View:           string(domain.ViewWeekly),
		WeekStart:      v.WeekStart.Format(DateLayout),
		WeekEnd:        v.WeekEnd.Format(DateLayout),
		Categories:     mapCategories(v.Categories),
		DailyBreakdown: days,
		Summary:        mapTotals(v.Totals),
	}
}

func MapMonthlyViewDomainToApi(v domain.MonthlyView) api.MonthlyResponse {
	weeks := make([]api.WeekBreakdown, 0, len(v.Windows))
	for _, w := range v.Windows {
		weeks = append(weeks, api.WeekBreakdown{
			Week:       w.Label,
			StartDate:  w.Start.Format(DateLayout),
			EndDate:    w.End.Format(DateLayout),
			Categories: nonNilCounts(w.Categories),
		})
	}

	return api.MonthlyResponse{
		View:            string(domain.ViewMonthly),
		Month:           v.Month.Format(monthLayout),
		Categories:      mapCategories(v.Categories),
		WeeklyBreakdown: weeks,
		Summary:         mapTotals(v.Totals),
	}
}

func mapTotals(t domain.Totals) api.Summary {
	return api.Summary{
		TotalResourcesDeleted: t.ResourcesDeleted,
		TotalMonthlySavings:   toFloat(t.MonthlySavings),
		TotalAnnualSavings:    toFloat(t.AnnualSavings),
	}
}

func mapCategories(categories map[string]domain.CategoryTotal) map[string]api.CategoryTotal {
	out := make(map[string]api.CategoryTotal, len(categories))
	for name, c := range categories {
		out[name] = api.CategoryTotal{
			Count:          c.Count,
			MonthlySavings: toFloat(c.MonthlySavings),
		}
	}
	return out
}

func nonNilCounts(counts map[string]int) map[string]int {
	if counts == nil {
		return map[string]int{}
	}
	return counts
}

// toFloat coerces a decimal amount to a plain float for JSON encoding.
func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
