package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type View string

const (
	ViewDaily   View = "daily"
	ViewWeekly  View = "weekly"
	ViewMonthly View = "monthly"
)

func (v View) Valid() bool {
	switch v {
	case ViewDaily, ViewWeekly, ViewMonthly:
		return true
	}
	return false
}

// Totals summarize deletions over a view window.
type Totals struct {
	ResourcesDeleted int
	MonthlySavings   decimal.Decimal
	AnnualSavings    decimal.Decimal
}

type CategoryTotal struct {
	Count          int
	MonthlySavings decimal.Decimal
}

// DailyDeletion is a resource deleted on the requested day.
type DailyDeletion struct {
	ResourceType   string
	ResourceID     string
	ResourceName   string
	MonthlySavings decimal.Decimal
	AnnualSavings  decimal.Decimal
	DeletedAt      time.Time
}

type DailyView struct {
	Date       time.Time
	Resources  []DailyDeletion
	Totals     Totals
	Categories map[string]int
}

type DayBreakdown struct {
	Day        string
	Date       time.Time
	Categories map[string]int
}

type WeeklyView struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	Categories map[string]CategoryTotal
	Days       []DayBreakdown
	Totals     Totals
}

// WindowBreakdown is a 7-day slice of a month starting at Start.
type WindowBreakdown struct {
	Label      string
	Start      time.Time
	End        time.Time
	Categories map[string]int
}

type MonthlyView struct {
	Month      time.Time
	MonthEnd   time.Time
	Categories map[string]CategoryTotal
	Windows    []WindowBreakdown
	Totals     Totals
}
