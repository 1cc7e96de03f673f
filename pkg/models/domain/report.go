package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a view rendered for terminal output.
type Report struct {
	Title       string
	Period      TimePeriod
	Sections    []ReportSection
	TotalAmount decimal.Decimal // monthly savings over the period
	Currency    string
}

type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
