package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const SnapshotVersion = "1.0"

// Snapshot is the aggregated document published for the static dashboard.
// A nil section is treated as missing by validation.
type Snapshot struct {
	Metadata         *SnapshotMetadata
	Overview         *Overview
	Breakdown        map[string]TypeBreakdown
	Activity         []DailyActivity
	CurrentResources []CurrentResource
	DeletedResources []DeletedResource
}

type SnapshotMetadata struct {
	LastUpdated     time.Time
	Version         string
	TotalLogEntries int
	UniqueResources int
}

type Overview struct {
	TotalResources   int
	ResourcesDeleted int
	IdleResources    int
	ActiveResources  int
	MonthlySavings   decimal.Decimal
	AnnualSavings    decimal.Decimal
}

type TypeBreakdown struct {
	Count          int
	Deleted        int
	Idle           int
	Active         int
	MonthlySavings decimal.Decimal
}

type DailyActivity struct {
	Date    string
	Deleted int
	Warned  int
	Active  int
}

type CurrentResource struct {
	ResourceID   string
	ResourceType string
	Status       Status
	MonthlyCost  decimal.Decimal
	LastChecked  string
	Region       string
}

type DeletedResource struct {
	ResourceID     string
	ResourceType   string
	Status         Status
	MonthlySavings decimal.Decimal
	DeletedAt      string
	BackupLocation string
}

// ExportStats summarizes a successful export run.
type ExportStats struct {
	TotalResources int
	MonthlySavings decimal.Decimal
	LastUpdated    time.Time
}
