package aggregation

import (
	"testing"
	"time"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestStatePerResource_KeepsMostRecent(t *testing.T) {
	older := event("A", "EC2", domain.StatusIdleWarning, at(2024, 6, 1, 0, 0, 0), "10")
	newer := event("A", "EC2", domain.StatusDeleted, at(2024, 6, 2, 0, 0, 0), "10")
	other := event("B", "EBS", domain.StatusActive, at(2024, 6, 1, 0, 0, 0), "1")

	tests := []struct {
		name   string
		events []domain.Event
	}{
		{name: "older first", events: []domain.Event{older, other, newer}},
		{name: "newer first", events: []domain.Event{newer, other, older}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latest := LatestStatePerResource(tt.events)

			require.Len(t, latest, 2)
			assert.Equal(t, domain.StatusDeleted, latest["A"].Status)
			assert.Equal(t, newer.Timestamp, latest["A"].Timestamp)
			assert.Equal(t, domain.StatusActive, latest["B"].Status)
		})
	}
}

func TestLatestStatePerResource_UnparsableTimestampLosesToAnyReading(t *testing.T) {
	broken := event("A", "EC2", domain.StatusActive, time.Time{}, "1")
	dated := event("A", "EC2", domain.StatusStopped, at(2020, 1, 1, 0, 0, 0), "1")

	latest := LatestStatePerResource([]domain.Event{broken, dated})

	assert.Equal(t, domain.StatusStopped, latest["A"].Status)
}

func TestOverview_Scenario(t *testing.T) {
	e := newTestEngine(at(2024, 6, 10, 0, 0, 0))
	events := []domain.Event{
		event("A", "EC2", domain.StatusDeleted, at(2024, 6, 3, 10, 0, 0), "50"),
		event("B", "EBS", domain.StatusActive, at(2024, 6, 3, 10, 0, 0), "5"),
	}

	snapshot := e.Snapshot(events)

	require.NotNil(t, snapshot.Overview)
	o := snapshot.Overview
	assert.Equal(t, 2, o.TotalResources)
	assert.Equal(t, 1, o.ResourcesDeleted)
	assert.Equal(t, 0, o.IdleResources)
	assert.Equal(t, 1, o.ActiveResources)
	assert.Equal(t, "50.00", o.MonthlySavings.StringFixed(2))
	assert.Equal(t, "600.00", o.AnnualSavings.StringFixed(2))
}

func TestOverview_RoundsToCents(t *testing.T) {
	latest := []domain.Event{
		event("A", "EC2", domain.StatusDeleted, at(2024, 6, 3, 10, 0, 0), "10.125"),
		event("B", "EC2", domain.StatusTerminated, at(2024, 6, 3, 10, 0, 0), "0.001"),
		event("C", "EBS", domain.StatusUnattached, at(2024, 6, 3, 10, 0, 0), "99"),
	}

	o := Overview(latest)

	assert.Equal(t, "10.13", o.MonthlySavings.String())
	assert.Equal(t, "121.51", o.AnnualSavings.String())
	assert.Equal(t, 1, o.IdleResources)
	assert.True(t, o.MonthlySavings.Equal(o.MonthlySavings.Round(2)))
}

func TestBreakdown_GroupsByResourceType(t *testing.T) {
	latest := []domain.Event{
		event("i-1", "EC2", domain.StatusDeleted, at(2024, 6, 3, 10, 0, 0), "12.345"),
		event("i-2", "EC2", domain.StatusActive, at(2024, 6, 3, 10, 0, 0), "7"),
		event("i-3", "EC2", domain.StatusQuarantine, at(2024, 6, 3, 10, 0, 0), "3"),
		event("vol-1", "EBS", domain.StatusAvailable, at(2024, 6, 3, 10, 0, 0), "2"),
		event("x-1", "EBS", domain.Status("Pending"), at(2024, 6, 3, 10, 0, 0), "2"),
	}

	breakdown := Breakdown(latest)

	require.Len(t, breakdown, 2)
	ec2 := breakdown["EC2"]
	assert.Equal(t, 3, ec2.Count)
	assert.Equal(t, 1, ec2.Deleted)
	assert.Equal(t, 1, ec2.Idle)
	assert.Equal(t, 1, ec2.Active)
	assert.Equal(t, "12.35", ec2.MonthlySavings.String())

	ebs := breakdown["EBS"]
	assert.Equal(t, 2, ebs.Count)
	assert.Equal(t, 1, ebs.Idle)
	assert.Equal(t, 0, ebs.Deleted+ebs.Active)
	assert.True(t, ebs.MonthlySavings.IsZero())
}

func TestActivity_TrailingThirtyDays(t *testing.T) {
	e := newTestEngine(at(2024, 6, 30, 12, 0, 0))
	events := []domain.Event{
		event("a", "EC2", domain.StatusDeleted, at(2024, 6, 29, 8, 0, 0), "1"),
		event("a", "EC2", domain.StatusIdleWarning, at(2024, 6, 29, 7, 0, 0), "1"),
		event("b", "EBS", domain.StatusActive, at(2024, 6, 28, 7, 0, 0), "1"),
		event("c", "EBS", domain.StatusStopped, at(2024, 6, 28, 9, 0, 0), "1"),
		event("d", "EBS", domain.StatusDeleted, at(2024, 5, 31, 11, 59, 59), "1"),
		event("e", "EBS", domain.StatusDeleted, time.Time{}, "1"),
	}

	activity := e.Activity(events)

	assert.Equal(t, []domain.DailyActivity{
		{Date: "2024-06-28", Active: 1},
		{Date: "2024-06-29", Deleted: 1, Warned: 1},
	}, activity)
}

func TestCurrentAndDeletedResources(t *testing.T) {
	e := newTestEngine(at(2024, 6, 30, 12, 0, 0))

	cheap := event("cheap", "EBS", domain.StatusIdle, at(2024, 6, 1, 0, 0, 0), "1")
	pricey := event("pricey", "EC2", domain.StatusActive, at(2024, 6, 1, 0, 0, 0), "90")
	pricey.Region = "eu-west-1"
	early := event("early", "EC2", domain.StatusDeleted, at(2024, 6, 1, 0, 0, 0), "5")
	late := event("late", "EBS", domain.StatusReleased, at(2024, 6, 20, 0, 0, 0), "7")
	late.BackupLocation = "s3://backups/late"

	latest := []domain.Event{cheap, early, pricey, late}

	current := e.CurrentResources(latest)
	require.Len(t, current, 2)
	assert.Equal(t, "pricey", current[0].ResourceID)
	assert.Equal(t, "eu-west-1", current[0].Region)
	assert.Equal(t, "cheap", current[1].ResourceID)
	assert.Equal(t, "us-east-1", current[1].Region)
	assert.Equal(t, cheap.RawTimestamp, current[1].LastChecked)

	deleted := DeletedResources(latest)
	require.Len(t, deleted, 2)
	assert.Equal(t, "late", deleted[0].ResourceID)
	assert.Equal(t, "s3://backups/late", deleted[0].BackupLocation)
	assert.Equal(t, "early", deleted[1].ResourceID)
	assert.Equal(t, "N/A", deleted[1].BackupLocation)
	assert.True(t, decimal.NewFromInt(5).Equal(deleted[1].MonthlySavings))
}

func TestSnapshot_Metadata(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	e := newTestEngine(now)
	events := []domain.Event{
		event("A", "EC2", domain.StatusActive, at(2024, 6, 1, 0, 0, 0), "1"),
		event("A", "EC2", domain.StatusDeleted, at(2024, 6, 2, 0, 0, 0), "1"),
		event("B", "EC2", domain.StatusActive, at(2024, 6, 1, 0, 0, 0), "1"),
	}

	snapshot := e.Snapshot(events)

	require.NotNil(t, snapshot.Metadata)
	assert.Equal(t, domain.SnapshotVersion, snapshot.Metadata.Version)
	assert.Equal(t, 3, snapshot.Metadata.TotalLogEntries)
	assert.Equal(t, 2, snapshot.Metadata.UniqueResources)
	assert.True(t, now.Equal(snapshot.Metadata.LastUpdated))
	assert.Equal(t, time.UTC, snapshot.Metadata.LastUpdated.Location())
}

func TestSnapshot_EmptyLogHasAllSections(t *testing.T) {
	e := newTestEngine(at(2024, 6, 30, 12, 0, 0))

	snapshot := e.Snapshot(nil)

	assert.NotNil(t, snapshot.Metadata)
	assert.NotNil(t, snapshot.Overview)
	assert.NotNil(t, snapshot.Breakdown)
	assert.NotNil(t, snapshot.Activity)
	assert.NotNil(t, snapshot.CurrentResources)
	assert.NotNil(t, snapshot.DeletedResources)
	assert.Equal(t, 0, snapshot.Overview.TotalResources)
}

func TestSnapshot_Idempotent(t *testing.T) {
	e := newTestEngine(at(2024, 6, 30, 12, 0, 0))
	events := []domain.Event{
		event("A", "EC2", domain.StatusDeleted, at(2024, 6, 20, 0, 0, 0), "10"),
		event("B", "EC2", domain.StatusDeleted, at(2024, 6, 20, 0, 0, 0), "10"),
		event("C", "EBS", domain.StatusIdle, at(2024, 6, 21, 0, 0, 0), "3"),
		event("D", "EBS", domain.StatusIdle, at(2024, 6, 21, 0, 0, 0), "3"),
		event("E", "ELB", domain.StatusActive, at(2024, 6, 22, 0, 0, 0), "8.333"),
	}

	assert.Equal(t, e.Snapshot(events), e.Snapshot(events))
}
