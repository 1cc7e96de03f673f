package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive      Status = "Active"
	StatusIdle        Status = "Idle"
	StatusIdleWarning Status = "Idle-Warning"
	StatusQuarantine  Status = "Quarantine"
	StatusStopped     Status = "Stopped"
	StatusAvailable   Status = "Available"
	StatusUnattached  Status = "Unattached"
	StatusEmpty       Status = "Empty"
	StatusDeleted     Status = "Deleted"
	StatusReleased    Status = "Released"
	StatusTerminated  Status = "Terminated"
	StatusUnknown     Status = "Unknown"
)

// TerminalStatuses mark a resource as removed.
var TerminalStatuses = []Status{StatusDeleted, StatusReleased, StatusTerminated}

// IdleStatuses mark an underused resource that still exists.
var IdleStatuses = []Status{
	StatusIdle,
	StatusIdleWarning,
	StatusQuarantine,
	StatusStopped,
	StatusAvailable,
	StatusUnattached,
	StatusEmpty,
}

// WarnedStatuses is the subset of idle statuses counted as warnings in activity timelines.
var WarnedStatuses = []Status{StatusIdleWarning, StatusIdle, StatusQuarantine}

func (s Status) IsTerminal() bool { return s.in(TerminalStatuses) }
func (s Status) IsIdle() bool     { return s.in(IdleStatuses) }
func (s Status) IsWarned() bool   { return s.in(WarnedStatuses) }
func (s Status) IsActive() bool   { return s == StatusActive }

func (s Status) in(set []Status) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Event is one observed state of a monitored resource.
type Event struct {
	ResourceID   string
	ResourceType string
	Status       Status

	// Timestamp is the normalized observation time in the configured location.
	// It is the zero time when RawTimestamp could not be parsed.
	Timestamp    time.Time
	RawTimestamp string

	MonthlyCost    decimal.Decimal
	MonthlySavings decimal.Decimal

	InstanceName     string
	VolumeName       string
	LoadBalancerName string
	VpcName          string

	Region         string
	BackupLocation string
}

func (e Event) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}
