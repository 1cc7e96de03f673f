// Package aggregation turns a log of resource status events into the
// time-bucketed views served by the query API and the snapshot document
// published for the dashboard. Nothing in this package performs I/O.
package aggregation

import (
	"time"
)

const (
	DefaultRegion   = "us-east-1"
	activityWindow  = 30 * 24 * time.Hour
	unnamedResource = "Unnamed"
	noBackup        = "N/A"
	noResourceID    = "N/A"
)

type Settings struct {
	// Location anchors day, week and month boundaries. Defaults to UTC.
	Location *time.Location
	// Now is the clock used for activity windows and snapshot metadata.
	Now func() time.Time
	// DefaultRegion is reported for current resources without a region.
	DefaultRegion string
}

type Engine struct {
	loc           *time.Location
	now           func() time.Time
	defaultRegion string
}

func NewEngine(settings Settings) *Engine {
	e := &Engine{
		loc:           settings.Location,
		now:           settings.Now,
		defaultRegion: settings.DefaultRegion,
	}
	if e.loc == nil {
		e.loc = time.UTC
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.defaultRegion == "" {
		e.defaultRegion = DefaultRegion
	}
	return e
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now returns the engine clock in the engine location.
func (e *Engine) Now() time.Time {
	return e.now().In(e.loc)
}
