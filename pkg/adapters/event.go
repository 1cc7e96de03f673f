package adapters

import (
	"strings"
	"time"

	"github.com/cost-guardian/dashboard/pkg/models/domain"
	"github.com/cost-guardian/dashboard/pkg/models/store"
	"github.com/shopspring/decimal"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	isoNaiveLayout = "2006-01-02T15:04:05"
)

// Offset layouts not covered by RFC 3339: basic (+0000) and hour-only (+00) forms.
var offsetLayouts = []string{
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999-07",
}

// Layouts tried, in order, for ISO-8601 strings without an explicit offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	DateTimeLayout,
	"2006-01-02 15:04:05.999999999",
}

func MapStoreItemToDomainEvent(item store.Item, loc *time.Location) domain.Event {
	raw := item.Get(store.AttrTimestamp)
	ts, _ := ParseTimestamp(raw, loc)

	status := domain.Status(item.Get(store.AttrStatus))
	if status == "" {
		status = domain.StatusUnknown
	}
	resourceType := item.Get(store.AttrResourceType)
	if resourceType == "" {
		resourceType = "Unknown"
	}

	cost := parseAmount(item.Get(store.AttrMonthlyCost))
	savings := parseAmount(item.Get(store.AttrEstimatedSavings, store.AttrMonthlyCost))

	return domain.Event{
		ResourceID:       item.Get(store.AttrResourceID, store.AttrResourceIDAlt),
		ResourceType:     resourceType,
		Status:           status,
		Timestamp:        ts,
		RawTimestamp:     raw,
		MonthlyCost:      cost,
		MonthlySavings:   savings,
		InstanceName:     item.Get(store.AttrInstanceName),
		VolumeName:       item.Get(store.AttrVolumeName),
		LoadBalancerName: item.Get(store.AttrLoadBalancerName),
		VpcName:          item.Get(store.AttrVpcName),
		Region:           item.Get(store.AttrRegion),
		BackupLocation:   item.Get(store.AttrBackupLocation),
	}
}

func MapStoreItemsToDomainEvents(items []store.Item, loc *time.Location) []domain.Event {
	events := make([]domain.Event, 0, len(items))
	for _, item := range items {
		events = append(events, MapStoreItemToDomainEvent(item, loc))
	}
	return events
}

// ParseTimestamp normalizes an epoch number or an ISO-8601 string into loc.
// Strings without an offset are read as wall-clock time in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if epoch, err := decimal.NewFromString(raw); err == nil {
		sec := epoch.IntPart()
		nsec := epoch.Sub(decimal.NewFromInt(sec)).Shift(9).IntPart()
		return time.Unix(sec, nsec).In(loc), true
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), true
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	// A value with a time part that no layout accepts is malformed.
	if !strings.Contains(raw, "T") && len(raw) >= len(DateLayout) {
		if t, err := time.ParseInLocation(DateLayout, raw[:len(DateLayout)], loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate reads the calendar date part of an ISO-8601 value in loc. The time
// part may be separated by 'T' or a space.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(raw), "T")
	datePart, _, _ = strings.Cut(datePart, " ")
	t, err := time.ParseInLocation(DateLayout, datePart, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISOLocal renders t without an offset, adding microseconds only when present.
func FormatISOLocal(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(isoNaiveLayout + ".000000")
	}
	return t.Format(isoNaiveLayout)
}

// FormatUTC renders t as an ISO-8601 UTC instant with microsecond precision.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(isoNaiveLayout+".000000") + "Z"
}

func parseAmount(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
