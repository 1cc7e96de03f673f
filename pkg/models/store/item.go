package store

import "time"

// Item is a raw record as returned by a record store: a flat mapping of
// attribute names to their textual value. Numeric attributes keep their
// decimal text so no precision is lost before domain mapping.
type Item map[string]string

// Get returns the first non-empty value among keys.
func (i Item) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := i[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Filter restricts a scan. Zero values disable the corresponding condition.
type Filter struct {
	Statuses []string
	// From and To bound the epoch Timestamp attribute, inclusive.
	From time.Time
	To   time.Time
}

func (f Filter) HasRange() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

const (
	AttrResourceID       = "ResourceID"
	AttrResourceIDAlt    = "ResourceId"
	AttrResourceType     = "ResourceType"
	AttrStatus           = "Status"
	AttrTimestamp        = "Timestamp"
	AttrMonthlyCost      = "MonthlyCost"
	AttrEstimatedSavings = "EstimatedMonthlySavings"
	AttrInstanceName     = "InstanceName"
	AttrVolumeName       = "VolumeName"
	AttrLoadBalancerName = "LoadBalancerName"
	AttrVpcName          = "VpcName"
	AttrRegion           = "Region"
	AttrBackupLocation   = "BackupLocation"
)
