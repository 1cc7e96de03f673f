package adapters

import (
	"github.com/cost-guardian/dashboard/pkg/models/api"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
)

func MapSnapshotDomainToApi(s domain.Snapshot) api.Snapshot {
	doc := api.Snapshot{}

	if s.Metadata != nil {
		doc.Metadata = &api.SnapshotMetadata{
			Version:         s.Metadata.Version,
			TotalLogEntries: s.Metadata.TotalLogEntries,
			UniqueResources: s.Metadata.UniqueResources,
		}
		if !s.Metadata.LastUpdated.IsZero() {
			doc.Metadata.LastUpdated = FormatUTC(s.Metadata.LastUpdated)
		}
	}

	if s.Overview != nil {
		doc.Overview = &api.Overview{
			TotalResources:   s.Overview.TotalResources,
			ResourcesDeleted: s.Overview.ResourcesDeleted,
			IdleResources:    s.Overview.IdleResources,
			ActiveResources:  s.Overview.ActiveResources,
			MonthlySavings:   toFloat(s.Overview.MonthlySavings),
			AnnualSavings:    toFloat(s.Overview.AnnualSavings),
		}
	}

	if s.Breakdown != nil {
		doc.Breakdown = make(map[string]api.TypeBreakdown, len(s.Breakdown))
		for resourceType, b := range s.Breakdown {
			doc.Breakdown[resourceType] = api.TypeBreakdown{
				Count:          b.Count,
				Deleted:        b.Deleted,
				Idle:           b.Idle,
				Active:         b.Active,
				MonthlySavings: toFloat(b.MonthlySavings),
			}
		}
	}

	if s.Activity != nil {
		doc.Activity = make([]api.DailyActivity, 0, len(s.Activity))
		for _, a := range s.Activity {
			doc.Activity = append(doc.Activity, api.DailyActivity{
				Date:    a.Date,
				Deleted: a.Deleted,
				Warned:  a.Warned,
				Active:  a.Active,
			})
		}
	}

	if s.CurrentResources != nil {
		doc.CurrentResources = make([]api.CurrentResource, 0, len(s.CurrentResources))
		for _, r := range s.CurrentResources {
			doc.CurrentResources = append(doc.CurrentResources, api.CurrentResource{
				ResourceID:   r.ResourceID,
				ResourceType: r.ResourceType,
				Status:       string(r.Status),
				MonthlyCost:  toFloat(r.MonthlyCost),
				LastChecked:  r.LastChecked,
				Region:       r.Region,
			})
		}
	}

	if s.DeletedResources != nil {
		doc.DeletedResources = make([]api.SnapshotDeletion, 0, len(s.DeletedResources))
		for _, r := range s.DeletedResources {
			doc.DeletedResources = append(doc.DeletedResources, api.SnapshotDeletion{
				ResourceID:     r.ResourceID,
				ResourceType:   r.ResourceType,
				Status:         string(r.Status),
				MonthlySavings: toFloat(r.MonthlySavings),
				DeletedAt:      r.DeletedAt,
				BackupLocation: r.BackupLocation,
			})
		}
	}

	return doc
}

func MapExportStatsDomainToApi(stats domain.ExportStats) api.ExportStats {
	return api.ExportStats{
		TotalResources: stats.TotalResources,
		MonthlySavings: toFloat(stats.MonthlySavings),
		LastUpdated:    FormatUTC(stats.LastUpdated),
	}
}
