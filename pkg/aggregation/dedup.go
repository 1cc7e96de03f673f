package aggregation

import "github.com/cost-guardian/dashboard/pkg/models/domain"

// LatestStatePerResource keeps, per resource id, the event with the greatest
// timestamp. When timestamps tie, the event seen first is kept.
func LatestStatePerResource(events []domain.Event) map[string]domain.Event {
	latest := latestStates(events)
	out := make(map[string]domain.Event, len(latest))
	for _, e := range latest {
		out[e.ResourceID] = e
	}
	return out
}

// latestStates is LatestStatePerResource ordered by first appearance of each id.
func latestStates(events []domain.Event) []domain.Event {
	index := make(map[string]int)
	var latest []domain.Event

	for _, e := range events {
		i, seen := index[e.ResourceID]
		if !seen {
			index[e.ResourceID] = len(latest)
			latest = append(latest, e)
			continue
		}
		if e.Timestamp.After(latest[i].Timestamp) {
			latest[i] = e
		}
	}
	return latest
}
