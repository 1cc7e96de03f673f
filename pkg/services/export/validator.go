package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cost-guardian/dashboard/pkg/adapters"
	"github.com/cost-guardian/dashboard/pkg/models/domain"
)

var ErrValidation = errors.New("snapshot validation failed")

// Validate runs the pre-publish checks in order and stops at the first failure.
func Validate(s domain.Snapshot) error {
	sections := []struct {
		name    string
		present bool
	}{
		{"metadata", s.Metadata != nil},
		{"overview", s.Overview != nil},
		{"breakdown", s.Breakdown != nil},
		{"activity", s.Activity != nil},
		{"current_resources", s.CurrentResources != nil},
		{"deleted_resources", s.DeletedResources != nil},
	}
	for _, section := range sections {
		if !section.present {
			return fmt.Errorf("%w: missing required field: %s", ErrValidation, section.name)
		}
	}

	if s.Overview.MonthlySavings.IsNegative() {
		return fmt.Errorf("%w: monthly savings cannot be negative", ErrValidation)
	}
	if s.Overview.TotalResources < 0 {
		return fmt.Errorf("%w: total resources cannot be negative", ErrValidation)
	}
	if s.Metadata.LastUpdated.IsZero() {
		return fmt.Errorf("%w: missing last_updated in metadata", ErrValidation)
	}

	if _, err := json.Marshal(adapters.MapSnapshotDomainToApi(s)); err != nil {
		return fmt.Errorf("%w: data is not JSON serializable: %v", ErrValidation, err)
	}
	return nil
}
