package api

// Snapshot is the JSON document consumed by the static dashboard.
type Snapshot struct {
	Metadata         *SnapshotMetadata        `json:"metadata"`
	Overview         *Overview                `json:"overview"`
	Breakdown        map[string]TypeBreakdown `json:"breakdown"`
	Activity         []DailyActivity          `json:"activity"`
	CurrentResources []CurrentResource        `json:"current_resources"`
	DeletedResources []SnapshotDeletion       `json:"deleted_resources"`
}

type SnapshotMetadata struct {
	LastUpdated     string `json:"last_updated"`
	Version         string `json:"version"`
	TotalLogEntries int    `json:"total_log_entries"`
	UniqueResources int    `json:"unique_resources"`
}

type Overview struct {
	TotalResources   int     `json:"total_resources"`
	ResourcesDeleted int     `json:"resources_deleted"`
	IdleResources    int     `json:"idle_resources"`
	ActiveResources  int     `json:"active_resources"`
	MonthlySavings   float64 `json:"monthly_savings"`
	AnnualSavings    float64 `json:"annual_savings"`
}

type TypeBreakdown struct {
	Count          int     `json:"count"`
	Deleted        int     `json:"deleted"`
	Idle           int     `json:"idle"`
	Active         int     `json:"active"`
	MonthlySavings float64 `json:"monthly_savings"`
}

type DailyActivity struct {
	Date    string `json:"date"`
	Deleted int    `json:"deleted"`
	Warned  int    `json:"warned"`
	Active  int    `json:"active"`
}

type CurrentResource struct {
	ResourceID   string  `json:"resource_id"`
	ResourceType string  `json:"resource_type"`
	Status       string  `json:"status"`
	MonthlyCost  float64 `json:"monthly_cost"`
	LastChecked  string  `json:"last_checked"`
	Region       string  `json:"region"`
}

type SnapshotDeletion struct {
	ResourceID     string  `json:"resource_id"`
	ResourceType   string  `json:"resource_type"`
	Status         string  `json:"status"`
	MonthlySavings float64 `json:"monthly_savings"`
	DeletedAt      string  `json:"deleted_at"`
	BackupLocation string  `json:"backup_location"`
}

type ExportStats struct {
	TotalResources int     `json:"total_resources"`
	MonthlySavings float64 `json:"monthly_savings"`
	LastUpdated    string  `json:"last_updated"`
}

// ExportResult is the invocation envelope of an exporter run.
type ExportResult struct {
	Status  int          `json:"status"`
	Message string       `json:"message,omitempty"`
	Stats   *ExportStats `json:"stats,omitempty"`
	Error   string       `json:"error,omitempty"`
}
