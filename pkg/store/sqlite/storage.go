package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const ResourceLogsSchema = `
	CREATE TABLE IF NOT EXISTS resource_logs (
		resource_id VARCHAR NOT NULL,
		resource_type VARCHAR,
		status VARCHAR,
		timestamp VARCHAR,
		monthly_cost VARCHAR,
		estimated_monthly_savings VARCHAR,
		instance_name VARCHAR,
		volume_name VARCHAR,
		load_balancer_name VARCHAR,
		vpc_name VARCHAR,
		region VARCHAR,
		backup_location VARCHAR
	);
`

const ResourceLogsStatusIndex = `
	CREATE INDEX IF NOT EXISTS resource_logs_status_idx ON resource_logs (status);
`

var bootQueries = []string{
	ResourceLogsSchema,
	ResourceLogsStatusIndex,
}

type Settings struct {
	DbPath string
}

func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
		}
	}
	return db, nil
}
