package records

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cost-guardian/dashboard/pkg/models/store"
	"github.com/rs/zerolog"
)

const DefaultPageSize = 500

const selectRecords = `SELECT rowid, resource_id, resource_type, status, timestamp, monthly_cost,
	estimated_monthly_savings, instance_name, volume_name, load_balancer_name, vpc_name,
	region, backup_location
FROM resource_logs
WHERE rowid > ?`

// columns maps scanned columns, after rowid, to record attribute names.
var columns = []string{
	store.AttrResourceID,
	store.AttrResourceType,
	store.AttrStatus,
	store.AttrTimestamp,
	store.AttrMonthlyCost,
	store.AttrEstimatedSavings,
	store.AttrInstanceName,
	store.AttrVolumeName,
	store.AttrLoadBalancerName,
	store.AttrVpcName,
	store.AttrRegion,
	store.AttrBackupLocation,
}

type Store struct {
	db       *sql.DB
	pageSize int
}

func NewStore(db *sql.DB, pageSize int) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Store{db: db, pageSize: pageSize}, nil
}

// Scan reads matching rows in rowid order, one page at a time, using the last
// rowid of each page as the continuation token.
func (s *Store) Scan(ctx context.Context, filter store.Filter) ([]store.Item, error) {
	logger := zerolog.Ctx(ctx)
	query, filterArgs := buildQuery(filter)

	var items []store.Item
	var cursor int64
	pages := 0
	for {
		args := append([]any{cursor}, filterArgs...)
		args = append(args, s.pageSize)

		page, last, err := s.scanPage(ctx, query, args)
		if err != nil {
			return nil, fmt.Errorf("scan resource_logs page %d: %w", pages+1, err)
		}
		pages++
		items = append(items, page...)

		if len(page) < s.pageSize {
			break
		}
		cursor = last
	}

	logger.Debug().
		Int("pages", pages).
		Int("items", len(items)).
		Msg("scanned resource_logs")

	return items, nil
}

func (s *Store) scanPage(ctx context.Context, query string, args []any) ([]store.Item, int64, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close resource_logs rows")
		}
	}(rows)

	var (
		items []store.Item
		last  int64
	)
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, 0, len(columns)+1)
		dest = append(dest, &last)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}

		item := make(store.Item, len(columns))
		for i, v := range values {
			if v.Valid {
				item[columns[i]] = v.String
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, last, nil
}

func buildQuery(filter store.Filter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(selectRecords)

	if len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Statuses)), ", ")
		sb.WriteString("\n  AND status IN (" + placeholders + ")")
		for _, status := range filter.Statuses {
			args = append(args, status)
		}
	}

	if filter.HasRange() {
		sb.WriteString("\n  AND CAST(timestamp AS INTEGER) BETWEEN ? AND ?")
		args = append(args, filter.From.Unix(), filter.To.Unix())
	}

	sb.WriteString("\nORDER BY rowid\nLIMIT ?")
	return sb.String(), args
}
