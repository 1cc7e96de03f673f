package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cost-guardian/dashboard/pkg/models/store"
	"github.com/rs/zerolog"
)

const DefaultTable = "CostGuardianResourceLogs"

type Store struct {
	client dynamodb.ScanAPIClient
	table  string
}

func NewStore(client dynamodb.ScanAPIClient, table string) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	return &Store{client: client, table: table}, nil
}

func NewStoreFromConfig(cfg aws.Config, table string) (*Store, error) {
	return NewStore(dynamodb.NewFromConfig(cfg), table)
}

func (s *Store) Scan(ctx context.Context, filter store.Filter) ([]store.Item, error) {
	logger := zerolog.Ctx(ctx)

	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
	applyFilter(input, filter)

	var items []store.Item
	pages := 0
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s page %d: %w", s.table, pages+1, err)
		}
		pages++
		for _, av := range out.Items {
			items = append(items, mapItem(av))
		}
	}

	logger.Debug().
		Str("table", s.table).
		Int("pages", pages).
		Int("items", len(items)).
		Msg("scanned record table")

	return items, nil
}

func applyFilter(input *dynamodb.ScanInput, filter store.Filter) {
	var conditions []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if len(filter.Statuses) > 0 {
		names["#status"] = store.AttrStatus
		placeholders := make([]string, 0, len(filter.Statuses))
		for i, status := range filter.Statuses {
			key := fmt.Sprintf(":status%d", i)
			placeholders = append(placeholders, key)
			values[key] = &types.AttributeValueMemberS{Value: status}
		}
		conditions = append(conditions, fmt.Sprintf("#status IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filter.HasRange() {
		names["#ts"] = store.AttrTimestamp
		values[":start"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(filter.From.Unix(), 10)}
		values[":end"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(filter.To.Unix(), 10)}
		conditions = append(conditions, "#ts BETWEEN :start AND :end")
	}

	if len(conditions) == 0 {
		return
	}
	input.FilterExpression = aws.String(strings.Join(conditions, " AND "))
	input.ExpressionAttributeNames = names
	input.ExpressionAttributeValues = values
}

// mapItem flattens scalar attributes to text; sets, lists and maps are not
// part of the record layout and are ignored.
func mapItem(av map[string]types.AttributeValue) store.Item {
	item := make(store.Item, len(av))
	for name, value := range av {
		switch v := value.(type) {
		case *types.AttributeValueMemberS:
			item[name] = v.Value
		case *types.AttributeValueMemberN:
			item[name] = v.Value
		case *types.AttributeValueMemberBOOL:
			item[name] = strconv.FormatBool(v.Value)
		}
	}
	return item
}
