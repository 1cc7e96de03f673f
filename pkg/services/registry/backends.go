package registry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/publish"
	githubpublish "github.com/cost-guardian/dashboard/pkg/publish/github"
	s3publish "github.com/cost-guardian/dashboard/pkg/publish/s3"
	"github.com/cost-guardian/dashboard/pkg/services/config"
	"github.com/cost-guardian/dashboard/pkg/store"
	"github.com/cost-guardian/dashboard/pkg/store/dynamo"
	"github.com/cost-guardian/dashboard/pkg/store/sqlite"
	"github.com/cost-guardian/dashboard/pkg/store/sqlite/records"
)

// Stores returns the record store backends keyed by store.backend.
func Stores() *Registry[store.RecordStore] {
	r := New[store.RecordStore]("store backend")
	_ = r.Register(config.StoreDynamoDB, newDynamoStore)
	_ = r.Register(config.StoreSQLite, newSQLiteStore)
	return r
}

// Publishers returns the publishing backends keyed by publisher.backend.
func Publishers() *Registry[publish.Publisher] {
	r := New[publish.Publisher]("publisher backend")
	_ = r.Register(config.PublisherGitHub, newGitHubPublisher)
	_ = r.Register(config.PublisherS3, newS3Publisher)
	_ = r.Register(config.PublisherNone, func(context.Context, *config.Config) (publish.Publisher, error) {
		return publish.Nop{}, nil
	})
	return r
}

func newDynamoStore(ctx context.Context, cfg *config.Config) (store.RecordStore, error) {
	awsCfg, err := config.LoadAWSConfig(ctx, cfg.Store.Profile, cfg.Store.Region)
	if err != nil {
		return nil, err
	}
	return dynamo.NewStoreFromConfig(awsCfg, cfg.Store.Table)
}

func newSQLiteStore(ctx context.Context, cfg *config.Config) (store.RecordStore, error) {
	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: cfg.Store.SQLitePath})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return records.NewStore(db, cfg.Store.PageSize)
}

// newGitHubPublisher falls back to Nop when the token or repository is
// missing, so an unconfigured deployment still aggregates and validates.
func newGitHubPublisher(ctx context.Context, cfg *config.Config) (publish.Publisher, error) {
	gh := cfg.Publisher.GitHub
	if !gh.Configured() {
		zerolog.Ctx(ctx).Warn().Msg("GitHub credentials not configured, snapshots will not be pushed")
		return publish.Nop{}, nil
	}

	owner, repo, err := gh.OwnerRepo()
	if err != nil {
		return nil, err
	}
	return githubpublish.NewPublisher(githubpublish.Settings{
		Owner:   owner,
		Repo:    repo,
		Token:   gh.Token,
		BaseURL: gh.BaseURL,
	})
}

func newS3Publisher(ctx context.Context, cfg *config.Config) (publish.Publisher, error) {
	s3cfg := cfg.Publisher.S3
	region := s3cfg.Region
	if region == "" {
		region = cfg.Store.Region
	}

	awsCfg, err := config.LoadAWSConfig(ctx, s3cfg.Profile, region)
	if err != nil {
		return nil, err
	}
	return s3publish.NewPublisherFromConfig(awsCfg, s3cfg.Bucket)
}
