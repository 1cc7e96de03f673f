package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "COSTGUARDIAN"

	StoreDynamoDB = "dynamodb"
	StoreSQLite   = "sqlite"

	PublisherGitHub = "github"
	PublisherS3     = "s3"
	PublisherNone   = "none"
)

type Config struct {
	Listen        string `mapstructure:"listen"`
	Location      string `mapstructure:"location"`
	DefaultRegion string `mapstructure:"default_region"`
	// ExportInterval schedules exporter runs inside the web process. Zero disables it.
	ExportInterval time.Duration   `mapstructure:"export_interval"`
	Store          StoreConfig     `mapstructure:"store"`
	Publisher      PublisherConfig `mapstructure:"publisher"`
}

type StoreConfig struct {
	Backend    string `mapstructure:"backend"`
	Table      string `mapstructure:"table"`
	Region     string `mapstructure:"region"`
	Profile    string `mapstructure:"profile"`
	SQLitePath string `mapstructure:"sqlite_path"`
	PageSize   int    `mapstructure:"page_size"`
}

type PublisherConfig struct {
	Backend string       `mapstructure:"backend"`
	Branch  string       `mapstructure:"branch"`
	Path    string       `mapstructure:"path"`
	GitHub  GitHubConfig `mapstructure:"github"`
	S3      S3Config     `mapstructure:"s3"`
}

type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	Repo    string `mapstructure:"repo"`
	BaseURL string `mapstructure:"base_url"`
}

// Configured reports whether pushes to GitHub are possible at all.
func (g GitHubConfig) Configured() bool {
	return g.Token != "" && g.Repo != ""
}

// OwnerRepo splits Repo ("owner/name").
func (g GitHubConfig) OwnerRepo() (string, string, error) {
	owner, name, ok := strings.Cut(g.Repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository %q must be in owner/name form", g.Repo)
	}
	return owner, name, nil
}

type S3Config struct {
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

var defaults = map[string]any{
	"listen":                    ":8080",
	"location":                  "UTC",
	"default_region":            "us-east-1",
	"export_interval":           "0s",
	"store.backend":             StoreDynamoDB,
	"store.table":               "CostGuardianResourceLogs",
	"store.region":              "us-east-1",
	"store.profile":             "",
	"store.sqlite_path":         "cost-guardian.db",
	"store.page_size":           0,
	"publisher.backend":         PublisherGitHub,
	"publisher.branch":          "main",
	"publisher.path":            "public/data.json",
	"publisher.github.token":    "",
	"publisher.github.repo":     "",
	"publisher.github.base_url": "",
	"publisher.s3.bucket":       "",
	"publisher.s3.region":       "",
	"publisher.s3.profile":      "",
}

// Legacy variable names of the original Lambda deployment.
var aliases = map[string]string{
	"store.table":            "DYNAMODB_TABLE",
	"publisher.github.token": "GITHUB_TOKEN",
	"publisher.github.repo":  "GITHUB_REPO",
	"publisher.branch":       "GITHUB_BRANCH",
	"publisher.path":         "DATA_FILE_PATH",
}

// LoadConfig reads an optional config file and the environment. Prefixed
// variables (COSTGUARDIAN_STORE_TABLE) win over the legacy names.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range aliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if _, err := c.TimeLocation(); err != nil {
		errs = append(errs, err)
	}

	switch c.Store.Backend {
	case StoreDynamoDB:
		if c.Store.Table == "" {
			errs = append(errs, errors.New("store.table is required for the dynamodb backend"))
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	if c.ExportInterval < 0 {
		errs = append(errs, fmt.Errorf("export_interval must not be negative, got %s", c.ExportInterval))
	}
	if c.Store.PageSize < 0 {
		errs = append(errs, fmt.Errorf("store.page_size must not be negative, got %d", c.Store.PageSize))
	}

	if !slices.Contains([]string{PublisherGitHub, PublisherS3, PublisherNone}, c.Publisher.Backend) {
		errs = append(errs, fmt.Errorf("unknown publisher backend %q", c.Publisher.Backend))
	}
	if c.Publisher.Backend != PublisherNone && c.Publisher.Path == "" {
		errs = append(errs, errors.New("publisher.path is required"))
	}
	if c.Publisher.Backend == PublisherGitHub && c.Publisher.GitHub.Repo != "" {
		if _, _, err := c.Publisher.GitHub.OwnerRepo(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Publisher.Backend == PublisherS3 && c.Publisher.S3.Bucket == "" {
		errs = append(errs, errors.New("publisher.s3.bucket is required for the s3 backend"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("unknown location %q: %w", c.Location, err)
	}
	return loc, nil
}
