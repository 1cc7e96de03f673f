package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/publish"
)

type Settings struct {
	Owner string
	Repo  string
	Token string
	// BaseURL overrides the API endpoint (GitHub Enterprise, tests).
	BaseURL string
}

// Publisher stores the snapshot as a file in a repository through the
// contents API. Revisions are blob SHAs.
type Publisher struct {
	client *gh.Client
	owner  string
	repo   string
}

func NewPublisher(settings Settings) (*Publisher, error) {
	if settings.Owner == "" || settings.Repo == "" {
		return nil, errors.New("repository owner and name are required")
	}

	client := gh.NewClient(nil)
	if settings.Token != "" {
		client = client.WithAuthToken(settings.Token)
	}
	if settings.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(settings.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		client.BaseURL = base
	}

	return &Publisher{client: client, owner: settings.Owner, repo: settings.Repo}, nil
}

func (p *Publisher) Revision(ctx context.Context, target publish.Target) (string, bool, error) {
	var opts *gh.RepositoryContentGetOptions
	if target.Branch != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: target.Branch}
	}

	file, _, resp, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, target.Path, opts)
	if err != nil {
		if statusOf(resp, err) == http.StatusNotFound {
			zerolog.Ctx(ctx).Debug().Str("path", target.Path).Msg("file does not exist yet")
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", target.Path, err)
	}
	if file == nil {
		return "", false, fmt.Errorf("%s is a directory", target.Path)
	}

	return file.GetSHA(), true, nil
}

func (p *Publisher) Write(
	ctx context.Context,
	target publish.Target,
	content []byte,
	message, revision string,
) (string, error) {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: content,
	}
	if target.Branch != "" {
		opts.Branch = gh.String(target.Branch)
	}

	var (
		res  *gh.RepositoryContentResponse
		resp *gh.Response
		err  error
	)
	if revision == "" {
		res, resp, err = p.client.Repositories.CreateFile(ctx, p.owner, p.repo, target.Path, opts)
	} else {
		opts.SHA = gh.String(revision)
		res, resp, err = p.client.Repositories.UpdateFile(ctx, p.owner, p.repo, target.Path, opts)
	}
	if err != nil {
		status := statusOf(resp, err)
		// 422 on create means the file appeared after we looked.
		if status == http.StatusConflict || (revision == "" && status == http.StatusUnprocessableEntity) {
			return "", fmt.Errorf("failed to write %s: %w", target.Path, publish.ErrConflict)
		}
		return "", fmt.Errorf("failed to write %s: %w", target.Path, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("repo", p.owner+"/"+p.repo).
		Str("path", target.Path).
		Msg("snapshot pushed")

	if res == nil || res.Content == nil {
		return "", nil
	}
	return res.Content.GetSHA(), nil
}

func statusOf(resp *gh.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}
