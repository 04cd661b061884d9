package releases

import (
	"context"
	"errors"
	"fmt"

	"releasesite/internal/ghrel"
	"releasesite/internal/release"
)

var errDownloadUnsupported = errors.New("source does not support downloads")

type gitHubSource struct {
	client   *ghrel.Client
	discover bool
}

// Option configures the GitHub source.
type Option func(*gitHubSource)

// WithDiscovery resolves the releases URL from the API root's repository_url
// template before reading releases. This costs one extra request.
func WithDiscovery(on bool) Option {
	return func(s *gitHubSource) { s.discover = on }
}

// NewGitHubSource returns a releases.Source backed by internal/ghrel.
// A nil client means ghrel.NewClient().
func NewGitHubSource(client *ghrel.Client, opts ...Option) Source {
	if client == nil {
		client = ghrel.NewClient()
	}
	s := gitHubSource{client: client}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func (s gitHubSource) ListReleases(ctx context.Context, owner, repo string) ([]release.Release, error) {
	if !s.discover {
		return s.client.ListReleases(ctx, owner, repo)
	}

	repoURL, err := s.client.RepositoryURL(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("discover repository url: %w", err)
	}
	return s.client.ListReleasesAt(ctx, repoURL+"/releases")
}

func (s gitHubSource) LatestRelease(ctx context.Context, owner, repo string) (release.Release, error) {
	return latest(ctx, s, owner, repo)
}

func (s gitHubSource) DownloadAsset(ctx context.Context, asset release.Asset, outPath string) error {
	return s.client.DownloadAsset(ctx, asset, outPath)
}
