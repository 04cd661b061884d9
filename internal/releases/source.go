package releases

import (
	"context"

	"releasesite/internal/release"
)

// Source abstracts where releases come from and how their assets are fetched.
type Source interface {
	ListReleases(ctx context.Context, owner, repo string) ([]release.Release, error)
	LatestRelease(ctx context.Context, owner, repo string) (release.Release, error)
	DownloadAsset(ctx context.Context, asset release.Asset, outPath string) error
}

// FetchFunc reads the releases collection of owner/repo.
type FetchFunc func(ctx context.Context, owner, repo string) ([]release.Release, error)

// FuncSource adapts a plain fetch function into a Source. Downloads are
// delegated to Download when set and rejected otherwise.
type FuncSource struct {
	Fetch    FetchFunc
	Download func(ctx context.Context, asset release.Asset, outPath string) error
}

func (s FuncSource) ListReleases(ctx context.Context, owner, repo string) ([]release.Release, error) {
	return s.Fetch(ctx, owner, repo)
}

func (s FuncSource) LatestRelease(ctx context.Context, owner, repo string) (release.Release, error) {
	return latest(ctx, s, owner, repo)
}

func (s FuncSource) DownloadAsset(ctx context.Context, asset release.Asset, outPath string) error {
	if s.Download == nil {
		return errDownloadUnsupported
	}
	return s.Download(ctx, asset, outPath)
}

func latest(ctx context.Context, src Source, owner, repo string) (release.Release, error) {
	rels, err := src.ListReleases(ctx, owner, repo)
	if err != nil {
		return release.Release{}, err
	}
	return release.Latest(rels)
}
