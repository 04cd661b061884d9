package releases

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"releasesite/internal/ghrel"
	"releasesite/internal/release"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncSourceLatest(t *testing.T) {
	var gotOwner, gotRepo string
	src := FuncSource{Fetch: func(ctx context.Context, owner, repo string) ([]release.Release, error) {
		gotOwner, gotRepo = owner, repo
		return []release.Release{{Name: "2.0"}, {Name: "1.0"}}, nil
	}}

	r, err := src.LatestRelease(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Equal(t, "2.0", r.Name)
	assert.Equal(t, "o", gotOwner)
	assert.Equal(t, "r", gotRepo)
}

func TestFuncSourceEmpty(t *testing.T) {
	src := FuncSource{Fetch: func(ctx context.Context, owner, repo string) ([]release.Release, error) {
		return nil, nil
	}}
	_, err := src.LatestRelease(context.Background(), "o", "r")
	require.ErrorIs(t, err, release.ErrNoReleases)
}

func TestFuncSourceFetchError(t *testing.T) {
	boom := errors.New("boom")
	src := FuncSource{Fetch: func(ctx context.Context, owner, repo string) ([]release.Release, error) {
		return nil, boom
	}}
	_, err := src.LatestRelease(context.Background(), "o", "r")
	require.ErrorIs(t, err, boom)

	err = src.DownloadAsset(context.Background(), release.Asset{}, "x")
	require.ErrorIs(t, err, errDownloadUnsupported)
}

func TestGitHubSourceDiscovery(t *testing.T) {
	var paths []string
	var base string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`{"repository_url": "` + base + `/repos/{owner}/{repo}"}`))
		case "/repos/o/r/releases":
			_, _ = w.Write([]byte(`[{"name": "1.0", "assets": []}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	base = srv.URL

	client := &ghrel.Client{HTTP: srv.Client(), BaseURL: srv.URL}

	direct := NewGitHubSource(client)
	r, err := direct.LatestRelease(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Equal(t, "1.0", r.Name)
	assert.Equal(t, []string{"/repos/o/r/releases"}, paths)

	paths = nil
	discovered := NewGitHubSource(client, WithDiscovery(true))
	r, err = discovered.LatestRelease(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Equal(t, "1.0", r.Name)
	assert.Equal(t, []string{"/", "/repos/o/r/releases"}, paths)
}
