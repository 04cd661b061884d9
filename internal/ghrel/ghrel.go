package ghrel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"releasesite/internal/release"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	Op     string
	Status string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status=%s body=%s", e.Op, e.Status, e.Body)
}

// Client reads from the GitHub REST API.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// NewClient returns a Client for the public API with a fixed,
// request-wide timeout.
func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		BaseURL: DefaultBaseURL,
	}
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// ReleasesURL is the releases collection URL for owner/repo.
func (c *Client) ReleasesURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL(), owner, repo)
}

// ListReleases fetches the releases of owner/repo, most recent first.
func (c *Client) ListReleases(ctx context.Context, owner, repo string) ([]release.Release, error) {
	return c.ListReleasesAt(ctx, c.ReleasesURL(owner, repo))
}

// ListReleasesAt fetches a releases collection from an already resolved URL.
func (c *Client) ListReleasesAt(ctx context.Context, releasesURL string) ([]release.Release, error) {
	body, err := c.get(ctx, "fetch releases", releasesURL)
	if err != nil {
		return nil, err
	}

	rels, err := decodeReleases(body)
	if err != nil {
		return nil, fmt.Errorf("decode releases JSON: %w", err)
	}
	return rels, nil
}

// apiRoot models the single field of GET / used for URL discovery.
type apiRoot struct {
	RepositoryURL string `json:"repository_url"`
}

// RepositoryURL reads the API root and expands its repository_url template
// for owner/repo, e.g. "https://api.github.com/repos/{owner}/{repo}".
func (c *Client) RepositoryURL(ctx context.Context, owner, repo string) (string, error) {
	body, err := c.get(ctx, "fetch api root", c.baseURL()+"/")
	if err != nil {
		return "", err
	}

	var root apiRoot
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("decode api root JSON: %w", err)
	}
	if root.RepositoryURL == "" {
		return "", errors.New("api root has no repository_url")
	}

	u := strings.NewReplacer("{owner}", owner, "{repo}", repo).Replace(root.RepositoryURL)
	return u, nil
}

// errBodyLimit bounds the excerpt kept in a StatusError.
const errBodyLimit = 64 << 10

// open issues one GET and returns the response only when it is a 200.
// The caller closes the body.
func (c *Client) open(ctx context.Context, op, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	resp.Body.Close()
	return nil, &StatusError{Op: op, Status: resp.Status, Code: resp.StatusCode, Body: string(excerpt)}
}

func (c *Client) get(ctx context.Context, op, url string) ([]byte, error) {
	resp, err := c.open(ctx, op, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	return b, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// envelope is the {"data": [...]} wrapper served by the JSONP flavour of
// the releases endpoint.
type envelope struct {
	Data []release.Release `json:"data"`
}

// decodeReleases accepts a bare JSON array or the data envelope.
func decodeReleases(b []byte) ([]release.Release, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		if env.Data == nil {
			return nil, errors.New(`object body has no "data" array`)
		}
		return env.Data, nil
	}

	var rels []release.Release
	if err := json.Unmarshal(trimmed, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}
