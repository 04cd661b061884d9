package release

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNoReleases is returned when a repository has no published releases.
	ErrNoReleases = errors.New("no releases found")

	// ErrMalformedRelease is returned when release or asset fields required for
	// rendering are missing or invalid.
	ErrMalformedRelease = errors.New("malformed release")
)

// Release is a tagged, versioned publication of downloadable assets.
type Release struct {
	// Name is the human-readable version label shown on the page.
	Name string `json:"name" yaml:"name"`

	TagName string  `json:"tag_name" yaml:"tag_name"`
	Body    string  `json:"body" yaml:"body,omitempty"`
	Assets  []Asset `json:"assets" yaml:"assets"`
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name" yaml:"name"`
	Size               int64  `json:"size" yaml:"size"`
	BrowserDownloadURL string `json:"browser_download_url" yaml:"browser_download_url"`
}

// LocalName is the asset's filename reduced to its last path element, safe to
// join onto a local directory.
func (a Asset) LocalName() (string, error) {
	name := filepath.Base(filepath.Clean(a.Name))
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("asset name %q is not a usable file name", a.Name)
	}
	return name, nil
}

// Latest returns the first release of the list, which the releases API orders
// most recent first.
func Latest(releases []Release) (Release, error) {
	if len(releases) == 0 {
		return Release{}, ErrNoReleases
	}
	return releases[0], nil
}

// Validate reports ErrMalformedRelease if r cannot be rendered.
func (r Release) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: release has no name", ErrMalformedRelease)
	}
	for i, a := range r.Assets {
		switch {
		case a.Name == "":
			return fmt.Errorf("%w: asset %d has no name", ErrMalformedRelease, i)
		case a.BrowserDownloadURL == "":
			return fmt.Errorf("%w: asset %q has no browser_download_url", ErrMalformedRelease, a.Name)
		case a.Size < 0:
			return fmt.Errorf("%w: asset %q has negative size %d", ErrMalformedRelease, a.Name, a.Size)
		}
	}
	return nil
}

// FindAsset returns the asset with the given filename.
func (r Release) FindAsset(name string) (Asset, error) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("asset %q not found in release %q", name, r.Name)
}
