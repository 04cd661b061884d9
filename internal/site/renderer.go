package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"releasesite/internal/page"
	"releasesite/internal/release"
	"releasesite/internal/releases"
)

// Renderer renders the latest release of Owner/Repo into a page template.
type Renderer struct {
	Source  releases.Source
	Owner   string
	Repo    string
	Targets page.Targets

	mu       sync.RWMutex
	template []byte
}

// NewRenderer returns a Renderer using the built-in page and targets.
func NewRenderer(src releases.Source, owner, repo string) *Renderer {
	return &Renderer{
		Source:   src,
		Owner:    owner,
		Repo:     repo,
		Targets:  page.DefaultTargets(),
		template: page.DefaultTemplate(),
	}
}

// SetTemplate replaces the page template.
func (r *Renderer) SetTemplate(b []byte) {
	r.mu.Lock()
	r.template = b
	r.mu.Unlock()
}

// LoadTemplate reads the page template from path.
func (r *Renderer) LoadTemplate(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	r.SetTemplate(b)
	return nil
}

func (r *Renderer) currentTemplate() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.template
}

// Fetch reads the latest release.
func (r *Renderer) Fetch(ctx context.Context) (release.Release, error) {
	rel, err := r.Source.LatestRelease(ctx, r.Owner, r.Repo)
	if err != nil {
		return release.Release{}, fmt.Errorf("latest release of %s/%s: %w", r.Owner, r.Repo, err)
	}
	return rel, nil
}

// Render performs one page load and writes the rendered page to w. Nothing is
// written on error.
func (r *Renderer) Render(ctx context.Context, w io.Writer) error {
	rel, err := r.Fetch(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := page.RenderPage(bytes.NewReader(r.currentTemplate()), &buf, rel, r.Targets); err != nil {
		return fmt.Errorf("render %s/%s: %w", r.Owner, r.Repo, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Fallback writes the template as is.
func (r *Renderer) Fallback(w io.Writer) error {
	_, err := w.Write(r.currentTemplate())
	return err
}
