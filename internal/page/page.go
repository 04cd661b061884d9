package page

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"releasesite/internal/release"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrTargetNotFound is returned when a target selector matches nothing.
	ErrTargetNotFound = errors.New("target element not found")
	// ErrTargetOverlap is returned when the version element contains the
	// links container; writing the label would drop the rendered links.
	ErrTargetOverlap = errors.New("version target contains links target")
)

//go:embed templates/index.html
var defaultTemplate []byte

// DefaultTemplate returns the built-in page.
func DefaultTemplate() []byte {
	out := make([]byte, len(defaultTemplate))
	copy(out, defaultTemplate)
	return out
}

const (
	blockClass = "w3-col l4 m6 w3-center"
	linkClass  = "w3-button w3-round-large w3-margin download-link"
	nameClass  = "w3-small"
)

// Targets names the elements Render writes into. Version must not be the
// Links element or one of its ancestors.
type Targets struct {
	Section     string
	Version     string
	Links       string
	HiddenClass string
}

// DefaultTargets matches the built-in page.
func DefaultTargets() Targets {
	return Targets{
		Section:     "#releases",
		Version:     "#release-version",
		Links:       ".site-release-links",
		HiddenClass: "site-start-hidden",
	}
}

type resolved struct {
	section, version, links *html.Node
}

func (t Targets) resolve(doc *html.Node) (resolved, error) {
	var r resolved
	for _, tgt := range []struct {
		sel string
		dst **html.Node
	}{
		{t.Section, &r.section},
		{t.Version, &r.version},
		{t.Links, &r.links},
	} {
		n := query(doc, tgt.sel)
		if n == nil {
			return r, fmt.Errorf("%w: %q", ErrTargetNotFound, tgt.sel)
		}
		*tgt.dst = n
	}
	for n := r.links; n != nil; n = n.Parent {
		if n == r.version {
			return r, fmt.Errorf("%w: %q contains %q", ErrTargetOverlap, t.Version, t.Links)
		}
	}
	return r, nil
}

// Render writes rel into doc. On error doc is not modified.
func Render(doc *html.Node, rel release.Release, t Targets) error {
	els, err := t.resolve(doc)
	if err != nil {
		return err
	}

	links, err := release.Links(rel)
	if err != nil {
		return err
	}

	for _, l := range links {
		els.links.AppendChild(block(l))
	}

	for c := els.version.FirstChild; c != nil; c = els.version.FirstChild {
		els.version.RemoveChild(c)
	}
	els.version.AppendChild(text(rel.Name))

	if t.HiddenClass != "" {
		removeClass(els.section, t.HiddenClass)
	}
	return nil
}

// RenderPage parses the page read from r, renders rel into it and writes the
// result to w. Nothing is written when rendering fails.
func RenderPage(r io.Reader, w io.Writer, rel release.Release, t Targets) error {
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}
	if err := Render(doc, rel, t); err != nil {
		return err
	}
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// block builds
//
//	<div class="w3-col ..."><a href=URL class="... download-link">
//	  Title<br/><span class="w3-small">Filename</span><br/>N KB
//	</a></div>
func block(l release.Link) *html.Node {
	a := element(atom.A, html.Attribute{Key: "href", Val: l.URL}, html.Attribute{Key: "class", Val: linkClass})
	a.AppendChild(text(l.Title))
	a.AppendChild(element(atom.Br))

	name := element(atom.Span, html.Attribute{Key: "class", Val: nameClass})
	name.AppendChild(text(l.Filename))
	a.AppendChild(name)

	a.AppendChild(element(atom.Br))
	a.AppendChild(text(l.SizeLabel()))

	div := element(atom.Div, html.Attribute{Key: "class", Val: blockClass})
	div.AppendChild(a)
	return div
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
