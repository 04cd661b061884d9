// Package site wires a release source to the page renderer. A Renderer performs
// one page load: one read of the latest release followed by rendering into the
// page template. The HTTP handler treats every GET as a page load and falls back
// to the unrendered page, with the release section still hidden, on failure.
package site
