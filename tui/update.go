package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"releasesite/internal/release"
	"releasesite/internal/releases"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	loadTimeout     = 30 * time.Second
	downloadTimeout = 2 * time.Minute
)

// startMsg triggers the first load once the program is running.
type startMsg struct{}

// loadedMsg carries the outcome of one release read.
type loadedMsg struct {
	gen   uint64
	rel   release.Release
	links []release.Link
	notes string
	err   error
}

// savedMsg carries the outcome of one asset download.
type savedMsg struct {
	gen  uint64
	path string
	err  error
}

func fetchLatest(ctx context.Context, gen uint64, src releases.Source, owner, repo string) tea.Cmd {
	return func() tea.Msg {
		rel, err := src.LatestRelease(ctx, owner, repo)
		if err != nil {
			return loadedMsg{gen: gen, err: fmt.Errorf("load release: %w", err)}
		}
		links, err := release.Links(rel)
		if err != nil {
			return loadedMsg{gen: gen, err: fmt.Errorf("load release: %w", err)}
		}
		return loadedMsg{gen: gen, rel: rel, links: links, notes: renderNotes(rel.Body)}
	}
}

// renderNotes renders the release body as terminal markdown, falling back to
// the raw text.
func renderNotes(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	out, err := glamour.Render(body, "dark")
	if err != nil {
		return body
	}
	return strings.TrimSpace(out)
}

func saveAsset(ctx context.Context, gen uint64, src releases.Source, asset release.Asset, path string) tea.Cmd {
	return func() tea.Msg {
		if err := src.DownloadAsset(ctx, asset, path); err != nil {
			return savedMsg{gen: gen, path: path, err: fmt.Errorf("download asset: %w", err)}
		}
		return savedMsg{gen: gen, path: path}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg { return startMsg{} })
}

// reload replaces any in-flight read or download with a fresh read.
func (m *model) reload() tea.Cmd {
	m.download.stop()
	m.downloading = false
	m.refresh.stop()
	m.loading = false

	if err := m.validateRefresh(); err != nil {
		m.SetError(err)
		return nil
	}

	m.ClearBanner()
	m.loading = true
	m.SetStatus("Loading latest release…")
	ctx, gen := m.refresh.begin(loadTimeout)
	return fetchLatest(ctx, gen, m.src, m.owner, m.repo)
}

func (m *model) save() tea.Cmd {
	if err := m.validateDownload(); err != nil {
		m.SetError(err)
		return nil
	}

	it, _ := m.selectedAsset()
	path, err := m.resolveOutput(it.asset)
	if err != nil {
		m.SetError(err)
		return nil
	}

	m.ClearBanner()
	m.downloading = true
	m.SetStatus("Downloading " + it.asset.Name + "…")
	ctx, gen := m.download.begin(downloadTimeout)
	return saveAsset(ctx, gen, m.src, it.asset, path)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return m, m.reload()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.assets.SetSize(max((msg.Width-4)*2/3, minListW), max(msg.Height-14, 6))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadedMsg:
		// A replaced read reports after its successor started.
		if !m.refresh.finish(msg.gen) {
			return m, nil
		}
		m.loading = false
		switch {
		case errors.Is(msg.err, context.Canceled):
			m.SetStatus("Reload canceled.")
		case msg.err != nil:
			m.SetError(msg.err)
		default:
			m.show(msg)
		}
		return m, nil

	case savedMsg:
		if !m.download.finish(msg.gen) {
			return m, nil
		}
		m.downloading = false
		switch {
		case errors.Is(msg.err, context.Canceled):
			m.SetStatus("Download canceled.")
		case msg.err != nil:
			m.SetError(msg.err)
		default:
			m.SetStatus("Downloaded: " + msg.path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// q is plain text while the output field has focus.
	if key == "ctrl+c" || (key == "q" && m.focus != focusOutput) {
		m.refresh.stop()
		m.download.stop()
		return m, tea.Quit
	}

	switch key {
	case "esc":
		m.ClearBanner()
		m.SetStatus("Ready")
		return m, nil
	case "ctrl+r":
		return m, m.reload()
	case "ctrl+d":
		return m, m.save()
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusOutput {
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	if key == "enter" {
		return m, m.save()
	}
	m.assets, cmd = m.assets.Update(msg)
	return m, cmd
}

// show replaces the asset list with the links of a freshly loaded release.
func (m *model) show(msg loadedMsg) {
	rel := msg.rel
	m.release = &rel
	m.notes = msg.notes

	byName := make(map[string]release.Asset, len(rel.Assets))
	for _, a := range rel.Assets {
		byName[a.Name] = a
	}
	items := make([]list.Item, len(msg.links))
	for i, l := range msg.links {
		items[i] = assetItem{link: l, asset: byName[l.Filename]}
	}
	m.assets.SetItems(items)
	m.assets.Select(0)

	if len(items) == 0 {
		m.SetStatus("Release " + rel.Name + " has no assets.")
		return
	}
	m.SetStatus(fmt.Sprintf("Loaded %s (%d assets)", rel.Name, len(items)))
}

func (m *model) cycleFocus(delta int) {
	m.focus = focusTarget((int(m.focus) + delta + focusCount) % focusCount)
	if m.focus == focusOutput {
		m.output.Focus()
	} else {
		m.output.Blur()
	}
}
