package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"releasesite/internal/release"
	"releasesite/internal/releases"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

type focusTarget int

const (
	focusAssets focusTarget = iota
	focusOutput
)

const focusCount = int(focusOutput) + 1

const helpText = "ctrl+r: reload   enter/ctrl+d: download   tab: next   shift+tab: prev   q: quit"

type assetItem struct {
	link  release.Link
	asset release.Asset
}

func (a assetItem) Title() string { return a.link.Title }
func (a assetItem) Description() string {
	return fmt.Sprintf("%s  •  %s", a.link.Filename, a.link.SizeLabel())
}
func (a assetItem) FilterValue() string { return a.link.Filename }

type model struct {
	src   releases.Source
	owner string
	repo  string

	output textinput.Model
	assets list.Model

	release *release.Release
	notes   string

	focus focusTarget

	loading     bool
	downloading bool
	spin        spinner.Model

	refresh  job
	download job

	status string
	err    error

	width  int
	height int
}

func newModel(src releases.Source, owner, repo, downloadDir string) model {
	output := textinput.New()
	output.Placeholder = "downloads"
	output.Prompt = "Output dir: "
	output.CharLimit = 2000
	output.Width = 40
	output.SetValue(downloadDir)

	l := list.New(nil, list.NewDefaultDelegate(), 40, 8)
	l.Title = "Assets"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return model{
		src:    src,
		owner:  owner,
		repo:   repo,
		output: output,
		assets: l,
		focus:  focusAssets,
		spin:   spinner.New(),
		status: "Ready",
	}
}

func (m *model) selectedAsset() (assetItem, bool) {
	it, ok := m.assets.SelectedItem().(assetItem)
	return it, ok
}

func (m *model) resolveOutput(asset release.Asset) (string, error) {
	name, err := asset.LocalName()
	if err != nil {
		return "", err
	}
	dir := strings.TrimSpace(m.output.Value())
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name), nil
}

func (m *model) validateRefresh() error {
	if strings.TrimSpace(m.owner) == "" || strings.TrimSpace(m.repo) == "" {
		return errors.New("owner and repo are required to load releases")
	}
	return nil
}

func (m *model) validateDownload() error {
	if m.release == nil {
		return errors.New("no release loaded (reload with ctrl+r)")
	}
	if _, ok := m.selectedAsset(); !ok {
		return errors.New("select an asset to download")
	}
	return nil
}

func (m *model) SetStatus(s string) {
	m.status = s
}

func (m *model) SetError(err error) {
	m.err = err
	if err != nil {
		m.status = "Failed."
	}
}

// ClearBanner drops the current error, keeping the status line.
func (m *model) ClearBanner() {
	m.err = nil
}

// job tracks one in-flight command so a newer one can replace it. Each run
// gets a generation; results tagged with an older one are stale.
type job struct {
	cancel context.CancelFunc
	gen    uint64
}

// begin cancels any previous run and returns a context bounded by limit
// together with the generation of the new run.
func (j *job) begin(limit time.Duration) (context.Context, uint64) {
	j.stop()
	ctx, cancel := context.WithTimeout(context.Background(), limit)
	j.cancel = cancel
	return ctx, j.gen
}

// stop cancels the current run and invalidates its results.
func (j *job) stop() {
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.gen++
}

// finish releases the run that produced gen. It reports false, leaving the
// job alone, when gen is stale.
func (j *job) finish(gen uint64) bool {
	if j.cancel == nil || gen != j.gen {
		return false
	}
	j.cancel()
	j.cancel = nil
	return true
}
