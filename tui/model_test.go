package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"releasesite/internal/release"
	"releasesite/internal/releases"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rels       []release.Release
	err        error
	downloaded []string
}

func (f *fakeSource) source() releases.Source {
	return releases.FuncSource{
		Fetch: func(ctx context.Context, owner, repo string) ([]release.Release, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return f.rels, f.err
		},
		Download: func(ctx context.Context, asset release.Asset, outPath string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.downloaded = append(f.downloaded, outPath)
			return nil
		},
	}
}

var sampleRelease = release.Release{
	Name: "DoomStruct 2.14.0",
	Body: "## Changes\n\n- Fixed things.",
	Assets: []release.Asset{
		{Name: "doomstruct-2.14.0.zip", Size: 2048, BrowserDownloadURL: "https://dl/zip"},
		{Name: "doomstruct-2.14.0.jar", Size: 2048000, BrowserDownloadURL: "https://dl/jar"},
	},
}

// step feeds msg through Update and runs the returned command once.
func step(t *testing.T, m model, msg tea.Msg) (model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm := next.(model)
	if cmd == nil {
		return mm, nil
	}
	return mm, cmd()
}

func TestLoadRelease(t *testing.T) {
	fs := &fakeSource{rels: []release.Release{sampleRelease}}
	m := newModel(fs.source(), "MTrop", "DoomStruct", "downloads")

	m, msg := step(t, m, startMsg{})
	require.True(t, m.loading)
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, loaded.err)
	assert.NotEmpty(t, loaded.notes)

	m, _ = step(t, m, loaded)
	assert.False(t, m.loading)
	require.NotNil(t, m.release)
	assert.Equal(t, "DoomStruct 2.14.0", m.release.Name)

	items := m.assets.Items()
	require.Len(t, items, 2)
	first := items[0].(assetItem)
	assert.Equal(t, "Download JAR", first.Title())
	assert.Equal(t, "doomstruct-2.14.0.jar  •  2000 KB", first.Description())
	assert.Equal(t, "https://dl/jar", first.asset.BrowserDownloadURL)
	assert.Equal(t, "Download ZIP", items[1].(assetItem).Title())

	assert.Contains(t, m.View(), "DoomStruct 2.14.0")
}

func TestLoadReleaseEmpty(t *testing.T) {
	fs := &fakeSource{}
	m := newModel(fs.source(), "o", "r", "")

	m, msg := step(t, m, startMsg{})
	errMsg, ok := msg.(loadedMsg)
	require.True(t, ok, "got %T", msg)
	assert.ErrorIs(t, errMsg.err, release.ErrNoReleases)

	m, _ = step(t, m, errMsg)
	assert.False(t, m.loading)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "no releases found")
	assert.Equal(t, "Failed.", m.status)
}

func TestLoadReleaseTransportError(t *testing.T) {
	fs := &fakeSource{err: errors.New("dial tcp: refused")}
	m := newModel(fs.source(), "o", "r", "")

	_, msg := step(t, m, startMsg{})
	errMsg, ok := msg.(loadedMsg)
	require.True(t, ok, "got %T", msg)
	require.Error(t, errMsg.err)
	assert.Contains(t, errMsg.err.Error(), "refused")
}

func TestRefreshRequiresRepository(t *testing.T) {
	fs := &fakeSource{}
	m := newModel(fs.source(), "", "r", "")

	m, msg := step(t, m, startMsg{})
	assert.Nil(t, msg)
	assert.Error(t, m.err)
	assert.False(t, m.loading)
}

func TestDownloadSelected(t *testing.T) {
	fs := &fakeSource{rels: []release.Release{sampleRelease}}
	dir := t.TempDir()
	m := newModel(fs.source(), "o", "r", dir)

	// Nothing loaded yet.
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Nil(t, msg)
	assert.Error(t, m.err)

	m, msg = step(t, m, startMsg{})
	m, _ = step(t, m, msg)

	m, msg = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.downloading)
	done, ok := msg.(savedMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, done.err)
	assert.Equal(t, filepath.Join(dir, "doomstruct-2.14.0.jar"), done.path)

	m, _ = step(t, m, done)
	assert.False(t, m.downloading)
	assert.Equal(t, "Downloaded: "+done.path, m.status)
	assert.Equal(t, []string{done.path}, fs.downloaded)
}

func TestFocusCycle(t *testing.T) {
	m := newModel((&fakeSource{}).source(), "o", "r", "")
	require.Equal(t, focusAssets, m.focus)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusOutput, m.focus)
	assert.True(t, m.output.Focused())

	// "q" is typed into the output field rather than quitting.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, "q", m.output.Value())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusAssets, m.focus)
	assert.False(t, m.output.Focused())
}

func TestCanceledLoad(t *testing.T) {
	fs := &fakeSource{err: context.Canceled}
	m := newModel(fs.source(), "o", "r", "")

	m, msg := step(t, m, startMsg{})
	m, _ = step(t, m, msg)
	assert.False(t, m.loading)
	assert.NoError(t, m.err)
	assert.Equal(t, "Reload canceled.", m.status)
}

// send feeds msg through Update without running the returned command.
func send(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestReloadIgnoresReplacedResult(t *testing.T) {
	fs := &fakeSource{rels: []release.Release{sampleRelease}}
	m := newModel(fs.source(), "o", "r", "")

	m, first := send(t, m, startMsg{})
	require.NotNil(t, first)
	m, second := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, second)

	stale, ok := first().(loadedMsg)
	require.True(t, ok)
	require.ErrorIs(t, stale.err, context.Canceled)

	m, _ = send(t, m, stale)
	assert.True(t, m.loading, "stale result must not end the running load")
	assert.Equal(t, "Loading latest release…", m.status)

	fresh, ok := second().(loadedMsg)
	require.True(t, ok)
	require.NoError(t, fresh.err)

	m, _ = send(t, m, fresh)
	assert.False(t, m.loading)
	require.NotNil(t, m.release)
	assert.Equal(t, "DoomStruct 2.14.0", m.release.Name)
	assert.Len(t, m.assets.Items(), 2)
}

func TestDownloadIgnoresReplacedResult(t *testing.T) {
	fs := &fakeSource{rels: []release.Release{sampleRelease}}
	dir := t.TempDir()
	m := newModel(fs.source(), "o", "r", dir)

	m, msg := step(t, m, startMsg{})
	m, _ = step(t, m, msg)

	m, first := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	m, second := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, second)

	stale := first().(savedMsg)
	require.ErrorIs(t, stale.err, context.Canceled)
	m, _ = send(t, m, stale)
	assert.True(t, m.downloading)

	done := second().(savedMsg)
	require.NoError(t, done.err)
	m, _ = send(t, m, done)
	assert.False(t, m.downloading)
	assert.Equal(t, "Downloaded: "+done.path, m.status)
	assert.Equal(t, []string{done.path}, fs.downloaded)
}

func TestDownloadUsesBaseName(t *testing.T) {
	rel := release.Release{Name: "1.0", Assets: []release.Asset{
		{Name: "../../escape.jar", Size: 1, BrowserDownloadURL: "https://dl/escape"},
	}}
	fs := &fakeSource{rels: []release.Release{rel}}
	dir := t.TempDir()
	m := newModel(fs.source(), "o", "r", dir)

	m, msg := step(t, m, startMsg{})
	m, _ = step(t, m, msg)

	_, msg = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	done, ok := msg.(savedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, filepath.Join(dir, "escape.jar"), done.path)
}

func TestJobReplace(t *testing.T) {
	var j job
	first, gen1 := j.begin(time.Minute)
	second, gen2 := j.begin(time.Minute)

	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())
	assert.NotEqual(t, gen1, gen2)

	assert.False(t, j.finish(gen1))
	assert.NoError(t, second.Err(), "stale finish leaves the current run alone")

	assert.True(t, j.finish(gen2))
	assert.ErrorIs(t, second.Err(), context.Canceled)
	assert.Nil(t, j.cancel)
	assert.False(t, j.finish(gen2))
}

func TestClipLines(t *testing.T) {
	assert.Equal(t, "a\nb", clipLines("a\nb", 2))
	assert.Equal(t, "a\nb\n…", clipLines("a\nb\nc", 2))
}
