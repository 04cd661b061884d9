package tui

import (
	"releasesite/internal/releases"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(src releases.Source, owner, repo, downloadDir string) error {
	m := newModel(src, owner, repo, downloadDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
