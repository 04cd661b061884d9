// Package tui implements the Bubble Tea terminal UI for the application.
// It loads the latest release on start, lists its assets in download-page
// order with their titles and sizes, shows the release notes, and downloads
// the selected asset into an editable output directory.
package tui
