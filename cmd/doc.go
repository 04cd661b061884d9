// Package cmd defines the Cobra command tree for the application.
// The root command launches the TUI by default, and subcommands render the
// download page once, serve it over HTTP, print the ordered asset links, list
// release tags and download a single asset of the latest release.
package cmd
