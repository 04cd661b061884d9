// Package ghrel is the GitHub REST transport used by the CLI, TUI and web page.
// It lists a repository's releases with a single unauthenticated GET, optionally
// resolves the releases URL from the API root's repository_url template, and
// downloads release assets atomically to disk.
package ghrel
