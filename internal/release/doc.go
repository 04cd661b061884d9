// Package release models a GitHub release as the download page sees it and holds the
// pure logic behind the page: asset classification, display ordering, link titles and
// size formatting. Nothing in this package performs I/O.
package release
