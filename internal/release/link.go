package release

import "fmt"

// Link is the rendered view of one asset.
type Link struct {
	Title    string `json:"title" yaml:"title"`
	Filename string `json:"filename" yaml:"filename"`
	SizeKB   int64  `json:"size_kb" yaml:"size_kb"`
	URL      string `json:"url" yaml:"url"`
}

// SizeLabel formats the size the way the page shows it, e.g. "2000 KB".
func (l Link) SizeLabel() string {
	return fmt.Sprintf("%d KB", l.SizeKB)
}

// Links validates r and returns its assets in display order.
func Links(r Release) ([]Link, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	sorted := SortAssets(r.Assets)
	links := make([]Link, 0, len(sorted))
	for _, a := range sorted {
		links = append(links, Link{
			Title:    Title(a.Name),
			Filename: a.Name,
			SizeKB:   SizeKB(a.Size),
			URL:      a.BrowserDownloadURL,
		})
	}
	return links, nil
}
