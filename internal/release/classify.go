package release

import (
	"sort"
	"strings"
)

// Kind classifies an asset filename. Its integer value is the display rank:
// lower kinds sort first.
type Kind int

const (
	KindJAR Kind = iota
	KindSourceJAR
	KindJavadocJAR
	KindZIP
	KindSourceZIP
	KindJavadocZIP
)

const archiveExt = ".jar"

var titles = [...]string{
	KindJAR:        "Download JAR",
	KindSourceJAR:  "Download Source JAR",
	KindJavadocJAR: "Download Javadoc JAR",
	KindZIP:        "Download ZIP",
	KindSourceZIP:  "Download Source ZIP",
	KindJavadocZIP: "Download Javadoc ZIP",
}

// Classify maps a filename to exactly one Kind.
//
// Archives (".jar") are split on "-sources" then "-javadoc"; everything else is
// split on "-src" then "-javadocs". The first marker found wins.
func Classify(filename string) Kind {
	if strings.HasSuffix(filename, archiveExt) {
		switch {
		case strings.Contains(filename, "-sources"):
			return KindSourceJAR
		case strings.Contains(filename, "-javadoc"):
			return KindJavadocJAR
		default:
			return KindJAR
		}
	}
	switch {
	case strings.Contains(filename, "-src"):
		return KindSourceZIP
	case strings.Contains(filename, "-javadocs"):
		return KindJavadocZIP
	default:
		return KindZIP
	}
}

// Rank is the sort key of the filename.
func Rank(filename string) int { return int(Classify(filename)) }

// Title is the link title for the filename.
func Title(filename string) string { return Classify(filename).Title() }

func (k Kind) Title() string {
	if k < KindJAR || k > KindJavadocZIP {
		return ""
	}
	return titles[k]
}

func (k Kind) String() string { return k.Title() }

// SortAssets returns a copy of assets ordered by ascending rank. Assets of equal
// rank keep their original relative order.
func SortAssets(assets []Asset) []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	sort.SliceStable(out, func(i, j int) bool {
		return Rank(out[i].Name) < Rank(out[j].Name)
	})
	return out
}

// SizeKB converts a byte count to whole kilobytes, truncating.
func SizeKB(bytes int64) int64 {
	if bytes < 0 {
		return 0
	}
	return bytes / 1024
}
