// Package version orders release tags for display.
package version

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizeTag strips a single leading "v" or "V" from a git tag for display.
//
// Examples:
//   - "v0.6.5" -> "0.6.5"
//   - "V1.2"   -> "1.2"
//   - "1.2"    -> "1.2"
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if len(tag) > 1 && (tag[0] == 'v' || tag[0] == 'V') {
		return tag[1:]
	}
	return tag
}

// parsed is a version-like string: dot-separated numeric core with an optional
// "-" prerelease suffix. ok is false for anything else.
type parsed struct {
	ok   bool
	core []int
	pre  []string // nil for a release
}

func parse(s string) parsed {
	s = strings.TrimSpace(s)
	if s == "" || s[0] < '0' || s[0] > '9' {
		return parsed{}
	}

	main, pre, hasPre := strings.Cut(s, "-")

	var p parsed
	for _, seg := range strings.Split(main, ".") {
		n, ok := number(seg)
		if !ok {
			return parsed{}
		}
		p.core = append(p.core, n)
	}
	if hasPre {
		p.pre = []string{}
		if pre != "" {
			p.pre = strings.Split(pre, ".")
		}
	}
	p.ok = true
	return p
}

// number parses an all-digit string.
func number(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// cmpPre follows semver precedence for prerelease identifiers: numeric
// identifiers sort below alphanumeric ones and a shorter list sorts first.
func cmpPre(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		an, aNum := number(a[i])
		bn, bNum := number(b[i])
		switch {
		case aNum && bNum:
			if c := cmpInt(an, bn); c != 0 {
				return c
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
	}
	return cmpInt(len(a), len(b))
}

// Compare orders two display versions, returning -1, 0 or 1.
//
// Version-like values (leading digit) outrank anything else and compare by
// numeric core, missing segments counting as 0, then release over prerelease.
// Two non-version values compare lexically.
func Compare(a, b string) int {
	pa, pb := parse(a), parse(b)
	switch {
	case pa.ok && !pb.ok:
		return 1
	case !pa.ok && pb.ok:
		return -1
	case !pa.ok && !pb.ok:
		return strings.Compare(a, b)
	}

	for i := 0; i < len(pa.core) || i < len(pb.core); i++ {
		var av, bv int
		if i < len(pa.core) {
			av = pa.core[i]
		}
		if i < len(pb.core) {
			bv = pb.core[i]
		}
		if c := cmpInt(av, bv); c != 0 {
			return c
		}
	}

	switch {
	case pa.pre == nil && pb.pre == nil:
		return 0
	case pa.pre == nil:
		return 1
	case pb.pre == nil:
		return -1
	}
	return cmpPre(pa.pre, pb.pre)
}

// Greater reports whether a sorts ahead of b in descending order.
func Greater(a, b string) bool { return Compare(a, b) > 0 }

// Tag is a release tag prepared for display.
type Tag struct {
	Raw     string
	Display string
	Latest  bool
}

// SortTags normalizes tags and orders them newest first. The first entry is
// marked Latest. Ties on the display value fall back to the raw tag.
func SortTags(tags []string) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag{Raw: t, Display: NormalizeTag(t)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := Compare(out[i].Display, out[j].Display); c != 0 {
			return c > 0
		}
		return out[i].Raw > out[j].Raw
	})
	if len(out) > 0 {
		out[0].Latest = true
	}
	return out
}
