package page

import (
	"strings"

	"golang.org/x/net/html"
)

// match reports whether n matches a "#id", ".class" or "tag" selector.
func match(n *html.Node, sel string) bool {
	if n.Type != html.ElementNode || sel == "" {
		return false
	}
	switch sel[0] {
	case '#':
		return attr(n, "id") == sel[1:]
	case '.':
		return hasClass(n, sel[1:])
	default:
		return strings.EqualFold(n.Data, sel)
	}
}

// query returns the first element under root, in document order, matching sel.
func query(root *html.Node, sel string) *html.Node {
	if match(root, sel) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := query(c, sel); n != nil {
			return n
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// removeClass drops class from n's class list, removing the attribute when
// nothing is left.
func removeClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		kept := make([]string, 0, 4)
		for _, c := range strings.Fields(a.Val) {
			if c != class {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
		} else {
			n.Attr[i].Val = strings.Join(kept, " ")
		}
		return
	}
}
