package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SanitizeLinks returns the inner markup of sel reduced to text and anchors. Anchors
// keep only an absolute href, script and style are dropped, every other element is
// replaced by its children. sel itself is not modified.
func SanitizeLinks(sel *goquery.Selection, base *url.URL) string {
	root := sel.First().Clone()

	nodes := root.Find("*").Nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		switch n.DataAtom {
		case atom.A:
			href := ""
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = resolveURL(base, attr.Val)
				}
			}
			if href == "" {
				unwrapNode(n)
				continue
			}
			n.Attr = []html.Attribute{{Key: "href", Val: href}}
		case atom.Script, atom.Style, atom.Noscript:
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
		default:
			unwrapNode(n)
		}
	}

	markup, err := root.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(markup)
}

func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for child := n.FirstChild; child != nil; child = n.FirstChild {
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
}
