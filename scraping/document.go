package scraping

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Node wraps an element of a parsed page. A nil *Node is valid and behaves as an empty element,
// so lookups can be chained without checking every step.
type Node struct {
	n *html.Node
}

// Matcher filters elements during a lookup.
type Matcher func(*html.Node) bool

func ParseDocument(body []byte) (*Node, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Node{n: root}, nil
}

// HasClass matches elements carrying every given class.
func HasClass(classes ...string) Matcher {
	return func(n *html.Node) bool {
		tokens := strings.Fields(attr(n, "class"))
		for _, c := range classes {
			if !slices.Contains(tokens, c) {
				return false
			}
		}
		return true
	}
}

func AttrEquals(key, value string) Matcher {
	return func(n *html.Node) bool {
		return attr(n, key) == value
	}
}

func AttrContains(key, substr string) Matcher {
	return func(n *html.Node) bool {
		v, ok := lookupAttr(n, key)
		return ok && strings.Contains(v, substr)
	}
}

func HrefMatches(re *regexp.Regexp) Matcher {
	return func(n *html.Node) bool {
		return re.MatchString(attr(n, "href"))
	}
}

// Find returns the first descendant with the given tag that satisfies every matcher, nil otherwise.
func (d *Node) Find(tag string, matchers ...Matcher) *Node {
	if d == nil {
		return nil
	}
	var found *html.Node
	var traverse func(*html.Node) bool
	traverse = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if matches(c, tag, matchers) {
				found = c
				return true
			}
			if traverse(c) {
				return true
			}
		}
		return false
	}
	traverse(d.n)
	if found == nil {
		return nil
	}
	return &Node{n: found}
}

// FindAll returns every descendant with the given tag satisfying the matchers, in document order.
func (d *Node) FindAll(tag string, matchers ...Matcher) []*Node {
	if d == nil {
		return nil
	}
	var nodes []*Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if matches(c, tag, matchers) {
				nodes = append(nodes, &Node{n: c})
			}
			traverse(c)
		}
	}
	traverse(d.n)
	return nodes
}

// FindFirst tries each lookup in turn and returns the first hit.
func (d *Node) FindFirst(lookups ...func(*Node) *Node) *Node {
	for _, lookup := range lookups {
		if found := lookup(d); found != nil {
			return found
		}
	}
	return nil
}

// Rows returns the tr elements of a table, nested tables included.
func (d *Node) Rows() []*Node {
	return d.FindAll("tr")
}

// Cells returns the td children of a row.
func (d *Node) Cells() []*Node {
	return d.children("td")
}

// HeaderAndCells returns th and td children of a row in order.
func (d *Node) HeaderAndCells() []*Node {
	return d.children("th", "td")
}

func (d *Node) children(tags ...string) []*Node {
	if d == nil {
		return nil
	}
	var nodes []*Node
	for c := d.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && slices.Contains(tags, c.Data) {
			nodes = append(nodes, &Node{n: c})
		}
	}
	return nodes
}

func (d *Node) Tag() string {
	if d == nil {
		return ""
	}
	return d.n.Data
}

func (d *Node) Attr(key string) string {
	if d == nil {
		return ""
	}
	return attr(d.n, key)
}

// Text concatenates the text below the element and trims the result.
func (d *Node) Text() string {
	if d == nil {
		return ""
	}
	return strings.TrimSpace(d.RawText())
}

// RawText concatenates the text below the element as is.
func (d *Node) RawText() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(d.n)
	return sb.String()
}

// StrippedText trims every text fragment before joining them, so "\n[西]\n<a>友道</a>" gives "[西]友道".
func (d *Node) StrippedText() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(d.n)
	return sb.String()
}

func matches(n *html.Node, tag string, matchers []Matcher) bool {
	if n.Type != html.ElementNode || n.Data != tag {
		return false
	}
	for _, m := range matchers {
		if !m(n) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
