package htmlblocks

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
	"github.com/anyproto/anytype-paste/util/slice"
)

var reWhitespace = regexp.MustCompile(`[ \t\n\r\f]+`)

// blockTags are the elements that always end on a new line of the flattened text.
var blockTags = map[string]bool{
	"p": true, "div": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "pre": true, "hr": true,
	"table": true, "tr": true, "th": true, "td": true,
}

var ignoredTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "title": true, "meta": true, "link": true,
}

// fragment is the flattened contribution of a subtree. Span offsets are
// relative to the start of the fragment.
type fragment struct {
	text  []rune
	spans []model.Span
}

func (f *fragment) append(o fragment) {
	off := len(f.text)
	f.text = append(f.text, o.text...)
	for _, s := range o.spans {
		f.spans = append(f.spans, model.NewSpan(s.Mark, s.Start+off, s.End+off))
	}
}

func (f *fragment) lastRune() rune {
	if len(f.text) == 0 {
		return 0
	}
	return f.text[len(f.text)-1]
}

// mark covers the whole fragment with m. The outer span wins: nested spans
// with the same mark are dropped.
func (f *fragment) mark(m model.Mark) {
	if len(f.text) == 0 {
		return
	}
	f.spans = slice.Filter(f.spans, func(s model.Span) bool {
		return s.Mark != m
	})
	f.spans = append(f.spans, model.NewSpan(m, 0, len(f.text)-1))
}

type extractOptions struct {
	// preformatted keeps text nodes verbatim
	preformatted bool
	// skipLists leaves nested ul/ol out, they are converted as separate items
	skipLists bool
}

// Extract flattens the subtree of root into text with inline spans. A mark
// resolved for root itself covers the whole text.
func Extract(root *html.Node) model.Text {
	return extract(root, extractOptions{})
}

func extract(root *html.Node, opts extractOptions) model.Text {
	if root.Type == html.ElementNode && tagName(root) == "pre" {
		opts.preformatted = true
	}
	f := flattenNodes(childNodes(root), opts)
	if root.Type == html.ElementNode {
		if m, ok := ResolveAttribution(tagName(root), root.Attr); ok {
			f.mark(m)
		}
	}
	return finish(f)
}

// ExtractNodes flattens a run of sibling nodes as if they were one paragraph.
func ExtractNodes(nodes []*html.Node) model.Text {
	return finish(flattenNodes(nodes, extractOptions{}))
}

func finish(f fragment) model.Text {
	return model.NewText(string(f.text), f.spans...).TrimSpace()
}

func flattenNodes(nodes []*html.Node, opts extractOptions) fragment {
	var f fragment
	for i, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if opts.preformatted {
				f.text = append(f.text, []rune(n.Data)...)
				continue
			}
			if isBlank(n.Data) && (i > 0 && isBlockNode(nodes[i-1]) || i < len(nodes)-1 && isBlockNode(nodes[i+1])) {
				continue
			}
			s := reWhitespace.ReplaceAllString(n.Data, " ")
			if last := f.lastRune(); last == ' ' || last == '\n' {
				s = strings.TrimPrefix(s, " ")
			}
			f.text = append(f.text, []rune(s)...)
		case html.ElementNode:
			f.append(flattenElement(n, opts))
		}
	}
	return f
}

func flattenElement(n *html.Node, opts extractOptions) fragment {
	tag := tagName(n)
	switch {
	case tag == "br":
		return fragment{text: []rune{'\n'}}
	case ignoredTags[tag], tag == "img", tag == "input":
		return fragment{}
	case opts.skipLists && (tag == "ul" || tag == "ol"):
		return fragment{}
	case tag == "pre":
		opts.preformatted = true
	}

	f := flattenNodes(childNodes(n), opts)
	if m, ok := ResolveAttribution(tag, n.Attr); ok {
		f.mark(m)
	}
	if blockTags[tag] && (len(f.text) == 0 || f.lastRune() != '\n') {
		f.text = append(f.text, '\n')
	}
	return f
}

func childNodes(n *html.Node) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = append(res, c)
	}
	return res
}

func tagName(n *html.Node) string {
	return strings.ToLower(n.Data)
}

func isBlockNode(n *html.Node) bool {
	return n.Type == html.ElementNode && blockTags[tagName(n)]
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t\n\r\f") == ""
}
