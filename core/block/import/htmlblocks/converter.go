package htmlblocks

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/anyproto/anytype-paste/pkg/lib/logging"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

var log = logging.Logger("anytype-htmlblocks")

// inlineTags are phrasing elements that are merged with neighbouring text
// into one paragraph.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true, "code": true,
	"data": true, "del": true, "dfn": true, "em": true, "font": true, "i": true, "ins": true,
	"kbd": true, "label": true, "mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strike": true, "strong": true, "sub": true, "sup": true, "time": true,
	"tt": true, "u": true, "var": true, "input": true,
}

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

type Converter struct {
	ids      model.IdAllocator
	sanitize bool
}

func NewConverter(ids model.IdAllocator, sanitize bool) *Converter {
	return &Converter{ids: ids, sanitize: sanitize}
}

// ConvertString preprocesses, optionally sanitizes and parses source, then converts its body.
func (c *Converter) ConvertString(source string) ([]*model.Block, error) {
	source = Preprocess(source)
	if c.sanitize {
		source = Sanitize(source)
	}
	doc, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return c.Convert(doc), nil
}

// Convert turns the children of the document body into blocks. An empty
// result means the caller has to fall back to the plain text of the payload.
func (c *Converter) Convert(doc *goquery.Document) []*model.Block {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		body = doc.Selection
	}
	blocks := c.convertContainer(body)
	log.Debugf("html converted to %d blocks", len(blocks))
	return blocks
}

func (c *Converter) convertContainer(sel *goquery.Selection) (blocks []*model.Block) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if t := ExtractNodes(run); !t.IsEmpty() {
			blocks = append(blocks, model.NewParagraph(c.ids.NewId(), t))
		}
		run = nil
	}
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		switch {
		case n.Type != html.TextNode && n.Type != html.ElementNode:
			return
		case isInline(n):
			run = append(run, n)
			return
		}
		flush()
		blocks = append(blocks, c.convertElement(s)...)
	})
	flush()
	return blocks
}

func (c *Converter) convertElement(s *goquery.Selection) []*model.Block {
	n := s.Get(0)
	tag := tagName(n)
	if level, ok := headingLevels[tag]; ok {
		// headers keep links only
		text := Extract(n).WithoutMarks(model.MarkLink)
		return []*model.Block{model.NewHeading(c.ids.NewId(), text, level)}
	}
	switch {
	case ignoredTags[tag]:
		return nil
	case tag == "p":
		text := Extract(n)
		if text.IsEmpty() && s.Find("br").Length() == 0 {
			return nil
		}
		b := model.NewParagraph(c.ids.NewId(), text)
		b.Content.(*model.Paragraph).TextAlign = textAlign(n)
		return []*model.Block{b}
	case tag == "blockquote":
		return []*model.Block{model.NewBlockquote(c.ids.NewId(), Extract(n))}
	case tag == "ul" || tag == "ol":
		return c.convertList(s, tag == "ol", 0)
	case tag == "li":
		return c.convertListItem(s, false, 0)
	case tag == "br":
		return []*model.Block{model.NewParagraph(c.ids.NewId(), model.Text{})}
	case tag == "pre":
		return []*model.Block{c.convertPre(s)}
	case tag == "hr":
		return []*model.Block{model.NewHorizontalRule(c.ids.NewId())}
	case tag == "img":
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return nil
		}
		return []*model.Block{model.NewImage(c.ids.NewId(), src, s.AttrOr("alt", ""))}
	case tag == "table":
		return c.convertTable(s)
	case hasBlockChild(n):
		return c.convertContainer(s)
	}

	text := Extract(n)
	if text.IsEmpty() && s.Find("br").Length() == 0 {
		return nil
	}
	b := model.NewParagraph(c.ids.NewId(), text)
	p := b.Content.(*model.Paragraph)
	p.TextAlign = textAlign(n)
	if tag != "div" && tag != "span" {
		p.BlockType = tag
	}
	return []*model.Block{b}
}

// convertList walks the children of a list. Lists nested without a wrapping
// li are one level deeper, other wrappers are looked through.
func (c *Converter) convertList(list *goquery.Selection, ordered bool, indent int) (blocks []*model.Block) {
	list.Children().Each(func(_ int, child *goquery.Selection) {
		switch tag := goquery.NodeName(child); tag {
		case "li":
			blocks = append(blocks, c.convertListItem(child, ordered, indent)...)
		case "ul", "ol":
			blocks = append(blocks, c.convertList(child, tag == "ol", indent+1)...)
		default:
			blocks = append(blocks, c.convertList(child, ordered, indent)...)
		}
	})
	return blocks
}

// convertListItem returns the item itself followed by the items of its nested lists.
func (c *Converter) convertListItem(li *goquery.Selection, ordered bool, indent int) (blocks []*model.Block) {
	liNode := li.Get(0)
	text := extract(liNode, extractOptions{skipLists: true})

	var checkbox *goquery.Selection
	li.Find(`input[type="checkbox"]`).EachWithBreak(func(_ int, in *goquery.Selection) bool {
		if closestAncestor(in.Get(0), "li") == liNode {
			checkbox = in
			return false
		}
		return true
	})
	switch {
	case checkbox != nil:
		checked := hasAttr(checkbox.Get(0), "checked")
		blocks = append(blocks, model.NewTask(c.ids.NewId(), text, checked))
	case !text.IsEmpty():
		blocks = append(blocks, model.NewListItem(c.ids.NewId(), text, ordered, indent))
	}

	li.Find("ul, ol").Each(func(_ int, nested *goquery.Selection) {
		if closestAncestor(nested.Get(0), "li", "ul", "ol") != liNode {
			return
		}
		blocks = append(blocks, c.convertList(nested, goquery.NodeName(nested) == "ol", indent+1)...)
	})
	return blocks
}

func (c *Converter) convertPre(pre *goquery.Selection) *model.Block {
	f := flattenNodes(childNodes(pre.Get(0)), extractOptions{preformatted: true})
	code := strings.TrimSuffix(string(f.text), "\n")

	lang := codeLanguage(pre.AttrOr("class", ""))
	if lang == "" {
		lang = codeLanguage(pre.Find("code").First().AttrOr("class", ""))
	}
	return model.NewCodeBlock(c.ids.NewId(), code, lang)
}

// convertTable produces one paragraph per row with cells separated by a tab.
func (c *Converter) convertTable(table *goquery.Selection) (blocks []*model.Block) {
	tableNode := table.Get(0)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if closestAncestor(tr.Get(0), "table") != tableNode {
			return
		}
		var cells []model.Text
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, Extract(cell.Get(0)))
		})
		row := joinTexts("\t", cells)
		if strings.TrimSpace(row.Text) == "" {
			return
		}
		blocks = append(blocks, model.NewParagraph(c.ids.NewId(), row))
	})
	return blocks
}

func joinTexts(sep string, texts []model.Text) model.Text {
	var (
		b     strings.Builder
		spans []model.Span
		off   int
	)
	for i, t := range texts {
		if i > 0 {
			b.WriteString(sep)
			off += len([]rune(sep))
		}
		b.WriteString(t.Text)
		for _, s := range t.Spans {
			spans = append(spans, model.NewSpan(s.Mark, s.Start+off, s.End+off))
		}
		off += t.Len()
	}
	return model.NewText(b.String(), spans...)
}

func codeLanguage(class string) string {
	for _, c := range strings.Fields(class) {
		for _, prefix := range []string{"language-", "lang-"} {
			if strings.HasPrefix(c, prefix) {
				return strings.TrimPrefix(c, prefix)
			}
		}
	}
	return ""
}

func textAlign(n *html.Node) string {
	align := parseStyle(attrValue(n.Attr, "style"))["text-align"]
	if align == "" {
		align = strings.ToLower(strings.TrimSpace(attrValue(n.Attr, "align")))
	}
	switch align {
	case "left", "center", "right", "justify":
		return align
	}
	return ""
}

func isInline(n *html.Node) bool {
	if n.Type == html.TextNode {
		return true
	}
	return n.Type == html.ElementNode && inlineTags[tagName(n)] && !hasBlockChild(n)
}

// hasBlockChild reports whether a direct child is a block element or an image.
func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (blockTags[tagName(c)] || tagName(c) == "img") {
			return true
		}
	}
	return false
}

func closestAncestor(n *html.Node, tags ...string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, t := range tags {
			if tagName(p) == t {
				return p
			}
		}
	}
	return nil
}
