package anymark

import (
	"strings"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
	"github.com/anyproto/anytype-paste/util/text"
)

// Block is a node produced by the markdown parser. Ids are unique within one
// Parse call only. Content is nil for node kinds that have no block rule.
type Block struct {
	Id      string
	Kind    string
	Content model.Content
}

type container int

const (
	containerQuote container = iota + 1
	containerItem
)

type textBlock struct {
	kind  string
	build func(t model.Text) model.Content

	text  strings.Builder
	n     int
	spans []model.Span
	// starts of the marks that are open, innermost last
	starts []markStart
	// starts of raw html inline tags, by tag
	raw map[string][]markStart

	task    bool
	checked bool
	// emitted block, rebuilt when a carried mark closes after the block
	block *Block
}

// markStart is where an open mark begins. carried holds the starts of the
// same mark in paragraphs split off before this one.
type markStart struct {
	pos     int
	carried []carriedStart
}

type carriedStart struct {
	tb  *textBlock
	pos int
}

func (tb *textBlock) content() model.Text {
	return model.NewText(tb.text.String(), tb.spans...).TrimSpace()
}

// closeMark ends the mark opened at s in tb and in every block it was carried from.
func (tb *textBlock) closeMark(s markStart, m model.Mark) {
	if tb.n > s.pos {
		tb.spans = append(tb.spans, model.NewSpan(m, s.pos, tb.n-1))
	}
	for _, c := range s.carried {
		if c.tb.n <= c.pos {
			continue
		}
		c.tb.spans = append(c.tb.spans, model.NewSpan(m, c.pos, c.tb.n-1))
		if c.tb.block != nil {
			c.tb.block.Content = c.tb.build(c.tb.content())
		}
	}
}

// continued returns the start of the same mark in a block split off from tb.
func (s markStart) continued(tb *textBlock) markStart {
	carried := make([]carriedStart, 0, len(s.carried)+1)
	carried = append(carried, s.carried...)
	return markStart{carried: append(carried, carriedStart{tb: tb, pos: s.pos})}
}

// blocksRenderer collects blocks while the goldmark AST is walked. At most one
// text block is open at a time; containers decide what kind of text block a
// paragraph inside them opens.
type blocksRenderer struct {
	ids       model.IdAllocator
	softLimit int

	blocks     []*Block
	cur        *textBlock
	containers []container
	// ordered flags of the open lists, innermost last
	lists []bool
	// images found inside the open text block, emitted right after it
	images []*Block
}

func newBlocksRenderer(ids model.IdAllocator, softLimit int) *blocksRenderer {
	return &blocksRenderer{ids: ids, softLimit: softLimit}
}

func (r *blocksRenderer) GetBlocks() []*Block {
	r.CloseTextBlock()
	return r.blocks
}

func (r *blocksRenderer) top() container {
	if len(r.containers) == 0 {
		return 0
	}
	return r.containers[len(r.containers)-1]
}

func (r *blocksRenderer) openTextBlock(kind string, build func(t model.Text) model.Content) *textBlock {
	r.CloseTextBlock()
	r.cur = &textBlock{kind: kind, build: build}
	return r.cur
}

func (r *blocksRenderer) OpenParagraph() {
	r.openTextBlock("Paragraph", func(t model.Text) model.Content {
		return &model.Paragraph{Text: t}
	})
}

func (r *blocksRenderer) OpenHeading(level int) {
	if level > 6 {
		level = 6
	}
	r.openTextBlock("Heading", func(t model.Text) model.Content {
		// markup inside headers is dropped except links
		return &model.Heading{Text: t.WithoutMarks(model.MarkLink), Level: level}
	})
}

func (r *blocksRenderer) openQuote() {
	r.openTextBlock("Blockquote", func(t model.Text) model.Content {
		return &model.Blockquote{Text: t}
	})
}

func (r *blocksRenderer) openItem() {
	var ordered bool
	indent := len(r.lists) - 1
	if indent < 0 {
		indent = 0
	} else {
		ordered = r.lists[indent]
	}
	tb := r.openTextBlock("ListItem", nil)
	tb.build = func(t model.Text) model.Content {
		if tb.task {
			return &model.Task{Text: t, Checked: tb.checked}
		}
		return &model.ListItem{Text: t, Ordered: ordered, Indent: indent}
	}
}

// ensureTextBlock returns the open text block or opens the one the innermost container expects.
func (r *blocksRenderer) ensureTextBlock() *textBlock {
	if r.cur == nil {
		switch r.top() {
		case containerQuote:
			r.openQuote()
		case containerItem:
			r.openItem()
		default:
			r.OpenParagraph()
		}
	}
	return r.cur
}

// StartParagraph opens a paragraph, or separates a following paragraph of a
// quote or list item with a new line.
func (r *blocksRenderer) StartParagraph() {
	if r.top() == 0 {
		r.OpenParagraph()
		return
	}
	if r.cur != nil && r.cur.n > 0 {
		r.AddTextToBuffer("\n")
		return
	}
	r.ensureTextBlock()
}

func (r *blocksRenderer) EndParagraph() {
	if r.top() == 0 {
		r.CloseTextBlock()
	}
}

func (r *blocksRenderer) CloseTextBlock() {
	tb := r.cur
	if tb == nil {
		return
	}
	r.cur = nil
	t := tb.content()
	if !t.IsEmpty() || tb.task {
		tb.block = &Block{Id: r.ids.NewId(), Kind: tb.kind, Content: tb.build(t)}
		r.blocks = append(r.blocks, tb.block)
	}
	r.blocks = append(r.blocks, r.images...)
	r.images = nil
}

func (r *blocksRenderer) OpenQuote() {
	r.CloseTextBlock()
	r.containers = append(r.containers, containerQuote)
}

func (r *blocksRenderer) CloseQuote() {
	r.CloseTextBlock()
	r.popContainer()
}

func (r *blocksRenderer) SetListState(entering bool, ordered bool) {
	r.CloseTextBlock()
	if entering {
		r.lists = append(r.lists, ordered)
	} else if len(r.lists) > 0 {
		r.lists = r.lists[:len(r.lists)-1]
	}
}

func (r *blocksRenderer) OpenListItem() {
	r.CloseTextBlock()
	r.containers = append(r.containers, containerItem)
	r.openItem()
}

func (r *blocksRenderer) CloseListItem() {
	r.CloseTextBlock()
	r.popContainer()
}

func (r *blocksRenderer) popContainer() {
	if len(r.containers) > 0 {
		r.containers = r.containers[:len(r.containers)-1]
	}
}

// SetTask turns the open list item into a task.
func (r *blocksRenderer) SetTask(checked bool) {
	if r.cur != nil && r.cur.kind == "ListItem" {
		r.cur.task = true
		r.cur.checked = checked
	}
}

func (r *blocksRenderer) AddTextToBuffer(s string) {
	tb := r.ensureTextBlock()
	tb.text.WriteString(s)
	tb.n += text.RuneCount(s)
}

// SoftLineBreak keeps the line break inside the block unless a top level
// paragraph has outgrown the soft limit, then a new paragraph is started.
func (r *blocksRenderer) SoftLineBreak() {
	if r.cur != nil && r.top() == 0 && r.cur.kind == "Paragraph" && r.softLimit > 0 && r.cur.n > r.softLimit {
		prev := r.cur
		r.OpenParagraph()
		// marks left open continue from the start of the new block
		for _, s := range prev.starts {
			r.cur.starts = append(r.cur.starts, s.continued(prev))
		}
		for tag, starts := range prev.raw {
			for _, s := range starts {
				r.OpenRawTag(tag)
				r.cur.raw[tag][len(r.cur.raw[tag])-1] = s.continued(prev)
			}
		}
		return
	}
	r.AddTextToBuffer("\n")
}

func (r *blocksRenderer) SetMarkStart() {
	tb := r.ensureTextBlock()
	tb.starts = append(tb.starts, markStart{pos: tb.n})
}

func (r *blocksRenderer) AddMark(m model.Mark) {
	tb := r.cur
	if tb == nil || len(tb.starts) == 0 {
		return
	}
	start := tb.starts[len(tb.starts)-1]
	tb.starts = tb.starts[:len(tb.starts)-1]
	tb.closeMark(start, m)
}

func (r *blocksRenderer) OpenRawTag(tag string) {
	tb := r.ensureTextBlock()
	if tb.raw == nil {
		tb.raw = make(map[string][]markStart)
	}
	tb.raw[tag] = append(tb.raw[tag], markStart{pos: tb.n})
}

func (r *blocksRenderer) CloseRawTag(tag string, m model.Mark) {
	tb := r.cur
	if tb == nil || len(tb.raw[tag]) == 0 {
		return
	}
	starts := tb.raw[tag]
	start := starts[len(starts)-1]
	tb.raw[tag] = starts[:len(starts)-1]
	tb.closeMark(start, m)
}

func (r *blocksRenderer) AddCodeBlock(code, language string) {
	r.CloseTextBlock()
	r.blocks = append(r.blocks, &Block{
		Id:      r.ids.NewId(),
		Kind:    "CodeBlock",
		Content: &model.CodeBlock{Text: model.Text{Text: code}, Language: language},
	})
}

func (r *blocksRenderer) AddDivider() {
	r.CloseTextBlock()
	r.blocks = append(r.blocks, &Block{Id: r.ids.NewId(), Kind: "ThematicBreak", Content: &model.HorizontalRule{}})
}

func (r *blocksRenderer) AddImageBlock(url, alt string) {
	b := &Block{Id: r.ids.NewId(), Kind: "Image", Content: &model.Image{Url: url, AltText: alt}}
	if r.cur != nil {
		r.images = append(r.images, b)
		return
	}
	r.blocks = append(r.blocks, b)
}

// AddUnsupported records a node that has no block rule.
func (r *blocksRenderer) AddUnsupported(kind string) {
	r.CloseTextBlock()
	r.blocks = append(r.blocks, &Block{Id: r.ids.NewId(), Kind: kind})
}
