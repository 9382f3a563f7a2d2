package anymark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	ext "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/anyproto/anytype-paste/pkg/lib/logging"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

var log = logging.Logger("anytype-anymark")

// TextBlockLengthSoftLimit is the soft limit for the length of a text block.
// In case text block length exceeds this limit and the soft line break found(e.g. single \n) the new text block will be started.
const TextBlockLengthSoftLimit = 1024

type Renderer struct {
	*blocksRenderer
}

// NewRenderer returns a new Renderer with given options.
func NewRenderer(br *blocksRenderer) *Renderer {
	return &Renderer{
		blocksRenderer: br,
	}
}

// RegisterFuncs implements NodeRenderer.RegisterFuncs .
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	// blocks

	reg.Register(ast.KindDocument, r.renderDocument)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderUnsupported)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderParagraph)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ext.KindTable, r.renderUnsupported)

	// inlines

	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
	reg.Register(ext.KindStrikethrough, r.renderStrikethrough)
	reg.Register(ext.KindTaskCheckBox, r.renderTaskCheckBox)
}

func (r *Renderer) renderDocument(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		r.CloseTextBlock()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderHeading(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		r.OpenHeading(n.Level)
	} else {
		r.CloseTextBlock()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderBlockquote(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.OpenQuote()
	} else {
		r.CloseQuote()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderCodeBlock(_ util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.AddCodeBlock(codeLines(source, n), "")
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderFencedCodeBlock(_ util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	if entering {
		r.AddCodeBlock(codeLines(source, n), string(n.Language(source)))
	}
	return ast.WalkSkipChildren, nil
}

func codeLines(source []byte, n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// renderUnsupported keeps a trace of nodes without a block rule: html blocks and tables.
func (r *Renderer) renderUnsupported(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.AddUnsupported(n.Kind().String())
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderList(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	r.SetListState(entering, n.IsOrdered())
	return ast.WalkContinue, nil
}

func (r *Renderer) renderListItem(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.OpenListItem()
	} else {
		r.CloseListItem()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderParagraph(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.StartParagraph()
	} else {
		r.EndParagraph()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderThematicBreak(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.AddDivider()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderAutoLink(_ util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.AutoLink)
	if !entering {
		return ast.WalkContinue, nil
	}
	r.SetMarkStart()
	r.AddTextToBuffer(string(n.Label(source)))
	r.AddMark(model.Link(string(n.URL(source))))
	return ast.WalkContinue, nil
}

func (r *Renderer) renderCodeSpan(_ util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		value := t.Segment.Value(source)
		if bytes.HasSuffix(value, []byte("\n")) {
			r.AddTextToBuffer(string(value[:len(value)-1]))
			if c != n.LastChild() {
				r.AddTextToBuffer(" ")
			}
		} else {
			r.AddTextToBuffer(string(value))
		}
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderEmphasis(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Emphasis)
	if entering {
		r.SetMarkStart()
		return ast.WalkContinue, nil
	}
	if n.Level == 2 {
		r.AddMark(model.Bold())
	} else {
		r.AddMark(model.Italic())
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderLink(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if entering {
		r.SetMarkStart()
	} else {
		r.AddMark(model.Link(string(n.Destination)))
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderImage(_ util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	r.AddImageBlock(string(n.Destination), string(n.Text(source)))
	return ast.WalkSkipChildren, nil
}

var rawTags = map[string]struct {
	tag  string
	open bool
	mark model.Mark
}{
	"<u>":    {"u", true, model.Underline()},
	"</u>":   {"u", false, model.Underline()},
	"<ins>":  {"u", true, model.Underline()},
	"</ins>": {"u", false, model.Underline()},
	"<sup>":  {"sup", true, model.Superscript()},
	"</sup>": {"sup", false, model.Superscript()},
	"<sub>":  {"sub", true, model.Subscript()},
	"</sub>": {"sub", false, model.Subscript()},
	"<s>":    {"s", true, model.Strikethrough()},
	"</s>":   {"s", false, model.Strikethrough()},
	"<del>":  {"s", true, model.Strikethrough()},
	"</del>": {"s", false, model.Strikethrough()},
	"<b>":    {"b", true, model.Bold()},
	"</b>":   {"b", false, model.Bold()},
	"<i>":    {"i", true, model.Italic()},
	"</i>":   {"i", false, model.Italic()},
}

func (r *Renderer) renderRawHTML(_ util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*ast.RawHTML)
	if !ok || !entering {
		return ast.WalkSkipChildren, nil
	}
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		tag := strings.ToLower(strings.TrimSpace(string(segment.Value(source))))
		switch tag {
		case "<br>", "<br/>", "<br />":
			r.AddTextToBuffer("\n")
			continue
		}
		raw, ok := rawTags[tag]
		if !ok {
			continue
		}
		if raw.open {
			r.OpenRawTag(raw.tag)
		} else {
			r.CloseRawTag(raw.tag, raw.mark)
		}
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderText(_ util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	r.AddTextToBuffer(Unescape(n.Segment.Value(source)))
	switch {
	case n.HardLineBreak():
		r.AddTextToBuffer("\n")
	case n.SoftLineBreak():
		r.SoftLineBreak()
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderString(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.String)
	if n.IsCode() || n.IsRaw() {
		r.AddTextToBuffer(string(n.Value))
	} else {
		r.AddTextToBuffer(Unescape(n.Value))
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderStrikethrough(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.SetMarkStart()
	} else {
		r.AddMark(model.Strikethrough())
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderTaskCheckBox(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.SetTask(node.(*ext.TaskCheckBox).IsChecked)
	}
	return ast.WalkContinue, nil
}

// Unescape resolves backslash escapes and character references of a raw markdown segment.
func Unescape(v []byte) string {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}
