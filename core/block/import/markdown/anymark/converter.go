package anymark

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/anyproto/anytype-paste/metrics"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

// UnsupportedPlaceholder is the text of the paragraph that replaces a parser
// node without a block rule.
const UnsupportedPlaceholder = "unsupported content"

var ErrUnsupportedNodeKind = errors.New("unsupported node kind")

type UnsupportedNodeError struct {
	Kind string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedNodeKind, e.Kind)
}

func (e *UnsupportedNodeError) Unwrap() error {
	return ErrUnsupportedNodeKind
}

// Result of a markdown conversion. Warnings collects the degradations that did
// not stop the conversion.
type Result struct {
	Blocks []*model.Block
	// Fallback is set when the blocks come from the fenced code scanner
	Fallback bool
	Warnings error
}

// Converter turns markdown text into blocks owned by the caller. Parser
// blocks are cloned with ids from the converter allocator.
type Converter struct {
	parser BlockParser
	ids    model.IdAllocator
}

func NewConverter(parser BlockParser, ids model.IdAllocator) *Converter {
	return &Converter{parser: parser, ids: ids}
}

func (c *Converter) Convert(text string) Result {
	var res Result
	nodes, err := c.parser.Parse([]byte(text))
	if err != nil {
		log.Warnf("markdown parser failed: %v", err)
		nodes = nil
	}
	for _, n := range nodes {
		b, err := c.clone(n)
		if err != nil {
			log.Warnf("markdown node degraded to a paragraph: %v", err)
			metrics.UnsupportedNodeCounter.WithLabelValues(n.Kind).Inc()
			res.Warnings = multierror.Append(res.Warnings, err)
		}
		res.Blocks = append(res.Blocks, b)
	}
	if len(res.Blocks) == 0 && HasFencedCodeBlock(text) {
		log.Debugf("markdown parser produced no blocks, scanning fences")
		res.Blocks = ScanFencedCode(text, c.ids)
		res.Fallback = true
	}
	return res
}

func (c *Converter) clone(n *Block) (*model.Block, error) {
	switch n.Content.(type) {
	case *model.Paragraph, *model.Heading, *model.ListItem, *model.Blockquote,
		*model.CodeBlock, *model.HorizontalRule, *model.Image, *model.Task:
		b := (&model.Block{Id: n.Id, Content: n.Content}).Copy()
		b.Id = c.ids.NewId()
		return b, nil
	}
	placeholder := model.NewParagraph(c.ids.NewId(), model.NewText(UnsupportedPlaceholder))
	return placeholder, &UnsupportedNodeError{Kind: n.Kind}
}
