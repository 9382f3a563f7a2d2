package clipboard

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/anyproto/anytype-paste/core/block/editor/state"
	"github.com/anyproto/anytype-paste/core/block/import/htmlblocks"
	"github.com/anyproto/anytype-paste/core/block/import/markdown/anymark"
	"github.com/anyproto/anytype-paste/core/config"
	"github.com/anyproto/anytype-paste/metrics"
	"github.com/anyproto/anytype-paste/pkg/lib/logging"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

var (
	ErrNoContent        = errors.New("clipboard has neither html nor text")
	ErrInvalidSelection = errors.New("selection points outside the document")
	log                 = logging.Logger("anytype-clipboard")
)

// Slots are the clipboard representations. An absent slot is an empty string.
type Slots struct {
	HtmlSlot string `json:"html,omitempty" yaml:"html,omitempty"`
	TextSlot string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Reader reads the platform clipboard. Read must return only after both
// slots are fully read.
type Reader interface {
	Read(ctx context.Context) (Slots, error)
}

type ReaderFunc func(ctx context.Context) (Slots, error)

func (f ReaderFunc) Read(ctx context.Context) (Slots, error) {
	return f(ctx)
}

// PasteResult tells the host whether the document was changed. Warnings holds
// conversion degradations, it is never a reason for Applied to be false.
type PasteResult struct {
	Applied  bool
	BlockIds []string
	Source   Source
	Warnings error
}

type Clipboard struct {
	ids  model.IdAllocator
	html *htmlblocks.Converter
	md   *anymark.Converter

	detectMarkdown bool
	keepBlankLines bool
}

func New(cfg *config.Config) *Clipboard {
	return NewWithParser(cfg, cfg.IdAllocator(), anymark.NewParser(cfg.TextBlockSoftLimit))
}

// NewWithParser builds a Clipboard with an explicit id allocator and markdown parser.
func NewWithParser(cfg *config.Config, ids model.IdAllocator, parser anymark.BlockParser) *Clipboard {
	return &Clipboard{
		ids:            ids,
		html:           htmlblocks.NewConverter(ids, cfg.SanitizeHTML),
		md:             anymark.NewConverter(parser, ids),
		detectMarkdown: cfg.DetectMarkdown,
		keepBlankLines: cfg.KeepBlankLines,
	}
}

// Paste converts slots and splices the blocks into doc at sel. The document is
// either fully updated or left untouched.
func (cb *Clipboard) Paste(doc *state.Doc, sel *state.Selection, slots Slots) (PasteResult, error) {
	conv, err := cb.Convert(slots)
	if err != nil {
		metrics.FailedCounter.WithLabelValues("no_content").Inc()
		return PasteResult{}, err
	}
	res := PasteResult{Source: conv.Source, Warnings: conv.Warnings}
	if res.BlockIds, err = Splice(doc, sel, conv.Blocks, cb.ids); err != nil {
		metrics.FailedCounter.WithLabelValues(spliceFailure(err)).Inc()
		return res, err
	}
	res.Applied = true
	metrics.PasteSourceCounter.WithLabelValues(string(conv.Source)).Inc()
	log.Debugf("pasted %d blocks from %s", len(res.BlockIds), conv.Source)
	return res, nil
}

func spliceFailure(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, state.ErrDuplicateId):
		return "duplicate_id"
	}
	return "splice"
}

// PasteFrom reads the clipboard through r before converting anything.
func (cb *Clipboard) PasteFrom(ctx context.Context, r Reader, doc *state.Doc, sel *state.Selection) (PasteResult, error) {
	slots, err := r.Read(ctx)
	if err != nil {
		metrics.FailedCounter.WithLabelValues("read").Inc()
		return PasteResult{}, pkgerrors.Wrap(err, "read clipboard")
	}
	if err = ctx.Err(); err != nil {
		return PasteResult{}, err
	}
	return cb.Paste(doc, sel, slots)
}
