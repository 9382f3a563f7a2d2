package clipboard

import (
	"strings"

	"github.com/anyproto/anytype-paste/core/block/import/markdown/anymark"
	"github.com/anyproto/anytype-paste/metrics"
	"github.com/anyproto/anytype-paste/pkg/lib/logging"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

// Source names the representation the pasted blocks were made from.
type Source string

const (
	SourceHTML             Source = "html"
	SourceMarkdown         Source = "markdown"
	SourceMarkdownFallback Source = "markdown-fallback"
	SourceText             Source = "text"
)

type Conversion struct {
	Blocks   []*model.Block
	Source   Source
	Warnings error
}

// Convert tries html, then markdown found in the text slot, then the text
// slot line by line. A tier that produces no blocks falls through to the next
// one. Malformed input never fails the conversion, ErrNoContent is returned
// when no tier produced anything.
func (cb *Clipboard) Convert(slots Slots) (Conversion, error) {
	plain := slots.TextSlot
	if strings.TrimSpace(slots.HtmlSlot) != "" {
		blocks, err := cb.html.ConvertString(slots.HtmlSlot)
		if err != nil {
			log.Debugf("html slot is not convertible: %v", err)
		}
		if len(blocks) > 0 {
			return Conversion{Blocks: blocks, Source: SourceHTML}, nil
		}
		cb.fallThrough(SourceHTML)
		if strings.TrimSpace(plain) == "" {
			if plain, err = anymark.HTMLToMarkdown(slots.HtmlSlot); err != nil {
				log.Debugf("failed to derive text from html: %v", err)
			}
		}
	}
	if strings.TrimSpace(plain) == "" {
		return Conversion{}, ErrNoContent
	}

	if cb.detectMarkdown && (anymark.LooksLikeMarkdown(plain) || anymark.HasFencedCodeBlock(plain)) {
		res := cb.md.Convert(plain)
		if len(res.Blocks) > 0 {
			source := SourceMarkdown
			if res.Fallback {
				source = SourceMarkdownFallback
			}
			return Conversion{Blocks: res.Blocks, Source: source, Warnings: res.Warnings}, nil
		}
		cb.fallThrough(SourceMarkdown)
	}

	if blocks := cb.textToBlocks(plain); len(blocks) > 0 {
		return Conversion{Blocks: blocks, Source: SourceText}, nil
	}
	return Conversion{}, ErrNoContent
}

func (cb *Clipboard) fallThrough(tier Source) {
	metrics.FallbackCounter.WithLabelValues(string(tier)).Inc()
	log.Debugf("%s produced no blocks, falling back", tier)
}

// textToBlocks makes one paragraph per line.
func (cb *Clipboard) textToBlocks(plain string) []*model.Block {
	plain = strings.ReplaceAll(plain, "\r\n", "\n")
	plain = strings.TrimSuffix(plain, "\n")
	var blocks []*model.Block
	for _, line := range strings.Split(plain, "\n") {
		if !cb.keepBlankLines && strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, model.NewParagraph(cb.ids.NewId(), model.NewText(line)))
	}
	log.Debugf("text converted to %d paragraphs: %q", len(blocks), logging.Payload(plain))
	return blocks
}
