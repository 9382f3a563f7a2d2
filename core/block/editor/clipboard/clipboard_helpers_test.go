package clipboard

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/anytype-paste/core/block/editor/state"
	"github.com/anyproto/anytype-paste/core/block/import/markdown/anymark"
	"github.com/anyproto/anytype-paste/core/config"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
	"github.com/anyproto/anytype-paste/util/ids"
)

func createBlocks(textArr []string) []*model.Block {
	blocks := make([]*model.Block, 0, len(textArr))
	for _, text := range textArr {
		blocks = append(blocks, model.NewParagraph(text, model.NewText(text)))
	}
	return blocks
}

// createDoc builds a document of paragraphs whose ids equal their text.
func createDoc(t *testing.T, textArr ...string) *state.Doc {
	doc, err := state.NewDoc(createBlocks(textArr)...)
	require.NoError(t, err)
	return doc
}

func checkBlockText(t *testing.T, doc *state.Doc, textArr ...string) {
	var texts []string
	doc.Iterate(func(b *model.Block) bool {
		if tb := b.GetText(); tb != nil {
			texts = append(texts, tb.Text)
		} else {
			texts = append(texts, b.Kind().String())
		}
		return true
	})
	assert.Equal(t, textArr, texts)
}

func checkUniqueIds(t *testing.T, doc *state.Doc) {
	seen := map[string]bool{}
	for _, id := range doc.Ids() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func newClipboard(options ...func(*config.Config)) *Clipboard {
	cfg := config.New(options...)
	return NewWithParser(cfg, ids.NewSequence("n"), anymark.NewParser(cfg.TextBlockSoftLimit))
}

func textOf(b *model.Block) string {
	if tb := b.GetText(); tb != nil {
		return tb.Text
	}
	return ""
}

func seqIds(prefix string, n int) []string {
	res := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		res = append(res, prefix+strconv.Itoa(i))
	}
	return res
}
