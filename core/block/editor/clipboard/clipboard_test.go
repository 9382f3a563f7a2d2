package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/anytype-paste/core/block/editor/state"
	"github.com/anyproto/anytype-paste/core/block/import/markdown/anymark"
	"github.com/anyproto/anytype-paste/core/config"
	"github.com/anyproto/anytype-paste/metrics"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

func TestClipboard_Paste(t *testing.T) {
	t.Run("html into caret", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.PasteSourceCounter.WithLabelValues("html"))
		doc := createDoc(t, "A", "B")
		sel := state.Caret("A", 1)
		res, err := newClipboard().Paste(doc, &sel, Slots{HtmlSlot: "<ul><li>one</li><li>two</li></ul>"})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, SourceHTML, res.Source)
		assert.Equal(t, []string{"n1", "n2"}, res.BlockIds)
		checkBlockText(t, doc, "A", "one", "two", "B")
		assert.Equal(t, model.KindListItem, doc.Pick("n1").Kind())
		assert.True(t, sel.IsZero())
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.PasteSourceCounter.WithLabelValues("html")))
	})
	t.Run("text over a range", func(t *testing.T) {
		doc := createDoc(t, "A", "B", "C")
		sel := state.Range(state.Position{BlockId: "C", Offset: 1}, state.Position{BlockId: "B"})
		res, err := newClipboard().Paste(doc, &sel, Slots{TextSlot: "just words"})
		require.NoError(t, err)
		assert.Equal(t, SourceText, res.Source)
		checkBlockText(t, doc, "A", "just words")
	})
	t.Run("no content", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("no_content"))
		doc := createDoc(t, "A")
		sel := state.Caret("A", 0)
		res, err := newClipboard().Paste(doc, &sel, Slots{TextSlot: "   "})
		assert.True(t, errors.Is(err, ErrNoContent))
		assert.False(t, res.Applied)
		checkBlockText(t, doc, "A")
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("no_content")))
	})
	t.Run("stale selection", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("invalid_selection"))
		doc := createDoc(t, "A")
		sel := state.Caret("gone", 0)
		res, err := newClipboard().Paste(doc, &sel, Slots{TextSlot: "x"})
		assert.True(t, errors.Is(err, ErrInvalidSelection))
		assert.False(t, res.Applied)
		assert.Equal(t, SourceText, res.Source)
		checkBlockText(t, doc, "A")
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("invalid_selection")))
	})
	t.Run("allocator out of ids", func(t *testing.T) {
		invalid := testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("invalid_selection"))
		duplicate := testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("duplicate_id"))
		cfg := config.New()
		same := model.IdAllocatorFunc(func() string { return "A" })
		cb := NewWithParser(cfg, same, anymark.NewParser(cfg.TextBlockSoftLimit))
		doc := createDoc(t, "A")
		sel := state.Caret("A", 0)
		res, err := cb.Paste(doc, &sel, Slots{TextSlot: "x"})
		assert.True(t, errors.Is(err, state.ErrDuplicateId))
		assert.False(t, res.Applied)
		checkBlockText(t, doc, "A")
		assert.Equal(t, duplicate+1, testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("duplicate_id")))
		assert.Equal(t, invalid, testutil.ToFloat64(metrics.FailedCounter.WithLabelValues("invalid_selection")))
	})
	t.Run("ids stay unique over repeated pastes", func(t *testing.T) {
		doc := createDoc(t, "A")
		cb := New(config.New(config.WithIdScheme(config.IdSchemeUUID)))
		sel := state.Selection{}
		for i := 0; i < 3; i++ {
			_, err := cb.Paste(doc, &sel, Slots{TextSlot: "- a\n- b"})
			require.NoError(t, err)
		}
		assert.Equal(t, 7, doc.Len())
		checkUniqueIds(t, doc)
	})
}

func TestClipboard_PasteFrom(t *testing.T) {
	t.Run("reads then pastes", func(t *testing.T) {
		doc := createDoc(t)
		sel := state.Selection{}
		reader := ReaderFunc(func(ctx context.Context) (Slots, error) {
			return Slots{TextSlot: "```\ncode\n```"}, nil
		})
		res, err := newClipboard().PasteFrom(context.Background(), reader, doc, &sel)
		require.NoError(t, err)
		assert.Equal(t, SourceMarkdown, res.Source)
		require.Equal(t, 1, doc.Len())
		assert.Equal(t, &model.CodeBlock{Text: model.Text{Text: "code"}}, doc.At(0).Content)
	})
	t.Run("read error", func(t *testing.T) {
		doc := createDoc(t, "A")
		sel := state.Caret("A", 0)
		reader := ReaderFunc(func(ctx context.Context) (Slots, error) {
			return Slots{}, errors.New("denied")
		})
		res, err := newClipboard().PasteFrom(context.Background(), reader, doc, &sel)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "denied")
		assert.False(t, res.Applied)
		checkBlockText(t, doc, "A")
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		doc := createDoc(t, "A")
		sel := state.Caret("A", 0)
		reader := ReaderFunc(func(ctx context.Context) (Slots, error) {
			return Slots{TextSlot: "x"}, nil
		})
		_, err := newClipboard().PasteFrom(ctx, reader, doc, &sel)
		assert.True(t, errors.Is(err, context.Canceled))
		checkBlockText(t, doc, "A")
	})
}
