package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/anytype-paste/core/block/editor/state"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
	"github.com/anyproto/anytype-paste/util/ids"
)

func TestSplice(t *testing.T) {
	t.Run("caret inserts after the block", func(t *testing.T) {
		doc := createDoc(t, "A")
		a := doc.Pick("A")
		sel := state.Caret("A", 1)
		inserted, err := Splice(doc, &sel, createBlocks([]string{"B", "C"}), ids.NewSequence("n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C"}, inserted)
		checkBlockText(t, doc, "A", "B", "C")
		assert.Same(t, a, doc.At(0))
		assert.Equal(t, "A", a.GetText().Text)
		assert.True(t, sel.IsZero())
	})
	t.Run("caret in the middle", func(t *testing.T) {
		doc := createDoc(t, "A", "B")
		sel := state.Caret("A", 0)
		_, err := Splice(doc, &sel, createBlocks([]string{"X"}), ids.NewSequence("n"))
		require.NoError(t, err)
		checkBlockText(t, doc, "A", "X", "B")
	})
	t.Run("range replaces touched blocks", func(t *testing.T) {
		for _, sel := range []state.Selection{
			state.Range(state.Position{BlockId: "B", Offset: 1}, state.Position{BlockId: "C", Offset: 0}),
			state.Range(state.Position{BlockId: "C", Offset: 0}, state.Position{BlockId: "B", Offset: 1}),
		} {
			doc := createDoc(t, "A", "B", "C")
			inserted, err := Splice(doc, &sel, createBlocks([]string{"X"}), ids.NewSequence("n"))
			require.NoError(t, err)
			assert.Equal(t, []string{"X"}, inserted)
			checkBlockText(t, doc, "A", "X")
			assert.False(t, doc.Exists("B"))
			assert.False(t, doc.Exists("C"))
		}
	})
	t.Run("range inside one block", func(t *testing.T) {
		doc := createDoc(t, "A", "B")
		sel := state.Range(state.Position{BlockId: "B", Offset: 0}, state.Position{BlockId: "B", Offset: 1})
		_, err := Splice(doc, &sel, createBlocks([]string{"X", "Y"}), ids.NewSequence("n"))
		require.NoError(t, err)
		checkBlockText(t, doc, "A", "X", "Y")
	})
	t.Run("colliding ids", func(t *testing.T) {
		doc := createDoc(t, "A", "B")
		sel := state.Range(state.Position{BlockId: "B"}, state.Position{BlockId: "B", Offset: 1})
		incoming := []*model.Block{
			model.NewParagraph("A", model.NewText("x")),
			model.NewParagraph("B", model.NewText("y")),
			model.NewParagraph("n1", model.NewText("z")),
			model.NewParagraph("", model.NewText("w")),
		}
		inserted, err := Splice(doc, &sel, incoming, ids.NewSequence("n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"n1", "n2", "n3", "n4"}, inserted)
		checkBlockText(t, doc, "A", "x", "y", "z", "w")
		checkUniqueIds(t, doc)
	})
	t.Run("zero selection", func(t *testing.T) {
		doc := createDoc(t)
		sel := state.Selection{}
		_, err := Splice(doc, &sel, createBlocks([]string{"X"}), ids.NewSequence("n"))
		require.NoError(t, err)
		checkBlockText(t, doc, "X")

		doc = createDoc(t, "A", "B")
		_, err = Splice(doc, &sel, createBlocks([]string{"X"}), ids.NewSequence("n"))
		require.NoError(t, err)
		checkBlockText(t, doc, "A", "B", "X")
	})
	t.Run("invalid selection", func(t *testing.T) {
		doc := createDoc(t, "A", "B")
		sel := state.Range(state.Position{BlockId: "A"}, state.Position{BlockId: "missing"})
		_, err := Splice(doc, &sel, createBlocks([]string{"X"}), ids.NewSequence("n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSelection))
		checkBlockText(t, doc, "A", "B")
		assert.Equal(t, "missing", sel.Extent.BlockId)
	})
	t.Run("nothing to insert", func(t *testing.T) {
		doc := createDoc(t, "A")
		sel := state.Caret("A", 0)
		inserted, err := Splice(doc, &sel, nil, ids.NewSequence("n"))
		require.NoError(t, err)
		assert.Empty(t, inserted)
		checkBlockText(t, doc, "A")
		assert.False(t, sel.IsZero())
	})
	t.Run("allocator without free ids", func(t *testing.T) {
		doc := createDoc(t, "A")
		sel := state.Caret("A", 0)
		same := model.IdAllocatorFunc(func() string { return "A" })
		_, err := Splice(doc, &sel, createBlocks([]string{"A"}), same)
		require.Error(t, err)
		assert.True(t, errors.Is(err, state.ErrDuplicateId))
		checkBlockText(t, doc, "A")
	})
}
