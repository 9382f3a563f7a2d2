package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

func paragraphs(ids ...string) []*model.Block {
	res := make([]*model.Block, 0, len(ids))
	for _, id := range ids {
		res = append(res, model.NewParagraph(id, model.NewText("text "+id)))
	}
	return res
}

func TestNewDoc(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		d, err := NewDoc(paragraphs("1", "2", "3")...)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, d.Ids())
		assert.Equal(t, 3, d.Len())
		assert.Equal(t, 1, d.Index("2"))
		assert.Equal(t, -1, d.Index("nf"))
	})
	t.Run("duplicate ids", func(t *testing.T) {
		_, err := NewDoc(paragraphs("1", "1")...)
		assert.True(t, errors.Is(err, ErrDuplicateId))
	})
}

func TestDoc_InsertAt(t *testing.T) {
	d, err := NewDoc(paragraphs("1", "4")...)
	require.NoError(t, err)

	require.NoError(t, d.InsertAt(1, paragraphs("2", "3")...))
	assert.Equal(t, []string{"1", "2", "3", "4"}, d.Ids())

	require.NoError(t, d.InsertAt(4, paragraphs("5")...))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, d.Ids())

	t.Run("collision leaves doc untouched", func(t *testing.T) {
		err := d.InsertAt(0, paragraphs("6", "3")...)
		assert.True(t, errors.Is(err, ErrDuplicateId))
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, d.Ids())
		assert.False(t, d.Exists("6"))
	})
	t.Run("out of range", func(t *testing.T) {
		assert.True(t, errors.Is(d.InsertAt(10, paragraphs("7")...), ErrOutOfRange))
	})
}

func TestDoc_Remove(t *testing.T) {
	d, err := NewDoc(paragraphs("1", "2", "3")...)
	require.NoError(t, err)

	assert.True(t, d.Remove("2"))
	assert.False(t, d.Exists("2"))
	assert.Equal(t, -1, d.Index("2"))
	assert.Equal(t, []string{"1", "3"}, d.Ids())

	assert.False(t, d.Remove("2"))
	assert.False(t, d.Remove(""))
	assert.Equal(t, 2, d.Len())
}

func TestSelection(t *testing.T) {
	d, err := NewDoc(paragraphs("a", "b", "c")...)
	require.NoError(t, err)

	t.Run("caret", func(t *testing.T) {
		s := Caret("b", 2)
		assert.True(t, s.IsCollapsed())
		start, end, err := s.Indexes(d)
		require.NoError(t, err)
		assert.Equal(t, 1, start)
		assert.Equal(t, 1, end)
	})
	t.Run("backward range", func(t *testing.T) {
		s := Range(Position{BlockId: "c", Offset: 1}, Position{BlockId: "a"})
		assert.False(t, s.IsCollapsed())
		start, end, err := s.Indexes(d)
		require.NoError(t, err)
		assert.Equal(t, 0, start)
		assert.Equal(t, 2, end)
		backward, err := s.IsBackward(d)
		require.NoError(t, err)
		assert.True(t, backward)
	})
	t.Run("same block offsets decide direction", func(t *testing.T) {
		backward, err := Range(Position{BlockId: "b", Offset: 4}, Position{BlockId: "b", Offset: 1}).IsBackward(d)
		require.NoError(t, err)
		assert.True(t, backward)
	})
	t.Run("unknown block", func(t *testing.T) {
		_, _, err := Range(Position{BlockId: "a"}, Position{BlockId: "x"}).Indexes(d)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
	t.Run("clear", func(t *testing.T) {
		s := Caret("a", 0)
		s.Clear()
		assert.True(t, s.IsZero())
	})
}
