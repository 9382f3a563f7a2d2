package state

import (
	"github.com/pkg/errors"
)

// Position points into a block. Offset counts runes and only matters for
// text-bearing blocks.
type Position struct {
	BlockId string
	Offset  int
}

// Selection is collapsed (a caret) when Base equals Extent. Direction is
// taken from block order in the document, not from which end is Base.
type Selection struct {
	Base   Position
	Extent Position
}

func Caret(blockId string, offset int) Selection {
	p := Position{BlockId: blockId, Offset: offset}
	return Selection{Base: p, Extent: p}
}

func Range(base, extent Position) Selection {
	return Selection{Base: base, Extent: extent}
}

func (s Selection) IsCollapsed() bool {
	return s.Base == s.Extent
}

// IsZero reports whether the selection points nowhere.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

func (s *Selection) Clear() {
	*s = Selection{}
}

// Indexes resolves both ends against d and returns them ordered.
func (s Selection) Indexes(d *Doc) (start, end int, err error) {
	base := d.Index(s.Base.BlockId)
	if base == -1 {
		return -1, -1, errors.Wrapf(ErrNotFound, "selection base %q", s.Base.BlockId)
	}
	extent := d.Index(s.Extent.BlockId)
	if extent == -1 {
		return -1, -1, errors.Wrapf(ErrNotFound, "selection extent %q", s.Extent.BlockId)
	}
	if base > extent {
		return extent, base, nil
	}
	return base, extent, nil
}

// IsBackward reports whether the extent comes before the base.
func (s Selection) IsBackward(d *Doc) (bool, error) {
	if _, _, err := s.Indexes(d); err != nil {
		return false, err
	}
	base, extent := d.Index(s.Base.BlockId), d.Index(s.Extent.BlockId)
	if base != extent {
		return extent < base, nil
	}
	return s.Extent.Offset < s.Base.Offset, nil
}
