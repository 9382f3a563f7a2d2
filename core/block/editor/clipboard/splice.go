package clipboard

import (
	"github.com/pkg/errors"

	"github.com/anyproto/anytype-paste/core/block/editor/state"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

const maxIdAttempts = 100

// Splice merges blocks into doc at sel and clears sel. A caret inserts after
// its block, a range replaces every block it touches and a zero selection
// appends to the end. It returns the inserted ids in document order. When sel
// points outside doc nothing is changed.
func Splice(doc *state.Doc, sel *state.Selection, blocks []*model.Block, ids model.IdAllocator) ([]string, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	pos, removeCount := doc.Len(), 0
	if !sel.IsZero() {
		start, end, err := sel.Indexes(doc)
		if err != nil {
			log.Warnf("paste rejected: %v", err)
			return nil, errors.Wrapf(ErrInvalidSelection, "%v", err)
		}
		if sel.IsCollapsed() {
			pos = start + 1
		} else {
			pos, removeCount = start, end-start+1
		}
	}
	// ids are checked against the document before removal so that ids of
	// replaced blocks are not handed out again
	if err := assignIds(doc, blocks, ids); err != nil {
		return nil, err
	}

	replaced := doc.Ids()[pos : pos+removeCount]
	sel.Clear()
	for _, id := range replaced {
		doc.Remove(id)
	}
	if err := doc.InsertAt(pos, blocks...); err != nil {
		return nil, err
	}
	res := make([]string, 0, len(blocks))
	for _, b := range blocks {
		res = append(res, b.Id)
	}
	return res, nil
}

func assignIds(doc *state.Doc, blocks []*model.Block, ids model.IdAllocator) error {
	taken := make(map[string]struct{}, len(blocks))
	isFree := func(id string) bool {
		_, ok := taken[id]
		return id != "" && !ok && !doc.Exists(id)
	}
	newIds := make([]string, len(blocks))
	for i, b := range blocks {
		id := b.Id
		for attempt := 0; !isFree(id); attempt++ {
			if attempt == maxIdAttempts {
				return errors.Wrapf(state.ErrDuplicateId, "can't allocate a free id for %s", b.Kind())
			}
			id = ids.NewId()
		}
		taken[id] = struct{}{}
		newIds[i] = id
	}
	for i, b := range blocks {
		b.Id = newIds[i]
	}
	return nil
}
