package state

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
	"github.com/anyproto/anytype-paste/util/slice"
)

var (
	ErrDuplicateId = errors.New("duplicate block id")
	ErrNotFound    = errors.New("block not found")
	ErrOutOfRange  = errors.New("out of range")
)

// Doc is an ordered sequence of blocks with unique ids. It is owned by one
// editing session and is not safe for concurrent structural mutation.
type Doc struct {
	blocks map[string]*model.Block
	order  []string
}

func NewDoc(blocks ...*model.Block) (*Doc, error) {
	d := &Doc{blocks: make(map[string]*model.Block, len(blocks))}
	if err := d.InsertAt(0, blocks...); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Doc) Len() int {
	return len(d.order)
}

func (d *Doc) Pick(id string) *model.Block {
	return d.blocks[id]
}

func (d *Doc) Exists(id string) bool {
	_, ok := d.blocks[id]
	return ok
}

// Index returns the position of the block or -1.
func (d *Doc) Index(id string) int {
	if !d.Exists(id) {
		return -1
	}
	return slice.FindPos(d.order, id)
}

func (d *Doc) At(pos int) *model.Block {
	if pos < 0 || pos >= len(d.order) {
		return nil
	}
	return d.blocks[d.order[pos]]
}

func (d *Doc) Ids() []string {
	res := make([]string, len(d.order))
	copy(res, d.order)
	return res
}

func (d *Doc) Blocks() []*model.Block {
	res := make([]*model.Block, 0, len(d.order))
	for _, id := range d.order {
		res = append(res, d.blocks[id])
	}
	return res
}

// InsertAt inserts blocks at pos keeping their order. Nothing is inserted if
// any id is empty, already present or repeated among blocks.
func (d *Doc) InsertAt(pos int, blocks ...*model.Block) error {
	if pos < 0 || pos > len(d.order) {
		return errors.Wrapf(ErrOutOfRange, "insert at %d of %d", pos, len(d.order))
	}
	ids := make([]string, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.Id == "" {
			return fmt.Errorf("block without id: %s", b)
		}
		if _, ok := seen[b.Id]; ok || d.Exists(b.Id) {
			return errors.Wrapf(ErrDuplicateId, "id %s", b.Id)
		}
		seen[b.Id] = struct{}{}
		ids = append(ids, b.Id)
	}
	for _, b := range blocks {
		d.blocks[b.Id] = b
	}
	d.order = slice.Insert(d.order, pos, ids...)
	return nil
}

func (d *Doc) Remove(id string) (ok bool) {
	if !d.Exists(id) {
		return false
	}
	delete(d.blocks, id)
	d.order = slice.Remove(d.order, id)
	return true
}

func (d *Doc) Iterate(f func(b *model.Block) (isContinue bool)) {
	for _, id := range d.order {
		if !f(d.blocks[id]) {
			return
		}
	}
}

func (d *Doc) String() string {
	buf := bytes.NewBuffer(nil)
	for i, id := range d.order {
		fmt.Fprintf(buf, "%d: %s\n", i, d.blocks[id])
	}
	return buf.String()
}
