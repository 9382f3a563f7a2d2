// Package ids provides block id allocators.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/globalsign/mgo/bson"
	"github.com/google/uuid"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

// UUID allocates random version 4 uuids.
type UUID struct{}

func (UUID) NewId() string {
	return uuid.New().String()
}

// ObjectId allocates 12-byte hex object ids, ordered by creation time.
type ObjectId struct{}

func (ObjectId) NewId() string {
	return bson.NewObjectId().Hex()
}

// Sequence allocates predictable ids "<prefix><n>" starting from 1.
type Sequence struct {
	prefix string
	n      uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewId() string {
	return fmt.Sprintf("%s%d", s.prefix, atomic.AddUint64(&s.n, 1))
}

var (
	_ model.IdAllocator = UUID{}
	_ model.IdAllocator = ObjectId{}
	_ model.IdAllocator = (*Sequence)(nil)
)
