//go:generate mockgen -package mockAnymark -destination anymark_mock.go github.com/anyproto/anytype-paste/core/block/import/markdown/anymark BlockParser
package mockAnymark

import (
	"github.com/golang/mock/gomock"

	"github.com/anyproto/anytype-paste/core/block/import/markdown/anymark"
)

// NewMockBlockParserReturning returns a parser that answers every Parse call with blocks.
func NewMockBlockParserReturning(ctrl *gomock.Controller, blocks []*anymark.Block, err error) *MockBlockParser {
	mp := NewMockBlockParser(ctrl)
	mp.EXPECT().Parse(gomock.Any()).AnyTimes().Return(blocks, err)
	return mp
}
