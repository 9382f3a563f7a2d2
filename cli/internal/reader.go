package internal

import (
	"context"
	"io"
	"os"

	atotto "github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"github.com/anyproto/anytype-paste/core/block/editor/clipboard"
)

// SystemReader reads the text slot of the system clipboard. The html slot is
// not exposed by the platform helpers, so it is always empty.
type SystemReader struct{}

func (SystemReader) Read(ctx context.Context) (clipboard.Slots, error) {
	if atotto.Unsupported {
		return clipboard.Slots{}, errors.New("system clipboard is not supported on this platform")
	}
	text, err := atotto.ReadAll()
	if err != nil {
		return clipboard.Slots{}, errors.Wrap(err, "read system clipboard")
	}
	return clipboard.Slots{TextSlot: text}, nil
}

// FileReader reads each slot from its own file. An empty path leaves the slot empty.
type FileReader struct {
	HtmlPath string
	TextPath string
}

func (r FileReader) Read(ctx context.Context) (slots clipboard.Slots, err error) {
	if slots.HtmlSlot, err = readFile(r.HtmlPath); err != nil {
		return
	}
	slots.TextSlot, err = readFile(r.TextPath)
	return
}

func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// StreamReader takes the text slot from R.
type StreamReader struct {
	R io.Reader
}

func (r StreamReader) Read(ctx context.Context) (clipboard.Slots, error) {
	data, err := io.ReadAll(r.R)
	if err != nil {
		return clipboard.Slots{}, errors.Wrap(err, "read input")
	}
	return clipboard.Slots{TextSlot: string(data)}, nil
}
