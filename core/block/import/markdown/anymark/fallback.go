package anymark

import (
	"regexp"
	"strings"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

var reFenceOpen = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*([^`\\s]*)")

// ScanFencedCode is the line scanner used when the parser returns nothing for
// text that has a fenced code block. Every fence becomes a code block, an
// unclosed fence runs to the end of the input. Other non-blank lines become
// one paragraph each.
func ScanFencedCode(text string, ids model.IdAllocator) []*model.Block {
	var (
		blocks []*model.Block
		inCode bool
		fence  string
		lang   string
		code   []string
	)
	flush := func() {
		blocks = append(blocks, model.NewCodeBlock(ids.NewId(), strings.Join(code, "\n"), lang))
		inCode, code = false, nil
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if inCode {
			if isFenceClose(line, fence) {
				flush()
			} else {
				code = append(code, line)
			}
			continue
		}
		if m := reFenceOpen.FindStringSubmatch(line); m != nil {
			inCode, fence, lang = true, m[1], m[2]
			continue
		}
		if strings.TrimSpace(line) != "" {
			blocks = append(blocks, model.NewParagraph(ids.NewId(), model.NewText(line)))
		}
	}
	if inCode {
		flush()
	}
	return blocks
}

func isFenceClose(line, fence string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= len(fence) && strings.Trim(line, fence[:1]) == ""
}
