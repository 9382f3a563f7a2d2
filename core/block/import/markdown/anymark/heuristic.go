package anymark

import (
	"regexp"
	"strings"
)

var markdownLinePatterns = []*regexp.Regexp{
	// fenced code
	regexp.MustCompile("^ {0,3}(```|~~~)"),
	// atx header
	regexp.MustCompile(`^ {0,3}#{1,6}[ \t]+\S`),
	// bold
	regexp.MustCompile(`\*\*[^*\s][^*]*\*\*|__[^_\s][^_]*__`),
	// italic
	regexp.MustCompile(`(^|[^*\w])\*[^*\s][^*]*\*([^*\w]|$)|(^|\W)_[^_\s][^_]*_(\W|$)`),
	// strikethrough
	regexp.MustCompile(`~~[^~\s][^~]*~~`),
	// blockquote
	regexp.MustCompile(`^ {0,3}>`),
	// unordered list
	regexp.MustCompile(`^\s*[-*+][ \t]+\S`),
	// ordered list
	regexp.MustCompile(`^\s*\d{1,9}[.)][ \t]+\S`),
	// link or image
	regexp.MustCompile(`!?\[[^\]]*\]\([^)\s]+\)`),
	// horizontal rule
	regexp.MustCompile(`^ {0,3}((-[ \t]*){3,}|(\*[ \t]*){3,}|(_[ \t]*){3,})$`),
}

var reFencedCodeBlock = regexp.MustCompile("(?ms)^ {0,3}```[^`\n]*\n.*?^ {0,3}```")

// LooksLikeMarkdown is a cheap guess whether text is worth a markdown parse.
// False positives are fine, the parser copes with plain text.
func LooksLikeMarkdown(text string) bool {
	var h1, h2 bool
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		for _, re := range markdownLinePatterns {
			if re.MatchString(line) {
				return true
			}
		}
		h1 = h1 || strings.HasPrefix(line, "# ")
		h2 = h2 || strings.HasPrefix(line, "## ")
	}
	return h1 && h2
}

// HasFencedCodeBlock reports whether text contains a closed ``` fence.
func HasFencedCodeBlock(text string) bool {
	return reFencedCodeBlock.MatchString(strings.ReplaceAll(text, "\r\n", "\n"))
}
