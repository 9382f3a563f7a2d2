package htmlblocks

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

var (
	reStyleSheet = regexp.MustCompile(`<style[^>]*>([\s\S]*?)</style>`)
	reSpanRule   = regexp.MustCompile(`span\.([\w-]+)\s*\{([^}]*)\}`)
	reWikiCode   = regexp.MustCompile(`<span\s*?>(\s*?)</span>`)
	reWikiWbr    = regexp.MustCompile(`<wbr[^>]*>`)
)

var sanitizer = newSanitizer()

// Preprocess rewrites clipboard html quirks that do not survive the DOM walk:
// stylesheet-based underline, wiki word break hints and whitespace-only spans.
func Preprocess(source string) string {
	source = transformCSSUnderscore(source)
	// special wiki spaces
	source = strings.ReplaceAll(source, "<span> </span>", " ")
	source = reWikiWbr.ReplaceAllString(source, ``)
	// <pre> <span>\n</span> produced by code viewers
	source = reWikiCode.ReplaceAllString(source, `$1`)
	return source
}

// transformCSSUnderscore replaces spans whose class is underlined by an inline
// stylesheet rule (span.s1 {text-decoration: underline}) with <u> elements.
func transformCSSUnderscore(source string) string {
	var classes []string
	for _, sheet := range reStyleSheet.FindAllStringSubmatch(source, -1) {
		for _, rule := range reSpanRule.FindAllStringSubmatch(sheet[1], -1) {
			decl := parseStyle(rule[2])
			if strings.Contains(decl["text-decoration"], "underline") {
				classes = append(classes, rule[1])
			}
		}
	}
	for _, class := range classes {
		underscore := regexp.MustCompile(`<span class="` + regexp.QuoteMeta(class) + `"[^>]*>([\s\S]*?)</span>`)
		source = underscore.ReplaceAllString(source, "<u>$1</u>")
	}
	return source
}

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("style", "class").Globally()
	p.AllowDataAttributes()
	p.AllowAttrs("align").OnElements("p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "td", "th")
	p.AllowAttrs("type", "checked").OnElements("input")
	return p
}

// Sanitize drops scripts, frames and every attribute the converter does not read.
func Sanitize(source string) string {
	return sanitizer.Sanitize(source)
}

func Parse(source string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	return goquery.NewDocumentFromNode(root), nil
}
