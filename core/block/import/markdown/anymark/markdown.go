package anymark

import (
	"bytes"
	"regexp"
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/anyproto/anytype-paste/util/ids"
)

var (
	reEmptyLinkText = regexp.MustCompile(`\[[\s]*?\]\(([\s\S]*?)\)`)
	reManyNewlines  = regexp.MustCompile(`\n{3,}`)
)

// BlockParser turns markdown source into parser blocks.
type BlockParser interface {
	Parse(source []byte) ([]*Block, error)
}

// Parser is the goldmark backed BlockParser.
type Parser struct {
	softLimit int
}

func NewParser(textBlockSoftLimit int) *Parser {
	return &Parser{softLimit: textBlockSoftLimit}
}

func (p *Parser) Parse(source []byte) ([]*Block, error) {
	br := newBlocksRenderer(ids.NewSequence("b"), p.softLimit)
	if err := convertBlocks(source, NewRenderer(br)); err != nil {
		return nil, errors.Wrap(err, "render markdown")
	}
	return br.GetBlocks(), nil
}

func convertBlocks(source []byte, r ...renderer.NodeRenderer) error {
	nodeRenderers := make([]util.PrioritizedValue, 0, len(r))
	for _, nodeRenderer := range r {
		nodeRenderers = append(nodeRenderers, util.Prioritized(nodeRenderer, 100))
	}
	gm := goldmark.New(goldmark.WithRenderer(
		renderer.NewRenderer(renderer.WithNodeRenderers(nodeRenderers...)),
	), goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.TaskList))
	return gm.Convert(source, &bytes.Buffer{})
}

// HTMLToMarkdown renders html as markdown text. It is used to derive a text
// representation when the clipboard carries html only.
func HTMLToMarkdown(source string) (string, error) {
	converter := html2md.NewConverter("", true, &html2md.Options{
		EscapeMode:     "disabled",
		EmDelimiter:    "*",
		CodeBlockStyle: "fenced",
	})
	converter.Use(plugin.GitHubFlavored())
	converter.AddRules(getCustomHTMLRules()...)
	md, err := converter.ConvertString(source)
	if err != nil {
		return "", errors.Wrap(err, "convert html to markdown")
	}
	md = reEmptyLinkText.ReplaceAllString(md, `[$1]($1)`)
	md = reManyNewlines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}

func getCustomHTMLRules() []html2md.Rule {
	span := html2md.Rule{
		Filter: []string{"span"},
		Replacement: func(content string, selec *goquery.Selection, opt *html2md.Options) *string {
			return html2md.String(content)
		},
	}

	del := html2md.Rule{
		Filter: []string{"del", "s", "strike"},
		Replacement: func(content string, selec *goquery.Selection, options *html2md.Options) *string {
			content = strings.TrimSpace(content)
			if content == "" {
				return html2md.String("")
			}
			return html2md.String("~~" + content + "~~")
		},
	}

	underscore := html2md.Rule{
		Filter: []string{"u", "ins"},
		Replacement: func(content string, selec *goquery.Selection, opt *html2md.Options) *string {
			content = strings.TrimSpace(content)
			return html2md.String("<u>" + content + "</u>")
		},
	}

	script := html2md.Rule{
		Filter: []string{"sup", "sub"},
		Replacement: func(content string, selec *goquery.Selection, opt *html2md.Options) *string {
			tag := goquery.NodeName(selec)
			return html2md.String("<" + tag + ">" + content + "</" + tag + ">")
		},
	}

	anohref := html2md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, options *html2md.Options) *string {
			if _, exists := selec.Attr("href"); exists {
				return nil
			}
			return html2md.String(content)
		},
	}

	hr := html2md.Rule{
		Filter: []string{"hr"},
		Replacement: func(content string, selec *goquery.Selection, options *html2md.Options) *string {
			return html2md.String("\n\n___\n\n")
		},
	}

	return []html2md.Rule{span, del, underscore, script, anohref, hr}
}
