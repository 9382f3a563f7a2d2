package anymark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

func parse(t *testing.T, source string) []*Block {
	t.Helper()
	blocks, err := NewParser(TextBlockLengthSoftLimit).Parse([]byte(source))
	require.NoError(t, err)
	for _, b := range blocks {
		if b.Content == nil {
			continue
		}
		if txt := (&model.Block{Content: b.Content}).GetText(); txt != nil {
			require.NoError(t, txt.Validate())
		}
	}
	return blocks
}

func TestParser_CodeFence(t *testing.T) {
	blocks := parse(t, "```js\nconsole.log(1)\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, &model.CodeBlock{Text: model.Text{Text: "console.log(1)"}, Language: "js"}, blocks[0].Content)
	assert.Equal(t, "CodeBlock", blocks[0].Kind)

	t.Run("indented", func(t *testing.T) {
		blocks := parse(t, "text\n\n    a := 1\n    b := 2\n")
		require.Len(t, blocks, 2)
		assert.Equal(t, &model.CodeBlock{Text: model.Text{Text: "a := 1\nb := 2"}}, blocks[1].Content)
	})
}

func TestParser_Inline(t *testing.T) {
	t.Run("emphasis", func(t *testing.T) {
		blocks := parse(t, "a *b* __c__ ~~d~~")
		require.Len(t, blocks, 1)
		assert.Equal(t, &model.Paragraph{Text: model.NewText("a b c d",
			model.NewSpan(model.Italic(), 2, 2),
			model.NewSpan(model.Bold(), 4, 4),
			model.NewSpan(model.Strikethrough(), 6, 6),
		)}, blocks[0].Content)
	})
	t.Run("heading keeps links", func(t *testing.T) {
		blocks := parse(t, "# Title **bold** [l](https://x.io)\n")
		require.Len(t, blocks, 1)
		assert.Equal(t, &model.Heading{Level: 1, Text: model.Text{
			Text:  "Title bold l",
			Spans: []model.Span{model.NewSpan(model.Link("https://x.io"), 11, 11)},
		}}, blocks[0].Content)
	})
	t.Run("raw html", func(t *testing.T) {
		blocks := parse(t, "x <u>under</u> y<sup>2</sup>")
		require.Len(t, blocks, 1)
		assert.Equal(t, model.NewText("x under y2",
			model.NewSpan(model.Underline(), 2, 6),
			model.NewSpan(model.Superscript(), 9, 9),
		), blocks[0].Content.(*model.Paragraph).Text)
	})
	t.Run("code span and entity", func(t *testing.T) {
		blocks := parse(t, "use `fmt.Println` &amp; go")
		require.Len(t, blocks, 1)
		assert.Equal(t, model.NewText("use fmt.Println & go"), blocks[0].Content.(*model.Paragraph).Text)
	})
	t.Run("autolink", func(t *testing.T) {
		blocks := parse(t, "<https://anytype.io>")
		require.Len(t, blocks, 1)
		assert.Equal(t, model.NewText("https://anytype.io", model.NewSpan(model.Link("https://anytype.io"), 0, 17)),
			blocks[0].Content.(*model.Paragraph).Text)
	})
	t.Run("soft break", func(t *testing.T) {
		blocks := parse(t, "line1\nline2")
		require.Len(t, blocks, 1)
		assert.Equal(t, "line1\nline2", blocks[0].Content.(*model.Paragraph).Text.Text)
	})
	t.Run("soft limit", func(t *testing.T) {
		blocks, err := NewParser(5).Parse([]byte("hello world\nnext"))
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, "hello world", blocks[0].Content.(*model.Paragraph).Text.Text)
		assert.Equal(t, "next", blocks[1].Content.(*model.Paragraph).Text.Text)
	})
	t.Run("soft limit inside a mark", func(t *testing.T) {
		blocks, err := NewParser(10).Parse([]byte("w w w w w w w w w w **bold\nmore** <u>tail\nend</u>"))
		require.NoError(t, err)
		require.Len(t, blocks, 2)
		assert.Equal(t, &model.Paragraph{Text: model.NewText("w w w w w w w w w w bold",
			model.NewSpan(model.Bold(), 20, 23),
		)}, blocks[0].Content)
		assert.Equal(t, &model.Paragraph{Text: model.NewText("more tail\nend",
			model.NewSpan(model.Bold(), 0, 3),
			model.NewSpan(model.Underline(), 5, 12),
		)}, blocks[1].Content)
	})
}

func TestParser_Blocks(t *testing.T) {
	t.Run("lists", func(t *testing.T) {
		blocks := parse(t, "- one\n- two\n  1. inner\n- [x] done\n")
		require.Len(t, blocks, 4)
		assert.Equal(t, &model.ListItem{Text: model.NewText("one")}, blocks[0].Content)
		assert.Equal(t, &model.ListItem{Text: model.NewText("two")}, blocks[1].Content)
		assert.Equal(t, &model.ListItem{Text: model.NewText("inner"), Ordered: true, Indent: 1}, blocks[2].Content)
		assert.Equal(t, &model.Task{Text: model.NewText("done"), Checked: true}, blocks[3].Content)
	})
	t.Run("blockquote", func(t *testing.T) {
		blocks := parse(t, "> one\n>\n> two")
		require.Len(t, blocks, 1)
		assert.Equal(t, &model.Blockquote{Text: model.NewText("one\ntwo")}, blocks[0].Content)
	})
	t.Run("image and divider", func(t *testing.T) {
		blocks := parse(t, "para ![alt](https://i.io/a.png)\n\n---\n")
		require.Len(t, blocks, 3)
		assert.Equal(t, &model.Paragraph{Text: model.NewText("para")}, blocks[0].Content)
		assert.Equal(t, &model.Image{Url: "https://i.io/a.png", AltText: "alt"}, blocks[1].Content)
		assert.Equal(t, &model.HorizontalRule{}, blocks[2].Content)
	})
	t.Run("unsupported", func(t *testing.T) {
		blocks := parse(t, "<div>raw</div>\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
		require.Len(t, blocks, 2)
		assert.Equal(t, "HTMLBlock", blocks[0].Kind)
		assert.Nil(t, blocks[0].Content)
		assert.Equal(t, "Table", blocks[1].Kind)
		assert.Nil(t, blocks[1].Content)
	})
	t.Run("ids are local to a parse", func(t *testing.T) {
		p := NewParser(TextBlockLengthSoftLimit)
		first, err := p.Parse([]byte("a"))
		require.NoError(t, err)
		second, err := p.Parse([]byte("b"))
		require.NoError(t, err)
		assert.Equal(t, first[0].Id, second[0].Id)
	})
}

func TestHTMLToMarkdown(t *testing.T) {
	md, err := HTMLToMarkdown(`<h1>Title</h1><p>a <b>bold</b> <u>under</u> <a href="https://x.io">link</a></p>`)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "<u>under</u>")
	assert.Contains(t, md, "[link](https://x.io)")
	assert.True(t, LooksLikeMarkdown(md))
}
