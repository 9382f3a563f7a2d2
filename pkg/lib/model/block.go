package model

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

type Kind int

const (
	KindParagraph Kind = iota + 1
	KindHeading
	KindListItem
	KindBlockquote
	KindCode
	KindHorizontalRule
	KindImage
	KindTask
)

var kindNames = map[Kind]string{
	KindParagraph:      "paragraph",
	KindHeading:        "heading",
	KindListItem:       "listItem",
	KindBlockquote:     "blockquote",
	KindCode:           "code",
	KindHorizontalRule: "horizontalRule",
	KindImage:          "image",
	KindTask:           "task",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Content is the closed set of block payloads.
type Content interface {
	Kind() Kind
}

type Paragraph struct {
	Text      Text
	BlockType string
	TextAlign string
}

type Heading struct {
	Text  Text
	Level int
}

type ListItem struct {
	Text    Text
	Ordered bool
	Indent  int
}

type Blockquote struct {
	Text Text
}

// CodeBlock text is raw and never carries spans.
type CodeBlock struct {
	Text     Text
	Language string
}

type HorizontalRule struct{}

type Image struct {
	Url     string
	AltText string
}

type Task struct {
	Text    Text
	Checked bool
}

func (*Paragraph) Kind() Kind      { return KindParagraph }
func (*Heading) Kind() Kind        { return KindHeading }
func (*ListItem) Kind() Kind       { return KindListItem }
func (*Blockquote) Kind() Kind     { return KindBlockquote }
func (*CodeBlock) Kind() Kind      { return KindCode }
func (*HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (*Image) Kind() Kind          { return KindImage }
func (*Task) Kind() Kind           { return KindTask }

// Block is one structural unit of a document. Id is unique within a document.
type Block struct {
	Id      string
	Content Content
}

func (b *Block) Kind() Kind {
	if b == nil || b.Content == nil {
		return 0
	}
	return b.Content.Kind()
}

// GetText returns the text of text-bearing blocks and nil otherwise.
func (b *Block) GetText() *Text {
	if b == nil {
		return nil
	}
	switch c := b.Content.(type) {
	case *Paragraph:
		return &c.Text
	case *Heading:
		return &c.Text
	case *ListItem:
		return &c.Text
	case *Blockquote:
		return &c.Text
	case *CodeBlock:
		return &c.Text
	case *Task:
		return &c.Text
	}
	return nil
}

// Marks returns the block level attribution of the block, if any.
func (b *Block) Marks() []Mark {
	switch c := b.Content.(type) {
	case *Heading:
		return []Mark{HeaderLevel(c.Level)}
	case *Blockquote:
		return []Mark{{Type: MarkBlockquote}}
	case *CodeBlock:
		return []Mark{{Type: MarkCode, Param: c.Language}}
	case *Task:
		return []Mark{TaskMark(c.Checked)}
	}
	return nil
}

// Copy makes a deep copy of the block, content included.
func (b *Block) Copy() *Block {
	res := &Block{Id: b.Id}
	if b.Content != nil {
		res.Content = deepcopy.Copy(b.Content).(Content)
	}
	return res
}

func (b *Block) String() string {
	if t := b.GetText(); t != nil {
		return fmt.Sprintf("%s(%s) %s", b.Kind(), b.Id, t)
	}
	switch c := b.Content.(type) {
	case *Image:
		return fmt.Sprintf("%s(%s) %s", b.Kind(), b.Id, c.Url)
	}
	return fmt.Sprintf("%s(%s)", b.Kind(), b.Id)
}

func NewParagraph(id string, text Text) *Block {
	return &Block{Id: id, Content: &Paragraph{Text: text}}
}

func NewHeading(id string, text Text, level int) *Block {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	return &Block{Id: id, Content: &Heading{Text: text, Level: level}}
}

func NewListItem(id string, text Text, ordered bool, indent int) *Block {
	return &Block{Id: id, Content: &ListItem{Text: text, Ordered: ordered, Indent: indent}}
}

func NewBlockquote(id string, text Text) *Block {
	return &Block{Id: id, Content: &Blockquote{Text: text}}
}

func NewCodeBlock(id, code, language string) *Block {
	return &Block{Id: id, Content: &CodeBlock{Text: Text{Text: code}, Language: language}}
}

func NewHorizontalRule(id string) *Block {
	return &Block{Id: id, Content: &HorizontalRule{}}
}

func NewImage(id, url, alt string) *Block {
	return &Block{Id: id, Content: &Image{Url: url, AltText: alt}}
}

func NewTask(id string, text Text, checked bool) *Block {
	return &Block{Id: id, Content: &Task{Text: text, Checked: checked}}
}

// IdAllocator hands out block ids. Ids are never reused by one allocator.
type IdAllocator interface {
	NewId() string
}

// IdAllocatorFunc adapts a function to IdAllocator.
type IdAllocatorFunc func() string

func (f IdAllocatorFunc) NewId() string {
	return f()
}
