package model

import "fmt"

// MarkType is the closed set of attribution kinds. Inline kinds are carried as
// spans over text, block kinds are carried by the block content itself.
type MarkType int

const (
	MarkNone MarkType = iota
	MarkBold
	MarkItalic
	MarkUnderline
	MarkStrikethrough
	MarkSuperscript
	MarkSubscript
	MarkLink
	MarkHeaderLevel
	MarkBlockquote
	MarkCode
	MarkTask
)

var markTypeNames = map[MarkType]string{
	MarkNone:          "none",
	MarkBold:          "bold",
	MarkItalic:        "italic",
	MarkUnderline:     "underline",
	MarkStrikethrough: "strikethrough",
	MarkSuperscript:   "superscript",
	MarkSubscript:     "subscript",
	MarkLink:          "link",
	MarkHeaderLevel:   "headerLevel",
	MarkBlockquote:    "blockquote",
	MarkCode:          "code",
	MarkTask:          "task",
}

func (t MarkType) String() string {
	if name, ok := markTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MarkType(%d)", int(t))
}

// IsInline reports whether marks of this type may be used as text spans.
func (t MarkType) IsInline() bool {
	switch t {
	case MarkBold, MarkItalic, MarkUnderline, MarkStrikethrough, MarkSuperscript, MarkSubscript, MarkLink:
		return true
	}
	return false
}

// Mark is one attribution. Param holds the url of a link, Level the header
// level and Checked the task state; other kinds carry no payload.
type Mark struct {
	Type    MarkType `json:"type" yaml:"type"`
	Param   string   `json:"param,omitempty" yaml:"param,omitempty"`
	Level   int      `json:"level,omitempty" yaml:"level,omitempty"`
	Checked bool     `json:"checked,omitempty" yaml:"checked,omitempty"`
}

func (m Mark) IsZero() bool {
	return m.Type == MarkNone
}

func (m Mark) String() string {
	switch m.Type {
	case MarkLink:
		return fmt.Sprintf("link(%s)", m.Param)
	case MarkHeaderLevel:
		return fmt.Sprintf("headerLevel(%d)", m.Level)
	case MarkTask:
		return fmt.Sprintf("task(%t)", m.Checked)
	}
	return m.Type.String()
}

func Bold() Mark          { return Mark{Type: MarkBold} }
func Italic() Mark        { return Mark{Type: MarkItalic} }
func Underline() Mark     { return Mark{Type: MarkUnderline} }
func Strikethrough() Mark { return Mark{Type: MarkStrikethrough} }
func Superscript() Mark   { return Mark{Type: MarkSuperscript} }
func Subscript() Mark     { return Mark{Type: MarkSubscript} }
func Link(url string) Mark {
	return Mark{Type: MarkLink, Param: url}
}

func HeaderLevel(level int) Mark {
	return Mark{Type: MarkHeaderLevel, Level: level}
}

func TaskMark(checked bool) Mark {
	return Mark{Type: MarkTask, Checked: checked}
}

// Span is an inline mark over the rune range [Start, End]. End is inclusive.
type Span struct {
	Mark  `yaml:",inline"`
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func NewSpan(m Mark, start, end int) Span {
	return Span{Mark: m, Start: start, End: end}
}

func (s Span) Len() int {
	return s.End - s.Start + 1
}

func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d]", s.Mark, s.Start, s.End)
}
