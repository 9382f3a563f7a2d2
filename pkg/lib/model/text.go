package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Text is a plain string with inline spans. Span offsets count runes and
// the rune length of Text is the bound for all of them.
type Text struct {
	Text  string `json:"text" yaml:"text"`
	Spans []Span `json:"spans,omitempty" yaml:"spans,omitempty"`
}

// NewText builds a normalized Text: spans are clipped to the text, empty and
// identical spans are dropped and the rest are sorted.
func NewText(s string, spans ...Span) Text {
	t := Text{Text: s, Spans: spans}
	t.Spans = normalizeSpans(spans, t.Len())
	return t
}

func (t Text) Len() int {
	return utf8.RuneCountInString(t.Text)
}

func (t Text) IsEmpty() bool {
	return t.Text == ""
}

// Validate checks the span invariants: bounds, inline kinds and no two spans
// with the same mark over the same range.
func (t Text) Validate() error {
	n := t.Len()
	seen := make(map[Span]struct{}, len(t.Spans))
	for _, s := range t.Spans {
		if !s.Type.IsInline() {
			return fmt.Errorf("span %s: %s is not an inline mark", s, s.Type)
		}
		if s.Start < 0 || s.Start > s.End || s.End >= n {
			return fmt.Errorf("span %s out of text bounds [0:%d]", s, n-1)
		}
		if _, ok := seen[s]; ok {
			return fmt.Errorf("duplicate span %s", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// TrimSpace removes leading and trailing white space, shifting spans so they
// keep covering the same characters.
func (t Text) TrimSpace() Text {
	runes := []rune(t.Text)
	lead := 0
	for lead < len(runes) && unicode.IsSpace(runes[lead]) {
		lead++
	}
	end := len(runes)
	for end > lead && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if lead == 0 && end == len(runes) {
		return t
	}
	spans := make([]Span, 0, len(t.Spans))
	for _, s := range t.Spans {
		s.Start -= lead
		s.End -= lead
		spans = append(spans, s)
	}
	return NewText(string(runes[lead:end]), spans...)
}

// Copy returns a Text that does not share the span slice with t.
func (t Text) Copy() Text {
	if t.Spans == nil {
		return Text{Text: t.Text}
	}
	spans := make([]Span, len(t.Spans))
	copy(spans, t.Spans)
	return Text{Text: t.Text, Spans: spans}
}

// WithoutMarks drops every span except the ones whose type is listed in keep.
func (t Text) WithoutMarks(keep ...MarkType) Text {
	res := Text{Text: t.Text}
	for _, s := range t.Spans {
		for _, k := range keep {
			if s.Type == k {
				res.Spans = append(res.Spans, s)
				break
			}
		}
	}
	return res
}

func (t Text) String() string {
	if len(t.Spans) == 0 {
		return fmt.Sprintf("%q", t.Text)
	}
	parts := make([]string, 0, len(t.Spans))
	for _, s := range t.Spans {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("%q %s", t.Text, strings.Join(parts, " "))
}

func normalizeSpans(spans []Span, n int) []Span {
	if len(spans) == 0 {
		return nil
	}
	res := make([]Span, 0, len(spans))
	seen := make(map[Span]struct{}, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > n-1 {
			s.End = n - 1
		}
		if s.Start > s.End {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	if len(res) == 0 {
		return nil
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Start != res[j].Start {
			return res[i].Start < res[j].Start
		}
		if res[i].End != res[j].End {
			return res[i].End > res[j].End
		}
		return res[i].Type < res[j].Type
	})
	return res
}
