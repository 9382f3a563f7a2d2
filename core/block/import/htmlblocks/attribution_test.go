package htmlblocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

func attrs(kv ...string) []html.Attribute {
	res := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		res = append(res, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return res
}

func TestResolveAttribution(t *testing.T) {
	for _, tc := range []struct {
		name  string
		tag   string
		attrs []html.Attribute
		mark  model.Mark
		ok    bool
	}{
		{"bold tag", "b", nil, model.Bold(), true},
		{"strong tag", "STRONG", nil, model.Bold(), true},
		{"em tag", "em", nil, model.Italic(), true},
		{"ins tag", "ins", nil, model.Underline(), true},
		{"del tag", "del", nil, model.Strikethrough(), true},
		{"sup tag", "sup", nil, model.Superscript(), true},
		{"sub tag", "sub", nil, model.Subscript(), true},
		{"link", "a", attrs("href", "https://anytype.io"), model.Link("https://anytype.io"), true},
		{"anchor without href", "a", attrs("name", "top"), model.Mark{}, false},
		{"link wins over style", "a", attrs("href", "x", "style", "font-weight:bold"), model.Link("x"), true},
		{"tag wins over class", "i", attrs("class", "bold"), model.Italic(), true},
		{"font weight 700", "span", attrs("style", "color: red; font-weight: 700"), model.Bold(), true},
		{"font weight 400", "span", attrs("style", "font-weight: 400"), model.Mark{}, false},
		{"font weight bold important", "span", attrs("style", "font-weight: bold !important"), model.Bold(), true},
		{"italic style", "span", attrs("style", "font-style:italic"), model.Italic(), true},
		{"underline style", "span", attrs("style", "text-decoration: underline"), model.Underline(), true},
		{"line-through style", "span", attrs("style", "text-decoration: line-through"), model.Underline(), true},
		{"vertical align", "span", attrs("style", "vertical-align: super"), model.Superscript(), true},
		{"data-style", "span", attrs("data-style", "font-weight:800"), model.Bold(), true},
		{"style wins over class", "span", attrs("style", "font-style:italic", "class", "bold"), model.Italic(), true},
		{"fw-bold class", "div", attrs("class", "text-muted fw-bold"), model.Bold(), true},
		{"italic class", "div", attrs("class", "Italic"), model.Italic(), true},
		{"underline class", "div", attrs("class", "underline"), model.Underline(), true},
		{"plain div", "div", nil, model.Mark{}, false},
		{"unknown style", "span", attrs("style", "color"), model.Mark{}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := ResolveAttribution(tc.tag, tc.attrs)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.mark, m)
		})
	}
}
