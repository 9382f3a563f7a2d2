package htmlblocks

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

var tagMarks = map[string]model.Mark{
	"b":      model.Bold(),
	"strong": model.Bold(),
	"i":      model.Italic(),
	"em":     model.Italic(),
	"u":      model.Underline(),
	"ins":    model.Underline(),
	"s":      model.Strikethrough(),
	"strike": model.Strikethrough(),
	"del":    model.Strikethrough(),
	"sup":    model.Superscript(),
	"sub":    model.Subscript(),
}

// ResolveAttribution maps an element to zero or one inline mark. A link wins
// over the tag name, the tag name wins over style and data-style declarations
// and those win over class names.
func ResolveAttribution(tag string, attrs []html.Attribute) (model.Mark, bool) {
	tag = strings.ToLower(tag)
	if tag == "a" {
		if href := strings.TrimSpace(attrValue(attrs, "href")); href != "" {
			return model.Link(href), true
		}
	}
	if m, ok := tagMarks[tag]; ok {
		return m, true
	}
	for _, key := range []string{"style", "data-style"} {
		if m, ok := markFromStyle(attrValue(attrs, key)); ok {
			return m, true
		}
	}
	return markFromClass(attrValue(attrs, "class"))
}

func markFromStyle(style string) (model.Mark, bool) {
	if style == "" {
		return model.Mark{}, false
	}
	decl := parseStyle(style)
	if isBoldWeight(decl["font-weight"]) {
		return model.Bold(), true
	}
	if decl["font-style"] == "italic" {
		return model.Italic(), true
	}
	if td := decl["text-decoration"] + " " + decl["text-decoration-line"]; strings.Contains(td, "underline") || strings.Contains(td, "line-through") {
		return model.Underline(), true
	}
	switch decl["vertical-align"] {
	case "super":
		return model.Superscript(), true
	case "sub":
		return model.Subscript(), true
	}
	return model.Mark{}, false
}

func markFromClass(class string) (model.Mark, bool) {
	class = strings.ToLower(class)
	switch {
	case class == "":
	case strings.Contains(class, "bold"):
		return model.Bold(), true
	case strings.Contains(class, "italic"):
		return model.Italic(), true
	case strings.Contains(class, "underline"):
		return model.Underline(), true
	}
	return model.Mark{}, false
}

func isBoldWeight(v string) bool {
	switch v {
	case "":
		return false
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(v)
	return err == nil && w >= 700
}

// parseStyle splits an inline css declaration list into lower-cased property/value pairs.
func parseStyle(style string) map[string]string {
	res := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		res[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(v)
	}
	return res
}

func attrValue(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}
