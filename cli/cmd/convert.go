package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/anyproto/anytype-paste/cli/internal"
	"github.com/anyproto/anytype-paste/core/block/editor/clipboard"
	"github.com/anyproto/anytype-paste/core/block/editor/state"
	"github.com/anyproto/anytype-paste/metrics"
	"github.com/anyproto/anytype-paste/pkg/lib/model"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type convertOptions struct {
	htmlPath      string
	textPath      string
	fromClipboard bool
	format        string
	stats         bool
}

type spanView struct {
	Mark  string `json:"mark" yaml:"mark"`
	Url   string `json:"url,omitempty" yaml:"url,omitempty"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

type blockView struct {
	Id    string                 `json:"id" yaml:"id"`
	Kind  string                 `json:"kind" yaml:"kind"`
	Text  string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Spans []spanView             `json:"spans,omitempty" yaml:"spans,omitempty"`
	Attrs map[string]interface{} `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

type documentView struct {
	Source   string      `json:"source" yaml:"source"`
	Warnings string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Blocks   []blockView `json:"blocks" yaml:"blocks"`
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Paste into an empty document and print the blocks",
		Long:  `Reads html and text slots from files, the system clipboard or stdin and prints the resulting document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var reader clipboard.Reader
			switch {
			case opts.fromClipboard:
				reader = internal.SystemReader{}
			case opts.htmlPath != "" || opts.textPath != "":
				reader = internal.FileReader{HtmlPath: opts.htmlPath, TextPath: opts.textPath}
			default:
				reader = internal.StreamReader{R: cmd.InOrStdin()}
			}

			doc, err := state.NewDoc()
			if err != nil {
				return err
			}
			sel := state.Selection{}
			res, err := clipboard.New(root.cfg).PasteFrom(cmd.Context(), reader, doc, &sel)
			if err != nil {
				return err
			}
			view := documentView{Source: string(res.Source), Blocks: viewBlocks(doc)}
			if res.Warnings != nil {
				view.Warnings = res.Warnings.Error()
			}
			if err = writeDocument(cmd.OutOrStdout(), opts.format, view); err != nil {
				return err
			}
			if opts.stats {
				return metrics.WriteSummary(cmd.ErrOrStderr(), prometheus.DefaultGatherer)
			}
			return nil
		},
	}
	convertCmd.Flags().StringVar(&opts.htmlPath, "html", "", "file with the html slot")
	convertCmd.Flags().StringVar(&opts.textPath, "text", "", "file with the plain text slot")
	convertCmd.Flags().BoolVar(&opts.fromClipboard, "clipboard", false, "read the system clipboard")
	convertCmd.Flags().StringVar(&opts.format, "format", formatYAML, "output format: yaml or json")
	convertCmd.Flags().BoolVar(&opts.stats, "stats", false, "print paste counters to stderr")
	return convertCmd
}

func writeDocument(w io.Writer, format string, view documentView) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

func viewBlocks(doc *state.Doc) []blockView {
	res := make([]blockView, 0, doc.Len())
	doc.Iterate(func(b *model.Block) bool {
		v := blockView{Id: b.Id, Kind: b.Kind().String(), Attrs: map[string]interface{}{}}
		if t := b.GetText(); t != nil {
			v.Text = t.Text
			for _, s := range t.Spans {
				v.Spans = append(v.Spans, spanView{Mark: s.Type.String(), Url: s.Param, Start: s.Start, End: s.End})
			}
		}
		switch c := b.Content.(type) {
		case *model.Paragraph:
			if c.BlockType != "" {
				v.Attrs["blockType"] = c.BlockType
			}
			if c.TextAlign != "" {
				v.Attrs["textAlign"] = c.TextAlign
			}
		case *model.Heading:
			v.Attrs["level"] = c.Level
		case *model.ListItem:
			v.Attrs["ordered"] = c.Ordered
			v.Attrs["indent"] = c.Indent
		case *model.CodeBlock:
			if c.Language != "" {
				v.Attrs["language"] = c.Language
			}
		case *model.Image:
			v.Attrs["url"] = c.Url
			if c.AltText != "" {
				v.Attrs["alt"] = c.AltText
			}
		case *model.Task:
			v.Attrs["checked"] = c.Checked
		}
		if len(v.Attrs) == 0 {
			v.Attrs = nil
		}
		res = append(res, v)
		return true
	})
	return res
}
