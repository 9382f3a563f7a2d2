package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anyproto/anytype-paste/core/block/import/markdown/anymark"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Tell whether text would be pasted as markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			text := string(data)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "markdown: %t\n", anymark.LooksLikeMarkdown(text))
			fmt.Fprintf(out, "fencedCode: %t\n", anymark.HasFencedCodeBlock(text))
			return nil
		},
	}
}
