package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/anyproto/anytype-paste/core/config"
)

type rootOptions struct {
	configPath string
	cfg        *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:          "pasteconv",
		Short:        "Convert clipboard content into document blocks",
		Long:         `Resolve html, markdown or plain text from the clipboard or files into blocks the way a paste into a document would.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = config.New()
			if opts.configPath != "" {
				if err := opts.cfg.LoadFile(opts.configPath); err != nil {
					return err
				}
			}
			if err := opts.cfg.LoadEnv(); err != nil {
				return err
			}
			opts.cfg.ApplyLogging()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "yaml config file")

	rootCmd.AddCommand(newConvertCmd(opts))
	rootCmd.AddCommand(newDetectCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
