package main

import (
	"io"

	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw <file>",
	Short: "Print a dataset's text as resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader(cmd.Context())
		if err != nil {
			return err
		}

		text, err := loader.LoadAssetFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	},
}
