package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Load datasets and print them as tables",
	Long: `Load each named dataset and print its header and rows.

Files are loaded concurrently and printed in the order given. The first
line of each file is its header; blank lines are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("format", "f", "", "output format: table, json or yaml (default: table on a terminal, else json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = defaultFormat(cmd.OutOrStdout())
	}
	if err := validFormat(format); err != nil {
		return err
	}

	loader, err := newLoader(cmd.Context())
	if err != nil {
		return err
	}

	results := make([]namedTable, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, name := range args {
		g.Go(func() error {
			table, err := loader.LoadAndParse(ctx, name)
			if err != nil {
				return err
			}
			results[i] = namedTable{File: name, Table: table}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeTables(cmd.OutOrStdout(), format, results)
}
