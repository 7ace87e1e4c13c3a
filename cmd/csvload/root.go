package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvasset/assets"
	"github.com/JonMunkholm/csvasset/internal/config"
	"github.com/JonMunkholm/csvasset/internal/core"
	"github.com/JonMunkholm/csvasset/internal/logging"
	"github.com/JonMunkholm/csvasset/internal/source"
)

var (
	// Version information (set during build)
	Version   = "dev"
	BuildTime = "unknown"
)

// cfg is loaded once in PersistentPreRunE and shared by every subcommand.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "csvload",
	Short: "Load and parse CSV datasets",
	Long: `csvload resolves a CSV dataset by name and parses it into a header and rows.

A name is looked up, in order:
  - under DATA_DIR/DATA_OFFSET on the local disk
  - in the datasets bundled into the binary
  - in ASSET_S3_BUCKET, when one is configured

Settings come from the environment and an optional .env file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "csvload %s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env and the configuration, then configures logging.
// Logs go to stderr so stdout carries only command output.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// newLoader builds the source chain from cfg. The S3 client is only created
// when a bucket is configured.
func newLoader(ctx context.Context) (*core.Loader, error) {
	var remote source.ObjectGetter
	if cfg.Source.RemoteEnabled() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		remote = s3.NewFromConfig(awsCfg)
	}

	resolver := source.Build(cfg.Source, assets.FS, remote)
	slog.Debug("source chain", "sources", resolver.Sources())

	return core.NewLoader(resolver, cfg.Source.MaxBytes), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
