package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halcyon-tools/ytfetch/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ytfetch",
	Short: "YouTube transcript fetch CLI",
	Long:  "ytfetch fetches YouTube video transcripts as structured JSON, with a static registry describing the available tools.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("ytfetch version %s\n", version))

	rootCmd.AddCommand(cli.NewFetchCmd())
	rootCmd.AddCommand(cli.NewToolsCmd())
}
