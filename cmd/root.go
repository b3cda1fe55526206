package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tanq16/ytmp3/internal/output"
	"github.com/tanq16/ytmp3/internal/utils"
)

var YtMP3Version = "dev"

type rootOptions struct {
	URL         string
	File        string
	OutputDir   string
	Tool        string
	ExtraArgs   []string
	FailOnError bool
	Debug       bool
}

// exitError carries a process exit code out of RunE.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}
	cmd := &cobra.Command{
		Use:     "ytmp3 (--url URL | --file FILE) [--output-dir DIR]",
		Short:   "Download YouTube videos as MP3 files",
		Version: YtMP3Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.InitLogger(opts.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			if cmd.Flags().Changed("url") && strings.TrimSpace(opts.URL) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), output.FError("Error: --url must not be empty"))
				return exitError{1}
			}
			if opts.Tool == "" {
				opts.Tool = utils.ResolveTool(utils.DefaultTool)
			}
			if code := run(cmd.Context(), cmd.OutOrStdout(), opts); code != 0 {
				return exitError{code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.URL, "url", "u", "", "Single YouTube URL to download")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "File containing YouTube URLs (one per line, YAML list, or s3://bucket/key)")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", utils.DefaultOutputDir, "Output directory for MP3 files")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsOneRequired("url", "file")

	// flags without shorthand
	cmd.PersistentFlags().StringVar(&opts.Tool, "ytdlp", "", "Path to the yt-dlp executable (default: PATH, then next to ytmp3)")
	cmd.Flags().StringArrayVar(&opts.ExtraArgs, "ytdlp-arg", []string{}, "Extra argument passed to yt-dlp before the URL; can be specified multiple times")
	cmd.Flags().BoolVar(&opts.FailOnError, "fail-on-error", false, "Exit with status 2 when any download failed")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newDoctorCmd(&opts))
	return cmd
}

func Execute() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}
	os.Exit(1)
}
