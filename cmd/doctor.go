package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/tanq16/ytmp3/internal/output"
	"github.com/tanq16/ytmp3/internal/runner"
	"github.com/tanq16/ytmp3/internal/utils"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that yt-dlp and ffmpeg are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := opts.Tool
			if tool == "" {
				tool = utils.ResolveTool(utils.DefaultTool)
			}
			t := output.NewTable("Tool", "Found", "Detail")
			version, err := runner.New(tool).Version()
			if err != nil {
				t.AddRow("yt-dlp", output.FError("no"), err.Error())
			} else {
				t.AddRow("yt-dlp", output.FSuccess("yes"), fmt.Sprintf("%s (%s)", tool, version))
			}
			// yt-dlp needs ffmpeg for --extract-audio
			if path, err := exec.LookPath("ffmpeg"); err != nil {
				t.AddRow("ffmpeg", output.FError("no"), "not found on PATH")
			} else {
				t.AddRow("ffmpeg", output.FSuccess("yes"), path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}
