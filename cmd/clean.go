package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tanq16/ytmp3/internal/output"
	"github.com/tanq16/ytmp3/internal/utils"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove partial yt-dlp files from the output directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := utils.DefaultOutputDir
			if len(args) == 1 {
				dir = args[0]
			}
			removed, err := utils.CleanPartials(dir)
			if err != nil {
				return fmt.Errorf("error cleaning %s: %w", dir, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.FSuccess(fmt.Sprintf("Removed %d partial files from %s", len(removed), dir)))
			return nil
		},
	}
}
