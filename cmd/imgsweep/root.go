package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for imgsweep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imgsweep",
		Short: "Save every image on a web page at its best resolution",
		Long: `imgsweep enumerates the images of a web page, resolves each one to the
largest variant it declares in srcset, and saves the bytes locally as
image_1.<ext>, image_2.<ext>, ... in document order.

Images that fail to download are logged and skipped; the numbering
only advances on success.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
