/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/roskai-be/service"
	"github.com/tieubaoca/roskai-be/types"
)

// extractCmd runs the document extractor against a local file. Useful to
// check what Rosk AI will actually see from an upload.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text from a document the way the chat pipeline does",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to read file:", err)
			os.Exit(1)
		}
		text, err := service.NewExtractService().Extract(types.UploadedFile{
			Name: filepath.Base(args[0]),
			Data: data,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Extraction failed:", err)
			os.Exit(1)
		}
		fmt.Println(text)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
