package cli

import (
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file|-]",
	Short: "Guess the certificate template of OCR text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		cmd.Println(string(engine.Detect(text)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
