package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

var (
	extractTemplate string
	extractSummary  bool
	extractValidate bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract a certificate record from OCR text",
	Long: `Reads OCR text from a file or stdin and prints the extracted record.
Use --template auto to detect the certificate type from the text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractTemplate, "template", "t", string(constants.TemplateAuto), "certificate template ("+fmt.Sprint(constants.AsStringSlice())+" or auto)")
	extractCmd.Flags().BoolVar(&extractSummary, "summary", false, "print a key: value summary instead of JSON")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "check the record against its JSON schema")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	t, ok := constants.Canonicalize(extractTemplate)
	if !ok {
		return fmt.Errorf("unknown template %q", extractTemplate)
	}
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	rec := engine.Extract(text, t)
	if extractValidate {
		if err := record.Validate(rec); err != nil {
			return fmt.Errorf("record does not match schema: %w", err)
		}
	}
	if extractSummary {
		cmd.Print(record.Summary(rec))
		return nil
	}

	data, err := json.MarshalIndent(rec.Map(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
