// Package cli implements the certextract command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/extract"
)

var (
	version = "dev"

	translationsFile string
	verbose          bool

	logger *slog.Logger
	engine *extract.Engine
)

var rootCmd = &cobra.Command{
	Use:   "certextract",
	Short: "Extract structured fields from OCR text of civil-registry certificates",
	Long: `certextract reads the OCR text of birth, marriage, divorce and
population-registry certificates and prints the extracted record as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		dict, err := dictionary.Load(translationsFile)
		if err != nil {
			return fmt.Errorf("loading dictionaries: %w", err)
		}
		engine = extract.NewEngine(dict, logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&translationsFile, "translations", os.Getenv("EXTRA_TRANSLATIONS"), "TOML file merged into the built-in dictionaries")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every extracted field")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}
