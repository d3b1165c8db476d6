package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/spardeck/marine-measure/internal/units"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Locale string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the measure CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Marine measurement toolbox",
		Long:  "Unit conversion, localized formatting and water property lookups for naval architecture calculations.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := language.Parse(opts.Locale); err != nil {
				return fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "en", "locale for unit names and symbols")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewSystemsCommand(opts))
	cmd.AddCommand(NewWaterCommand(opts))
	cmd.AddCommand(NewAnchorsCommand(opts))
	cmd.AddCommand(NewConformanceCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newConverter builds the catalog-backed converter every command uses.
// Fallback conversions are reported on stderr so scripted stdout stays
// clean.
func newConverter(stderr io.Writer) *units.Converter {
	return units.NewConverter(units.Default(), func(e units.FallbackEvent) {
		fmt.Fprintf(stderr, "warning: no conversion factors for category %q (%s to %s); value returned unchanged\n",
			e.Category, e.From, e.To)
	})
}
