package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spardeck/marine-measure/internal/units"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Value     decimal.Decimal  `json:"value"`
	From      units.SystemID   `json:"from"`
	To        units.SystemID   `json:"to"`
	Category  units.CategoryID `json:"category"`
	Result    decimal.Decimal  `json:"result"`
	Formatted string           `json:"formatted,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		from      string
		to        string
		category  string
		formatted bool
		decimals  int
	)

	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a value between unit systems",
		Long: `Convert a value between the base units of two unit systems.

The value is converted within one measurement category, e.g. a length
in meters (SI) to feet (Imperial). A conversion with no registered
factor returns the value unchanged and prints a warning on stderr.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, args[0], from, to, category, formatted, decimals)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source unit system (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "target unit system (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&category, "category", "", "measurement category, e.g. Length (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().BoolVar(&formatted, "formatted", false, "render the result with its unit symbol")
	cmd.Flags().IntVar(&decimals, "decimals", -1, "fractional digits for --formatted (default 2)")

	return cmd
}

func runConvert(opts *RootOptions, cmd *cobra.Command, rawValue, from, to, category string, formatted bool, decimals int) error {
	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid value %q", rawValue), err)
	}

	conv := newConverter(cmd.ErrOrStderr())
	result := conv.Convert(value, units.SystemID(from), units.SystemID(to), units.CategoryID(category))

	var rendered string
	if formatted {
		rendered, err = conv.FormatValue(result, units.SystemID(to), units.CategoryID(category), opts.Locale, decimals)
		if err != nil {
			return WrapExitError(ExitCommandError, "format result", err)
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(ConversionResult{
			Value:     value,
			From:      units.SystemID(from),
			To:        units.SystemID(to),
			Category:  units.CategoryID(category),
			Result:    result,
			Formatted: rendered,
		})
	}

	if formatted {
		fmt.Fprintln(formatter.Writer, rendered)
		return nil
	}
	fmt.Fprintln(formatter.Writer, result.String())
	return nil
}
