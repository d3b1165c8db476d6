package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spardeck/marine-measure/internal/units"
)

// FormatResult holds a rendered measurement string.
type FormatResult struct {
	Formatted string `json:"formatted"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		system   string
		category string
		decimals int
	)

	cmd := &cobra.Command{
		Use:   "format <value>",
		Short: "Render a value with its unit symbol",
		Long: `Render a value with the base-unit symbol of a system and category,
e.g. "10.00 m". Rounding is half away from zero. The symbol follows
the --locale flag.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(rootOpts, cmd, args[0], system, category, decimals)
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "unit system (required)")
	_ = cmd.MarkFlagRequired("system")
	cmd.Flags().StringVar(&category, "category", "", "measurement category, e.g. Length (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().IntVar(&decimals, "decimals", -1, "fractional digits (default 2)")

	return cmd
}

func runFormat(opts *RootOptions, cmd *cobra.Command, rawValue, system, category string, decimals int) error {
	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid value %q", rawValue), err)
	}

	conv := newConverter(cmd.ErrOrStderr())
	formatted, err := conv.FormatValue(value, units.SystemID(system), units.CategoryID(category), opts.Locale, decimals)
	if err != nil {
		return WrapExitError(ExitCommandError, "format value", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(FormatResult{Formatted: formatted})
	}

	fmt.Fprintln(formatter.Writer, formatted)
	return nil
}
