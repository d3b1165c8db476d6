package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spardeck/marine-measure/internal/units"
)

// ConformanceFailure is one vector row whose conversion fell outside
// tolerance.
type ConformanceFailure struct {
	Row      int              `json:"row"`
	Category units.CategoryID `json:"category"`
	From     units.SystemID   `json:"from"`
	To       units.SystemID   `json:"to"`
	Value    decimal.Decimal  `json:"value"`
	Expected decimal.Decimal  `json:"expected"`
	Got      decimal.Decimal  `json:"got"`
}

// ConformanceResult holds the outcome of a conformance check run.
type ConformanceResult struct {
	Checked  int                  `json:"checked"`
	Failures []ConformanceFailure `json:"failures,omitempty"`
}

// NewConformanceCommand creates the conformance command group.
func NewConformanceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conformance",
		Short: "Export and check the shared conversion conformance vector",
	}
	cmd.AddCommand(newConformanceExportCommand(rootOpts))
	cmd.AddCommand(newConformanceCheckCommand(rootOpts))
	return cmd
}

func newConformanceExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the conformance vector derived from the catalog",
		Long: `Print the shared conformance vector as JSON: one row per
{value, from, to, category, expected} conversion, covering every category
in both directions plus the identity and fallback rows. The client-side
implementation of the conversion engine runs the same vector, so a
passing run on both sides means numerically interchangeable results.
Regenerate the checked-in vector here when the catalog changes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConformanceExport(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runConformanceExport(cmd *cobra.Command, out string) error {
	data, err := units.ConformanceJSON(units.Default())
	if err != nil {
		return WrapExitError(ExitCommandError, "render conformance vector", err)
	}

	if out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "write conformance vector", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newConformanceCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "check <vector-file>",
		Short: "Check conversions against a conformance vector file",
		Long: `Check the conversion engine against a conformance vector file.
Every row is converted and compared to its expected result within a
relative tolerance.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConformanceCheck(rootOpts, cmd, args[0], tolerance)
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "relative tolerance per row")

	return cmd
}

func runConformanceCheck(opts *RootOptions, cmd *cobra.Command, path string, tolerance float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("read vector %s", path), err)
	}

	var rows []units.ConformanceCase
	if err := json.Unmarshal(data, &rows); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("parse vector %s", path), err)
	}
	if len(rows) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("vector %s holds no rows", path))
	}

	conv := newConverter(cmd.ErrOrStderr())

	var failures []ConformanceFailure
	for i, row := range rows {
		value, err := decimal.NewFromString(row.Value)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("row %d: invalid value %q", i+1, row.Value), err)
		}
		expected, err := decimal.NewFromString(row.Expected)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("row %d: invalid expected %q", i+1, row.Expected), err)
		}

		got := conv.Convert(value, row.From, row.To, row.Category)
		if withinTolerance(got, expected, tolerance) {
			continue
		}
		failures = append(failures, ConformanceFailure{
			Row:      i + 1,
			Category: row.Category,
			From:     row.From,
			To:       row.To,
			Value:    value,
			Expected: expected,
			Got:      got,
		})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		if err := formatter.JSON(ConformanceResult{Checked: len(rows), Failures: failures}); err != nil {
			return err
		}
		if len(failures) > 0 {
			return NewExitError(ExitFailure, fmt.Sprintf("%d of %d conversions outside tolerance", len(failures), len(rows)))
		}
		return nil
	}

	if len(failures) == 0 {
		fmt.Fprintf(formatter.Writer, "✓ %d conversions within tolerance\n", len(rows))
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✗ %d of %d conversions outside tolerance\n\n", len(failures), len(rows))
	for _, f := range failures {
		fmt.Fprintf(formatter.Writer, "row %d: %s %s from %s to %s: got %s, expected %s\n",
			f.Row, f.Category, f.Value, f.From, f.To, f.Got, f.Expected)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d of %d conversions outside tolerance", len(failures), len(rows)))
}

// withinTolerance compares got to expected within a relative tolerance;
// an expected value of zero falls back to an absolute comparison.
func withinTolerance(got, expected decimal.Decimal, tolerance float64) bool {
	gotF := got.InexactFloat64()
	expectedF := expected.InexactFloat64()
	if expectedF == 0 {
		return math.Abs(gotF) <= tolerance
	}
	return math.Abs(gotF-expectedF)/math.Abs(expectedF) <= tolerance
}
