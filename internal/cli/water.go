package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spardeck/marine-measure/internal/water"
)

// NewWaterCommand creates the water command.
func NewWaterCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		salinity    string
		databaseURL string
	)

	cmd := &cobra.Command{
		Use:   "water <temperature-c>",
		Short: "Look up water density and viscosity",
		Long: `Look up water density and kinematic viscosity at a temperature.

Salinities below 1 PSU select fresh water, anything else sea water.
Temperatures between anchor points are interpolated linearly. The
built-in table is used unless --database-url points at a seeded
postgres store.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWater(rootOpts, cmd, args[0], salinity, databaseURL)
		},
	}

	cmd.Flags().StringVar(&salinity, "salinity", "35", "salinity in PSU")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres anchor point store (defaults to the built-in table)")

	return cmd
}

func runWater(opts *RootOptions, cmd *cobra.Command, rawTemp, rawSalinity, databaseURL string) error {
	temperatureC, err := decimal.NewFromString(rawTemp)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid temperature %q", rawTemp), err)
	}
	salinityPSU, err := decimal.NewFromString(rawSalinity)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid salinity %q", rawSalinity), err)
	}

	source, closeSource, err := openAnchorSource(cmd.Context(), databaseURL)
	if err != nil {
		return WrapExitError(ExitCommandError, "open anchor point store", err)
	}
	defer closeSource()

	props, err := water.NewInterpolator(source).Properties(cmd.Context(), temperatureC, salinityPSU)
	if err != nil {
		return WrapExitError(ExitCommandError, "look up water properties", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(props)
	}

	fmt.Fprintf(formatter.Writer, "Medium:              %s\n", props.Medium)
	fmt.Fprintf(formatter.Writer, "Temperature:         %s °C\n", props.TemperatureC)
	fmt.Fprintf(formatter.Writer, "Salinity:            %s PSU\n", props.SalinityPSU)
	fmt.Fprintf(formatter.Writer, "Density:             %s %s\n", props.Density, props.DensityUnit)
	fmt.Fprintf(formatter.Writer, "Kinematic viscosity: %s %s\n", props.KinematicViscosity, props.ViscosityUnit)
	fmt.Fprintf(formatter.Writer, "Source:              %s\n", props.Source)
	return nil
}
