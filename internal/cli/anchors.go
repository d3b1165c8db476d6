package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spardeck/marine-measure/internal/anchorstore"
	"github.com/spardeck/marine-measure/internal/water"
)

// AnchorsResult lists water property anchor points.
type AnchorsResult struct {
	AnchorPoints []water.AnchorPoint `json:"anchor_points"`
}

// SeedResult reports how many anchor points a seed run inserted.
type SeedResult struct {
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// NewAnchorsCommand creates the anchors command group.
func NewAnchorsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchors",
		Short: "Inspect and seed the water anchor point table",
	}
	cmd.AddCommand(newAnchorsListCommand(rootOpts))
	cmd.AddCommand(newAnchorsSeedCommand(rootOpts))
	return cmd
}

func newAnchorsListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		medium      string
		databaseURL string
	)

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List anchor points, ordered by medium then temperature",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnchorsList(rootOpts, cmd, medium, databaseURL)
		},
	}

	cmd.Flags().StringVar(&medium, "medium", "", "restrict to one medium (fresh|sea)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres anchor point store (defaults to the built-in table)")

	return cmd
}

func runAnchorsList(opts *RootOptions, cmd *cobra.Command, rawMedium, databaseURL string) error {
	source, closeSource, err := openAnchorSource(cmd.Context(), databaseURL)
	if err != nil {
		return WrapExitError(ExitCommandError, "open anchor point store", err)
	}
	defer closeSource()

	interp := water.NewInterpolator(source)

	var points []water.AnchorPoint
	if rawMedium != "" {
		medium, err := water.ParseMedium(rawMedium)
		if err != nil {
			return WrapExitError(ExitCommandError, "list anchor points", err)
		}
		points, err = interp.AnchorPoints(cmd.Context(), medium)
		if err != nil {
			return WrapExitError(ExitCommandError, "list anchor points", err)
		}
	} else {
		points, err = interp.AllAnchorPoints(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "list anchor points", err)
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(AnchorsResult{AnchorPoints: points})
	}

	for _, p := range points {
		fmt.Fprintf(formatter.Writer, "%-6s %3s °C  %7s %s  %s %s\n",
			p.Medium, p.TemperatureC, p.Density, water.DensityUnit, p.KinematicViscosity, water.ViscosityUnit)
	}
	return nil
}

func newAnchorsSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Seed a postgres store with the reference anchor point table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnchorsSeed(rootOpts, cmd, databaseURL)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres connection string (required)")
	_ = cmd.MarkFlagRequired("database-url")

	return cmd
}

func runAnchorsSeed(opts *RootOptions, cmd *cobra.Command, databaseURL string) error {
	ctx := cmd.Context()

	store, err := anchorstore.NewPostgres(ctx, databaseURL)
	if err != nil {
		return WrapExitError(ExitCommandError, "connect to anchor point store", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return WrapExitError(ExitCommandError, "ensure schema", err)
	}

	points := water.DefaultAnchorPoints()
	inserted, err := store.Seed(ctx, points)
	if err != nil {
		return WrapExitError(ExitCommandError, "seed anchor points", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(SeedResult{Inserted: inserted, Total: len(points)})
	}

	fmt.Fprintf(formatter.Writer, "seeded %d of %d anchor points (%d already present)\n",
		inserted, len(points), len(points)-inserted)
	return nil
}

// openAnchorSource picks the anchor point store for a command: the
// built-in table, or postgres when a database URL is given.
func openAnchorSource(ctx context.Context, databaseURL string) (water.AnchorSource, func(), error) {
	if databaseURL == "" {
		return anchorstore.NewMemoryDefault(), func() {}, nil
	}
	store, err := anchorstore.NewPostgres(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
