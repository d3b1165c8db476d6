package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spardeck/marine-measure/internal/units"
)

// SystemsResult lists the available unit systems.
type SystemsResult struct {
	UnitSystems []units.SystemInfo `json:"unit_systems"`
}

// NewSystemsCommand creates the systems command.
func NewSystemsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "systems [system-id]",
		Short:        "List unit systems, or show one in detail",
		Long:         "List the available unit systems with their localized names, or show one system in detail. The default system is marked with *.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runSystemDetail(rootOpts, cmd, args[0])
			}
			return runSystems(rootOpts, cmd)
		},
	}
	return cmd
}

func runSystems(opts *RootOptions, cmd *cobra.Command) error {
	infos, err := units.Default().ListSystems(opts.Locale)
	if err != nil {
		return WrapExitError(ExitCommandError, "list unit systems", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(SystemsResult{UnitSystems: infos})
	}

	for _, info := range infos {
		marker := " "
		if info.Default {
			marker = "*"
		}
		fmt.Fprintf(formatter.Writer, "%s %-10s %s\n", marker, info.ID, info.Name)
	}
	return nil
}

func runSystemDetail(opts *RootOptions, cmd *cobra.Command, id string) error {
	info, err := units.Default().System(units.SystemID(id), opts.Locale)
	if err != nil {
		return WrapExitError(ExitCommandError, "show unit system", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.JSONEnabled() {
		return formatter.JSON(info)
	}

	name := info.Name
	if info.Default {
		name += " (default)"
	}
	fmt.Fprintf(formatter.Writer, "%s: %s\n", info.ID, name)
	if info.Description != "" {
		fmt.Fprintln(formatter.Writer, info.Description)
	}

	categories := make([]string, len(info.Categories))
	for i, c := range info.Categories {
		categories[i] = string(c)
	}
	fmt.Fprintf(formatter.Writer, "Categories: %s\n", strings.Join(categories, ", "))
	return nil
}
