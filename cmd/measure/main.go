// Command measure is the command line companion to propertyd: unit
// conversion, localized formatting, water property lookups and
// conformance vector checks against the same catalog the daemon
// serves.
//
// Usage:
//
//	measure convert 10 --from SI --to Imperial --category Length
//	measure format 10 --system SI --category Length
//	measure water 15 --salinity 35
//	measure anchors seed --database-url postgres://...
//	measure conformance check vector.json
package main

import (
	"os"

	"github.com/spardeck/marine-measure/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
