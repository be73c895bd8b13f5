// Command rolesmanifest regenerates roles_manifest.jsonl from a directory of role cards.
package main

import (
	"os"

	"github.com/NielsdaWheelz/rolesmanifest/internal/cli/cobra"
	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
)

func main() {
	err := cobra.Execute(os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	// --verbose adds the extra: block and cause line.
	errors.PrintWithOptions(os.Stderr, err, errors.PrintOptions{Verbose: cobra.GetGlobalOpts().Verbose})
	os.Exit(errors.ExitCode(err))
}
