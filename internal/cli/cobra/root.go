// Package cobra provides the Cobra-based CLI command tree for rolesmanifest.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
	"github.com/NielsdaWheelz/rolesmanifest/internal/version"
)

// GlobalOpts holds the persistent flags shared by every command.
type GlobalOpts struct {
	Verbose    bool
	ConfigFile string
	Root       string
	InputDir   string
	Output     string
	PathPrefix string
	Extension  string
	LogLevel   string
	LogFormat  string
}

// globalOpts stores the parsed global options for access by subcommands.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"root":        "root",
	"input-dir":   "input_dir",
	"output":      "output",
	"path-prefix": "path_prefix",
	"ext":         "extension",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// NewRootCmd creates the root cobra command for rolesmanifest.
// Running it without a subcommand regenerates the manifest.
func NewRootCmd() *cobra.Command {
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "rolesmanifest",
		Short: "Regenerate the roles manifest from role card files",
		Long: `rolesmanifest - regenerate roles_manifest.jsonl from role cards

Reads every *.json role card in the input directory (default
00_Canonical/roles under --root), keeps the cards that carry a non-empty
key and title, and rewrites the manifest with one JSON object per card,
ordered by file name. Unparseable or incomplete cards are reported as
"Skip <file>: <reason>" and left out.`,
		Version:       version.FullVersion(),
		Args:          noArgs,
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := loadRun(cmd)
			if err != nil {
				return err
			}
			defer run.close()
			return run.regenerate(cmd.Context(), dryRun, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&globalOpts.Verbose, "verbose", false, "debug logging and detailed error context")
	pf.StringVar(&globalOpts.ConfigFile, "config", "", "config file (default: <root>/.rolesmanifest.yaml if present)")
	pf.StringVar(&globalOpts.Root, "root", "", "root directory that relative paths resolve against (default: .)")
	pf.StringVar(&globalOpts.InputDir, "input-dir", "", "role card directory (default: 00_Canonical/roles)")
	pf.StringVar(&globalOpts.Output, "output", "", "manifest file (default: 00_Canonical/roles/roles_manifest.jsonl)")
	pf.StringVar(&globalOpts.PathPrefix, "path-prefix", "", "logical path prefix for manifest entries (default: /Agent-Lab/00_Canonical/roles/)")
	pf.StringVar(&globalOpts.Extension, "ext", "", "role card file extension (default: .json)")
	pf.StringVar(&globalOpts.LogLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	pf.StringVar(&globalOpts.LogFormat, "log-format", "", "log format: console or json (default: console)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the manifest to stdout instead of writing it")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(errors.EUsage, err.Error(), err)
	})

	rootCmd.AddCommand(
		newCheckCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// noArgs rejects positional arguments with E_USAGE.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return errors.Wrap(errors.EUsage, err.Error(), err)
	}
	return nil
}

// overrides returns the config overrides for the persistent flags the user set explicitly.
func overrides(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	flags := cmd.Flags()
	for flag, key := range flagKeys {
		if !flags.Changed(flag) {
			continue
		}
		val, err := flags.GetString(flag)
		if err != nil {
			continue
		}
		out[key] = val
	}
	return out
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
