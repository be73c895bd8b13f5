package commands

import (
	"fmt"
	"io"

	"github.com/NielsdaWheelz/rolesmanifest/internal/config"
	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
)

// ShowConfigOpts holds options for the config command.
type ShowConfigOpts struct {
	Config config.Config
	File   string       // config file that was loaded, "" if none
	Paths  config.Paths // resolved absolute locations
}

// ShowConfig implements `rolesmanifest config`: prints the effective configuration as YAML,
// preceded by comment lines naming the source file and the resolved paths.
func ShowConfig(opts ShowConfigOpts, stdout io.Writer) error {
	data, err := opts.Config.YAML()
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to render config", err)
	}

	source := opts.File
	if source == "" {
		source = "(none)"
	}
	_, _ = fmt.Fprintf(stdout, "# config_file: %s\n", source)
	_, _ = fmt.Fprintf(stdout, "# resolved_input_dir: %s\n", opts.Paths.InputDir)
	_, _ = fmt.Fprintf(stdout, "# resolved_output: %s\n", opts.Paths.Output)
	_, _ = stdout.Write(data)
	return nil
}
