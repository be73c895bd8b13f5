package cobra

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NielsdaWheelz/rolesmanifest/internal/commands"
	"github.com/NielsdaWheelz/rolesmanifest/internal/config"
	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
	"github.com/NielsdaWheelz/rolesmanifest/internal/fs"
	"github.com/NielsdaWheelz/rolesmanifest/internal/logging"
	"github.com/NielsdaWheelz/rolesmanifest/internal/roles"
)

// run is the resolved context shared by the commands that touch role cards.
type run struct {
	cfg    config.Config
	file   string
	paths  config.Paths
	logger *zap.Logger
	fsys   fs.FS
}

// loadRun resolves configuration and builds the logger for cmd.
func loadRun(cmd *cobra.Command) (*run, error) {
	cfg, file, err := config.Load(config.LoadOptions{
		ConfigFile: globalOpts.ConfigFile,
		Overrides:  overrides(cmd),
	})
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to get working directory", err)
	}

	logger, err := logging.New(cfg.Log, globalOpts.Verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, errors.Wrap(errors.EInvalidConfig, "failed to initialize logger", err)
	}

	r := &run{
		cfg:    cfg,
		file:   file,
		paths:  cfg.Resolve(cwd),
		logger: logger,
		fsys:   fs.NewRealFS(),
	}
	logger.Debug("configuration resolved",
		zap.String("config_file", file),
		zap.String("root", r.paths.Root),
		zap.String("input_dir", r.paths.InputDir),
		zap.String("output", r.paths.Output),
		zap.String("path_prefix", cfg.PathPrefix),
		zap.String("extension", cfg.Extension))
	return r, nil
}

func (r *run) rolesOptions() roles.Options {
	return roles.Options{
		InputDir:   r.paths.InputDir,
		Output:     r.paths.Output,
		PathPrefix: r.cfg.PathPrefix,
		Extension:  r.cfg.Extension,
		Logger:     r.logger,
	}
}

func (r *run) regenerate(ctx context.Context, dryRun bool, stdout, stderr io.Writer) error {
	opts := commands.RegenerateOpts{Roles: r.rolesOptions(), DryRun: dryRun}
	return commands.Regenerate(ctx, r.fsys, opts, stdout, stderr)
}

func (r *run) close() {
	_ = r.logger.Sync()
}
