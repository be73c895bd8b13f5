// Package commands implements rolesmanifest CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
	"github.com/NielsdaWheelz/rolesmanifest/internal/fs"
	"github.com/NielsdaWheelz/rolesmanifest/internal/roles"
)

// manifestPerm is the mode of a freshly written manifest.
const manifestPerm = 0o644

// RegenerateOpts holds options for the regenerate (root) command.
type RegenerateOpts struct {
	Roles roles.Options

	// DryRun prints the manifest to stdout instead of writing it.
	DryRun bool
}

// Regenerate implements `rolesmanifest`: rebuilds the manifest from the role cards.
//
// Every skipped card is reported on stderr as "Skip <file>: <reason>"; skips never fail the run.
// On success stdout gets "Wrote <N> entries to <manifest>". The manifest is replaced atomically.
// The only input error is E_INPUT_DIR_NOT_FOUND, returned before anything is written.
func Regenerate(_ context.Context, fsys fs.FS, opts RegenerateOpts, stdout, stderr io.Writer) error {
	log := logger(opts.Roles)

	res, content, err := roles.Render(fsys, opts.Roles)
	if err != nil {
		return err
	}
	writeSkips(stderr, res)
	n := len(res.Entries())

	if opts.DryRun {
		_, _ = stdout.Write(content)
		_, _ = fmt.Fprintf(stderr, "Would write %d entries to %s\n", n, opts.Roles.Output)
		return nil
	}

	if err := fs.WriteFileAtomic(fsys, opts.Roles.Output, content, manifestPerm); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to write manifest: "+err.Error(), err,
			map[string]string{"op": "write", "output": opts.Roles.Output})
	}
	log.Info("manifest written",
		zap.String("output", opts.Roles.Output),
		zap.Int("entries", n),
		zap.Int("skipped", len(res.Skipped())))

	_, _ = fmt.Fprintf(stdout, "Wrote %d entries to %s\n", n, opts.Roles.Output)
	return nil
}

// writeSkips prints one diagnostic line per skipped card, in processing order.
func writeSkips(w io.Writer, res roles.Result) {
	for _, o := range res.Skipped() {
		_, _ = fmt.Fprintf(w, "Skip %s: %s\n", o.File, o.Reason())
	}
}

func logger(opts roles.Options) *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}
