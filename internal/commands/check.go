package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
	"github.com/NielsdaWheelz/rolesmanifest/internal/fs"
	"github.com/NielsdaWheelz/rolesmanifest/internal/roles"
)

// CheckOpts holds options for the check command.
type CheckOpts struct {
	Roles roles.Options
}

// Check implements `rolesmanifest check`.
// It renders the manifest in memory and compares it byte for byte with the file on disk.
// Nothing is written. A missing or different manifest returns E_MANIFEST_STALE.
func Check(_ context.Context, fsys fs.FS, opts CheckOpts, stdout, stderr io.Writer) error {
	res, content, err := roles.Render(fsys, opts.Roles)
	if err != nil {
		return err
	}
	writeSkips(stderr, res)
	n := len(res.Entries())
	output := opts.Roles.Output
	details := map[string]string{
		"op":     "check",
		"output": output,
		"hint":   "run rolesmanifest to regenerate the manifest",
	}

	existing, err := fsys.ReadFile(output)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewWithDetails(errors.EManifestStale, "manifest does not exist: "+output, details)
		}
		return errors.WrapWithDetails(errors.EInternal, "failed to read manifest: "+err.Error(), err, details)
	}

	if !bytes.Equal(existing, content) {
		msg := "manifest is stale: " + output
		if old, derr := roles.DecodeManifest(bytes.NewReader(existing)); derr != nil {
			msg += " (not valid JSONL)"
		} else {
			msg += fmt.Sprintf(" (has %d entries, cards yield %d)", len(old), n)
		}
		return errors.NewWithDetails(errors.EManifestStale, msg, details)
	}

	_, _ = fmt.Fprintf(stdout, "Manifest %s is up to date (%d entries)\n", output, n)
	return nil
}
