package roles

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
	"github.com/NielsdaWheelz/rolesmanifest/internal/fs"
)

// Options locates the cards and the manifest for one run.
type Options struct {
	InputDir   string // directory holding the role cards
	Output     string // manifest file path
	PathPrefix string // logical prefix for Entry.Path
	Extension  string // card file extension, e.g. ".json"

	Logger *zap.Logger // optional
}

// Result aggregates a run: every candidate appears in Outcomes, in processing order.
type Result struct {
	Outcomes []Outcome
}

// Entries returns the entries of the cards that loaded, in processing order.
func (r Result) Entries() []Entry {
	var entries []Entry
	for _, o := range r.Outcomes {
		if o.OK() {
			entries = append(entries, *o.Entry)
		}
	}
	return entries
}

// Skipped returns the outcomes of the cards that were excluded.
func (r Result) Skipped() []Outcome {
	var skipped []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// Render scans opts.InputDir, loads every candidate and encodes the manifest content.
// It writes nothing. The only error is E_INPUT_DIR_NOT_FOUND (or E_INTERNAL if encoding fails);
// per-card failures are reported through Result.
func Render(fsys fs.FS, opts Options) (Result, []byte, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	info, err := fsys.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return Result{}, nil, errors.WrapWithDetails(errors.EInputDirNotFound,
			"input directory not found: "+opts.InputDir, err, map[string]string{
				"op":   "scan",
				"dir":  opts.InputDir,
				"hint": "set --root or --input-dir (or input_dir in .rolesmanifest.yaml)",
			})
	}

	dirEntries, err := fsys.ReadDir(opts.InputDir)
	if err != nil {
		return Result{}, nil, errors.WrapWithDetails(errors.EInputDirNotFound,
			"input directory not readable: "+opts.InputDir, err, map[string]string{
				"op":  "scan",
				"dir": opts.InputDir,
			})
	}

	exclude := ManifestExclusion(opts.InputDir, opts.Output)
	names := SelectCandidates(dirEntries, opts.Extension, exclude)
	log.Debug("scanned input directory",
		zap.String("dir", opts.InputDir),
		zap.Int("entries", len(dirEntries)),
		zap.Int("candidates", len(names)),
		zap.String("excluded", exclude))

	var res Result
	for _, name := range names {
		var o Outcome
		data, err := fsys.ReadFile(filepath.Join(opts.InputDir, name))
		if err != nil {
			o = ReadFailure(name, err)
		} else {
			o = LoadCard(name, data, opts.PathPrefix)
		}
		if o.OK() {
			log.Debug("card loaded", zap.String("file", name), zap.String("key", o.Entry.Key))
		} else {
			log.Debug("card skipped", zap.String("file", name),
				zap.String("code", string(errors.GetCode(o.Err))), zap.Error(o.Err))
		}
		res.Outcomes = append(res.Outcomes, o)
	}

	content, err := Encode(res.Entries())
	if err != nil {
		return Result{}, nil, errors.Wrap(errors.EInternal, "failed to encode manifest", err)
	}
	return res, content, nil
}
