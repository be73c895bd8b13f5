package config

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
)

// Validate checks required fields and enumerated values.
// Returns E_INVALID_CONFIG naming the first offending field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return invalid("root", "must not be empty")
	}
	if strings.TrimSpace(c.InputDir) == "" {
		return invalid("input_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return invalid("output", "must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return invalid("extension", "must start with '.' (e.g. .json)")
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return invalid("extension", "must not contain path separators")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", "must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return invalid("log.format", "must be console or json")
	}
	return nil
}

func invalid(field, msg string) error {
	return errors.NewWithDetails(errors.EInvalidConfig, field+" "+msg, map[string]string{"op": "config"})
}

// Paths holds the absolute locations a run operates on.
type Paths struct {
	Root     string
	InputDir string
	Output   string
}

// Resolve makes Root absolute against cwd and InputDir/Output absolute against Root.
func (c Config) Resolve(cwd string) Paths {
	root := c.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	root = filepath.Clean(root)
	return Paths{
		Root:     root,
		InputDir: under(root, c.InputDir),
		Output:   under(root, c.Output),
	}
}

func under(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
