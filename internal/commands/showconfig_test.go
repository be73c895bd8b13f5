package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NielsdaWheelz/rolesmanifest/internal/config"
)

func TestShowConfig(t *testing.T) {
	cfg := config.Default()
	var stdout bytes.Buffer

	err := ShowConfig(ShowConfigOpts{
		Config: cfg,
		Paths:  cfg.Resolve("/work"),
	}, &stdout)
	require.NoError(t, err)

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "# config_file: (none)\n"))
	assert.Contains(t, out, "# resolved_input_dir: /work/00_Canonical/roles\n")
	assert.Contains(t, out, "# resolved_output: /work/00_Canonical/roles/roles_manifest.jsonl\n")
	assert.Contains(t, out, "input_dir: 00_Canonical/roles\n")
	assert.Contains(t, out, "path_prefix: /Agent-Lab/00_Canonical/roles/\n")
}

func TestShowConfig_NamesSourceFile(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, ShowConfig(ShowConfigOpts{Config: config.Default(), File: ".rolesmanifest.yaml"}, &stdout))
	assert.True(t, strings.HasPrefix(stdout.String(), "# config_file: .rolesmanifest.yaml\n"))
}
