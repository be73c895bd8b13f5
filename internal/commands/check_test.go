package commands

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rmerrors "github.com/NielsdaWheelz/rolesmanifest/internal/errors"
	"github.com/NielsdaWheelz/rolesmanifest/internal/fs"
	"github.com/NielsdaWheelz/rolesmanifest/internal/roles"
)

func check(t *testing.T, o roles.Options) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Check(context.Background(), fs.NewRealFS(), CheckOpts{Roles: o}, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestCheck_UpToDate(t *testing.T) {
	o := setupRoles(t, map[string]string{
		"a.json": `{"key":"k1","title":"Role One"}`,
		"b.json": `{"key":"k2","title":"Role Two"}`,
	})
	_, _, err := regenerate(t, fs.NewRealFS(), o)
	require.NoError(t, err)

	stdout, _, err := check(t, o)
	require.NoError(t, err)
	assert.Equal(t, "Manifest "+o.Output+" is up to date (2 entries)\n", stdout)
}

func TestCheck_Missing(t *testing.T) {
	o := setupRoles(t, map[string]string{
		"a.json": `{"key":"k1","title":"Role One"}`,
	})

	_, _, err := check(t, o)
	require.Error(t, err)
	assert.Equal(t, rmerrors.EManifestStale, rmerrors.GetCode(err))
	assert.Equal(t, 3, rmerrors.ExitCode(err))
	assert.Contains(t, err.Error(), "manifest does not exist")

	_, statErr := os.Stat(o.Output)
	assert.True(t, os.IsNotExist(statErr), "check must not write")
}

func TestCheck_Stale(t *testing.T) {
	o := setupRoles(t, map[string]string{
		"a.json": `{"key":"k1","title":"Role One"}`,
	})
	_, _, err := regenerate(t, fs.NewRealFS(), o)
	require.NoError(t, err)
	before, err := os.ReadFile(o.Output)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(o.InputDir+"/b.json", []byte(`{"key":"k2","title":"Role Two"}`), 0o644))

	_, _, err = check(t, o)
	require.Error(t, err)
	assert.Equal(t, rmerrors.EManifestStale, rmerrors.GetCode(err))
	assert.Contains(t, err.Error(), "(has 1 entries, cards yield 2)")

	after, err := os.ReadFile(o.Output)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCheck_CorruptManifest(t *testing.T) {
	o := setupRoles(t, map[string]string{
		"a.json": `{"key":"k1","title":"Role One"}`,
	})
	require.NoError(t, os.WriteFile(o.Output, []byte("garbage\n"), 0o644))

	_, _, err := check(t, o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(not valid JSONL)")
}

func TestCheck_ReportsSkips(t *testing.T) {
	o := setupRoles(t, map[string]string{
		"a.json": `{"key":"k1","title":"Role One"}`,
		"b.json": `{"title":"orphan"}`,
	})
	_, _, err := regenerate(t, fs.NewRealFS(), o)
	require.NoError(t, err)

	_, stderr, err := check(t, o)
	require.NoError(t, err)
	assert.Equal(t, "Skip b.json: missing key/title\n", stderr)
}

func TestCheck_MissingInputDir(t *testing.T) {
	_, _, err := check(t, roles.Options{InputDir: t.TempDir() + "/nope", Output: "x", Extension: ".json"})
	assert.Equal(t, rmerrors.EInputDirNotFound, rmerrors.GetCode(err))
}
