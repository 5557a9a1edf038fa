package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/vampire/internal/config"
	"github.com/cory-johannsen/vampire/internal/storage/xmlstore"
	"github.com/cory-johannsen/vampire/internal/testutil"
)

// setup writes a configuration rooted at a temporary directory and saves one
// valid character named lucien.xml into it.
func setup(t *testing.T) (configPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "vampire.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"openDirPath: "+dir+"\n"+
			"saveDirPath: "+dir+"\n"+
			"language: en\n"+
			"logging:\n  level: error\n  format: console\n"), 0o644))

	cat, err := xmlstore.LoadEmbeddedCatalog(zap.NewNop())
	require.NoError(t, err)
	store, err := xmlstore.NewStore(config.Config{OpenDirPath: dir, SaveDirPath: dir}, cat, zap.NewNop())
	require.NoError(t, err)
	_, err = store.Save(testutil.MustBuild(t, testutil.ValidBuilder(cat)), "lucien")
	require.NoError(t, err)
	return configPath, dir
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runArgs()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: vampire")

	configPath, _ := setup(t)
	code, _, stderr = runArgs("-config", configPath, "bite")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "bite"`)
}

func TestRun_Catalog(t *testing.T) {
	configPath, _ := setup(t)
	code, stdout, stderr := runArgs("-config", configPath, "catalog")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Brujah")
	assert.Contains(t, stdout, "Generation 13: max trait 5, blood pool 10, 1 per turn")
}

func TestRun_ShowInGerman(t *testing.T) {
	configPath, _ := setup(t)
	code, stdout, stderr := runArgs("-config", configPath, "-lang", "de", "show", "lucien")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Lucien de Montfort")
	assert.Contains(t, stdout, "Assamiten")
	assert.Contains(t, stdout, "Körperkraft")
}

func TestRun_ValidateMissingFile(t *testing.T) {
	configPath, dir := setup(t)
	code, _, stderr := runArgs("-config", configPath, "validate", "nobody")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Could not load character "+filepath.Join(dir, "nobody.xml"))
}

func TestRun_CopyThenValidate(t *testing.T) {
	configPath, dir := setup(t)
	code, stdout, stderr := runArgs("-config", configPath, "copy", "lucien", filepath.Join("copies", "lucien"))
	require.Equal(t, 0, code, stderr)
	want := filepath.Join(dir, "copies", "lucien.xml")
	assert.Contains(t, stdout, want)

	code, stdout, stderr = runArgs("-config", configPath, "validate", want)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "ok (6f1c2f0e-9a43-4a55-8a6e-2d3b1c4e5f60)")
}

func TestRun_WrongArgumentCount(t *testing.T) {
	configPath, _ := setup(t)
	code, _, stderr := runArgs("-config", configPath, "copy", "lucien")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "want 2 argument(s), got 1")
}

func TestRun_WritesConfig(t *testing.T) {
	configPath, dir := setup(t)
	out := filepath.Join(dir, "effective.yaml")
	code, _, stderr := runArgs("-config", configPath, "-lang", "de", "config", out)
	require.Equal(t, 0, code, stderr)

	cfg, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, dir, cfg.OpenDirPath)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestRun_InvalidLanguage(t *testing.T) {
	configPath, _ := setup(t)
	code, _, _ := runArgs("-config", configPath, "-lang", "not a language", "catalog")
	assert.Equal(t, 1, code)
}

func TestRun_Roll(t *testing.T) {
	configPath, _ := setup(t)
	code, stdout, stderr := runArgs("-config", configPath, "roll", "lucien", "dexterity+brawl@6")
	require.Equal(t, 0, code, stderr)
	assert.Regexp(t, `^dexterity\+brawl@6 \[\d+( \d+){4}\]: (\d+ successes|botch)\n$`, stdout)
}

func TestRun_RollUnknownTrait(t *testing.T) {
	configPath, _ := setup(t)
	code, _, stderr := runArgs("-config", configPath, "roll", "lucien", "strength+thaumaturgy")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `no trait "thaumaturgy"`)
}
