package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := yaml.Load(path)
	require.NoError(t, err)
	assert.Equal(t, chatextract.DefaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /tmp/conversations\nstyles:\n  header: h2\n"), 0644))

	cfg, err := yaml.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/conversations", cfg.OutputDir)
	assert.Equal(t, "h2", cfg.Styles.Header)
	assert.Equal(t, chatextract.DefaultConfig().FilenameTemplate, cfg.FilenameTemplate)
	assert.Equal(t, chatextract.DefaultConfig().Extraction, cfg.Extraction)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [unclosed"), 0644))

	_, err := yaml.Load(path)
	require.Error(t, err)
	assert.Equal(t, chatextract.EINVALID, chatextract.ErrorCode(err))
}

func TestSaveRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := chatextract.DefaultConfig()
	want.OutputDir = "/tmp/out"
	want.Styles.MaxWidth = 60

	require.NoError(t, yaml.Save(path, want))

	got, err := yaml.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
