package file

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minecrox-server/services/pack-api/utils/apperrors"
)

func writeArchive(t *testing.T, entries ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte("{}"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestClassifyArchiveDatapack(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		"data/example/functions/tick.mcfunction",
	)

	kind, err := ClassifyArchive(path)
	require.NoError(t, err)
	assert.Equal(t, KindDatapack, kind)
}

func TestClassifyArchiveResourcePack(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		"assets/minecraft/textures/block/stone.png",
	)

	kind, err := ClassifyArchive(path)
	require.NoError(t, err)
	assert.Equal(t, KindResourcePack, kind)
}

func TestClassifyArchiveNestedPackMeta(t *testing.T) {
	// pack.mcmeta inside a wrapper directory still counts.
	path := writeArchive(t,
		"MyPack/pack.mcmeta",
		"assets/minecraft/sounds.json",
	)

	kind, err := ClassifyArchive(path)
	require.NoError(t, err)
	assert.Equal(t, KindResourcePack, kind)
}

func TestClassifyArchiveBothTreesPrefersDatapack(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		"data/example/tags/blocks.json",
		"assets/minecraft/lang/en_us.json",
	)

	kind, err := ClassifyArchive(path)
	require.NoError(t, err)
	assert.Equal(t, KindDatapack, kind)
}

func TestClassifyArchiveUnrecognizedContent(t *testing.T) {
	path := writeArchive(t, "readme.txt", "images/logo.png")

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.TypeValidation))
}

func TestClassifyArchiveMissingPackMeta(t *testing.T) {
	path := writeArchive(t, "data/example/functions/load.mcfunction")

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.TypeValidation))
}

func TestClassifyArchiveBlockedExecutable(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		"data/example/evil.EXE",
	)

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked executable")
}

func TestClassifyArchivePathTraversal(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		"data/../../etc/passwd",
	)

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsafe zip entry")
}

func TestClassifyArchiveAbsolutePath(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		"/data/example/thing.json",
	)

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsafe zip entry")
}

func TestClassifyArchiveWindowsDrivePath(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		`C:\data\thing.json`,
	)

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsafe zip entry")
}

func TestClassifyArchiveBackslashEntries(t *testing.T) {
	path := writeArchive(t,
		"pack.mcmeta",
		`data\example\thing.json`,
	)

	kind, err := ClassifyArchive(path)
	require.NoError(t, err)
	assert.Equal(t, KindDatapack, kind)
}

func TestClassifyArchiveNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a.zip")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := ClassifyArchive(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.TypeValidation))
}
