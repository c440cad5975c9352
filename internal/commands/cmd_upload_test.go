package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestExpandGlobsLiteralPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.docx")
	touch(t, a)

	paths, err := ExpandGlobs([]string{a})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, paths)
}

func TestExpandGlobsMissingLiteralFails(t *testing.T) {
	_, err := ExpandGlobs([]string{filepath.Join(t.TempDir(), "nope.docx")})
	require.Error(t, err)
}

func TestExpandGlobsDirectoryLiteralFails(t *testing.T) {
	dir := t.TempDir()
	_, err := ExpandGlobs([]string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestExpandGlobsDoublestar(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.docx"))
	touch(t, filepath.Join(dir, "sub", "b.docx"))
	touch(t, filepath.Join(dir, "sub", "deep", "c.docx"))
	touch(t, filepath.Join(dir, "sub", "notes.txt"))

	paths, err := ExpandGlobs([]string{filepath.Join(dir, "**", "*.docx")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.docx"),
		filepath.Join(dir, "sub", "b.docx"),
		filepath.Join(dir, "sub", "deep", "c.docx"),
	}, paths)
}

func TestExpandGlobsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.docx")
	touch(t, a)

	paths, err := ExpandGlobs([]string{a, filepath.Join(dir, "*.docx")})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, paths)
}

func TestExpandGlobsSkipsDirectoriesInMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.docx"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b.docx"), 0o755))

	paths, err := ExpandGlobs([]string{filepath.Join(dir, "*.docx")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.docx")}, paths)
}
