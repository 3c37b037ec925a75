package store

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListValidFiltersContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "arbitrary.json"), `{"name": "settings"}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{"__tag__": `)
	require.NoError(t, Create(filepath.Join(dir, "vault.json")))

	got := slices.Collect(ListValid(dir, ""))
	assert.Equal(t, []string{filepath.Join(dir, "vault.json")}, got)
}

func TestListValidIsRestartable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Create(filepath.Join(dir, "a.json")))

	seq := ListValid(dir, "")
	assert.Len(t, slices.Collect(seq), 1)

	require.NoError(t, Create(filepath.Join(dir, "b.json")))
	assert.Equal(t,
		[]string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")},
		slices.Collect(seq),
		"a second range must rescan the directory")
}

func TestListValidStopsEarly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		require.NoError(t, Create(filepath.Join(dir, name)))
	}

	var seen []string
	for path := range ListValid(dir, "") {
		seen = append(seen, filepath.Base(path))
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.json", "b.json"}, seen)
}

func TestListValidPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "site", "rack"), 0755))
	require.NoError(t, Create(filepath.Join(dir, "top.json")))
	require.NoError(t, Create(filepath.Join(dir, "site", "rack", "nested.json")))
	require.NoError(t, Create(filepath.Join(dir, "plain.store")))

	assert.Equal(t, []string{filepath.Join(dir, "top.json")}, slices.Collect(ListValid(dir, "*.json")))

	assert.ElementsMatch(t,
		[]string{filepath.Join(dir, "top.json"), filepath.Join(dir, "site", "rack", "nested.json")},
		slices.Collect(ListValid(dir, "**/*.json")))

	assert.Equal(t, []string{filepath.Join(dir, "plain.store")}, slices.Collect(ListValid(dir, "*.store")))
}

func TestListValidSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.json"), 0755))

	assert.Empty(t, slices.Collect(ListValid(dir, "")))
}

func TestListValidBadPattern(t *testing.T) {
	assert.Empty(t, slices.Collect(ListValid(t.TempDir(), "[")))

	_, err := Candidates(t.TempDir(), "[")
	assert.Error(t, err)
}

func TestCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), `{}`)
	writeFile(t, filepath.Join(dir, "a.json"), `oops`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `x`)

	paths, err := Candidates(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, paths)
}
