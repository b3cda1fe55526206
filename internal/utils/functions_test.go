package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPartials(t *testing.T) {
	dir := t.TempDir()
	keep := []string{"song.mp3", "notes.txt"}
	drop := []string{"song.webm.part", "song.webm.ytdl", "song.webm.part-Frag3", "song.temp.mp3"}
	for _, name := range append(append([]string{}, keep...), drop...) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	removed, err := CleanPartials(dir)
	require.NoError(t, err)
	assert.Len(t, removed, len(drop))

	for _, name := range keep {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	for _, name := range drop {
		assert.NoFileExists(t, filepath.Join(dir, name))
	}
}

func TestCleanPartialsMissingDir(t *testing.T) {
	removed, err := CleanPartials(filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleanPartialsNotDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err := CleanPartials(file)
	assert.Error(t, err)
}

func TestResolveToolFallsBackToName(t *testing.T) {
	assert.Equal(t, "ytmp3-no-such-tool", ResolveTool("ytmp3-no-such-tool"))
}
