package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestItemsFromLineFile(t *testing.T) {
	path := writeInput(t, "videos.txt",
		"dQw4w9WgXcQ\n\nhttps://www.youtube.com/watch?v=aaaaaaaaaaa\n  bbbbbbbbbbb  \n")

	items, err := ItemsFromFile(path)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", items[0].URL, "bare ID expanded")
	assert.Equal(t, "https://www.youtube.com/watch?v=aaaaaaaaaaa", items[1].URL, "full URL passes through")
	assert.Equal(t, "https://www.youtube.com/watch?v=bbbbbbbbbbb", items[2].URL, "whitespace trimmed")
}

func TestItemsFromCSVSkipsHeader(t *testing.T) {
	path := writeInput(t, "videos.csv",
		"Video ID,Title,Tags,Channel Title,Publish Date,Duration\n"+
			"aaaaaaaaaaa,First,[tag],Chan,2024-06-01,02:00\n"+
			"bbbbbbbbbbb,Second,[],Chan,2024-06-02,03:00\n")

	items, err := ItemsFromFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://www.youtube.com/watch?v=aaaaaaaaaaa", items[0].URL)
	assert.Equal(t, "https://www.youtube.com/watch?v=bbbbbbbbbbb", items[1].URL)
}

func TestItemsFromEmptyCSV(t *testing.T) {
	path := writeInput(t, "empty.csv", "")

	items, err := ItemsFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemsFromMissingFile(t *testing.T) {
	_, err := ItemsFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
