package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytscribe/youtube"
)

func TestWriteChannelCSV(t *testing.T) {
	w := newTestWriter(t, nil)

	rows := []*youtube.VideoMetadata{
		{
			VideoID:      "aaaaaaaaaaa",
			Title:        "First Video",
			ChannelTitle: "Test Channel",
			PublishDate:  "2024-06-01",
			Duration:     "02:00",
			Tags:         []string{"go", "testing"},
		},
		{
			VideoID:      "bbbbbbbbbbb",
			Title:        "Second, with comma",
			ChannelTitle: "Test Channel",
			PublishDate:  "2024-06-02",
			Duration:     "01:00:00",
			Tags:         nil,
		},
	}

	path, err := w.WriteChannelCSV("Test Channel", rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Root(), "Test Channel", "Test Channel.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Video ID", "Title", "Tags", "Channel Title", "Publish Date", "Duration"}, records[0])
	assert.Equal(t, []string{"aaaaaaaaaaa", "First Video", "[go testing]", "Test Channel", "2024-06-01", "02:00"}, records[1])
	assert.Equal(t, "Second, with comma", records[2][1])
}

func TestWriteChannelCSVReplacesPriorExport(t *testing.T) {
	w := newTestWriter(t, nil)

	_, err := w.WriteChannelCSV("Chan", []*youtube.VideoMetadata{
		{VideoID: "aaaaaaaaaaa", Title: "Old"},
	})
	require.NoError(t, err)

	path, err := w.WriteChannelCSV("Chan", []*youtube.VideoMetadata{
		{VideoID: "bbbbbbbbbbb", Title: "New"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "New")
	assert.NotContains(t, string(data), "Old")
}

func TestWriteChannelCSVEmptyListing(t *testing.T) {
	w := newTestWriter(t, nil)

	path, err := w.WriteChannelCSV("Chan", nil)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}
