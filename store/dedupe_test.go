package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecordFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindDuplicatesTransitive(t *testing.T) {
	root := t.TempDir()

	first := writeRecordFile(t, root, "chan-a/one.json", "same content")
	writeRecordFile(t, root, "chan-a/two.json", "same content")
	writeRecordFile(t, root, "chan-b/three.json", "same content")
	writeRecordFile(t, root, "chan-b/other.json", "different content")

	report, err := FindDuplicates(root, zerolog.Nop())
	require.NoError(t, err)

	// Three identical files: two pairs, both pointing at the first-seen original.
	require.Len(t, report.Pairs, 2)
	for _, pair := range report.Pairs {
		assert.Equal(t, first, pair.Original)
		assert.NotEqual(t, first, pair.Duplicate)
	}

	// The differing file is neither original-of-a-pair nor duplicate.
	for _, pair := range report.Pairs {
		assert.NotContains(t, pair.Duplicate, "other.json")
	}
	assert.Len(t, report.FirstSeen, 2)
}

func TestFindDuplicatesIgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()

	writeRecordFile(t, root, "chan/a.json", "content")
	writeRecordFile(t, root, "chan/b.csv", "content")
	writeRecordFile(t, root, "chan/c.txt", "content")

	report, err := FindDuplicates(root, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, report.Pairs)
	assert.Len(t, report.FirstSeen, 1)
}

func TestFindDuplicatesSkipsUnreadableFiles(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}

	root := t.TempDir()
	writeRecordFile(t, root, "chan/ok.json", "content")
	blocked := writeRecordFile(t, root, "chan/blocked.json", "content")
	require.NoError(t, os.Chmod(blocked, 0o000))
	t.Cleanup(func() { os.Chmod(blocked, 0o644) })

	report, err := FindDuplicates(root, zerolog.Nop())
	require.NoError(t, err, "one unreadable file must not abort the walk")
	assert.Empty(t, report.Pairs, "skipped file is neither original nor duplicate")
	assert.Len(t, report.FirstSeen, 1)
}

func TestFindDuplicatesMissingRoot(t *testing.T) {
	_, err := FindDuplicates(filepath.Join(t.TempDir(), "missing"), zerolog.Nop())
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
}

func TestWriteReport(t *testing.T) {
	report := &DuplicateReport{
		Pairs: []DuplicatePair{
			{Duplicate: "b.json", Original: "a.json"},
			{Duplicate: "c.json", Original: "a.json"},
		},
	}

	path := filepath.Join(t.TempDir(), "duplicates.txt")
	require.NoError(t, report.WriteReport(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Duplicate: b.json\nOriginal: a.json\n\nDuplicate: c.json\nOriginal: a.json\n\n", string(data))
}

func TestWriteReportEmptyWritesNothing(t *testing.T) {
	report := &DuplicateReport{}
	path := filepath.Join(t.TempDir(), "duplicates.txt")

	require.NoError(t, report.WriteReport(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no report file when there are no duplicates")
}
