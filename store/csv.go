package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"ytscribe/youtube"
)

// channelCSVHeader is the fixed header of channel export files.
var channelCSVHeader = []string{"Video ID", "Title", "Tags", "Channel Title", "Publish Date", "Duration"}

// WriteChannelCSV writes a channel's video listing to
// <root>/<sanitized channel>/<sanitized channel>.csv, replacing any prior
// export, and returns the path.
func (w *Writer) WriteChannelCSV(channelName string, rows []*youtube.VideoMetadata) (string, error) {
	name := w.sanitizer.Filename(channelName)
	dir := filepath.Join(w.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &StoreError{Op: "mkdir", Path: dir, Err: err}
	}

	path := filepath.Join(dir, name+".csv")
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return "", &StoreError{Op: "write", Path: path, Err: err}
	}
	defer pending.Cleanup()

	cw := csv.NewWriter(pending)
	if err := cw.Write(channelCSVHeader); err != nil {
		return "", &StoreError{Op: "write", Path: path, Err: err}
	}
	for _, row := range rows {
		rec := []string{
			row.VideoID,
			row.Title,
			fmt.Sprint(row.Tags),
			row.ChannelTitle,
			row.PublishDate,
			row.Duration,
		}
		if err := cw.Write(rec); err != nil {
			return "", &StoreError{Op: "write", Path: path, Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", &StoreError{Op: "write", Path: path, Err: err}
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return "", &StoreError{Op: "write", Path: path, Err: err}
	}

	w.logger.Info().Str("path", path).Int("videos", len(rows)).Msg("channel export saved")
	return path, nil
}
