package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"ytscribe/youtube"
)

// RecordExt is the file extension of persisted transcript records.
const RecordExt = ".json"

// RecordMetadata is the metadata object of a persisted record.
type RecordMetadata struct {
	VideoURL    string   `json:"video_url"`
	ChannelName string   `json:"channel_name"`
	VideoTitle  string   `json:"video_title"`
	PublishDate string   `json:"publish_date"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
}

// RecordEntry is one transcript line with its formatted timestamp.
type RecordEntry struct {
	Text string `json:"text"`
	At   string `json:"at"`
}

// TranscriptRecord is the persisted unit: metadata plus the ordered transcript.
type TranscriptRecord struct {
	Metadata   RecordMetadata `json:"metadata"`
	Transcript []RecordEntry  `json:"transcript"`
}

// StoreError wraps filesystem failures with the operation and path.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StoreError) Unwrap() error { return e.Err }

// MetadataSource resolves video metadata at write time, so duration and
// tags are always sourced fresh when a record is persisted.
type MetadataSource interface {
	Resolve(ctx context.Context, videoID string) (*youtube.VideoMetadata, error)
}

// Writer persists transcript records under a root directory, one file per
// record at <root>/<sanitized channel>/<sanitized title>.json. Writing a
// record whose sanitized path already exists replaces the prior file; there
// is at most one current version of a record.
type Writer struct {
	root      string
	sanitizer *Sanitizer
	resolver  MetadataSource
	logger    zerolog.Logger
}

// NewWriter creates a record writer. resolver supplies the fresh
// duration/tags lookup performed on every save; it may be nil, in which
// case those fields stay at their defaults.
func NewWriter(root string, sanitizer *Sanitizer, resolver MetadataSource, logger zerolog.Logger) *Writer {
	return &Writer{
		root:      root,
		sanitizer: sanitizer,
		resolver:  resolver,
		logger:    logger.With().Str("component", "store").Logger(),
	}
}

// Root returns the writer's root directory.
func (w *Writer) Root() string { return w.root }

// Save persists one transcript record and returns the file path. Transcript
// text is sanitized and offsets are rendered as display timestamps.
// Duration and tags are re-resolved from the video ID at write time; if
// that fails the record is still written with placeholder values.
func (w *Writer) Save(ctx context.Context, videoURL string, entries []youtube.TranscriptEntry, channelName, title, publishDate string) (string, error) {
	dir := filepath.Join(w.root, w.sanitizer.Filename(channelName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &StoreError{Op: "mkdir", Path: dir, Err: err}
	}

	duration := "Unknown"
	tags := []string{}
	if w.resolver != nil {
		if videoID, err := youtube.ExtractVideoID(videoURL); err == nil {
			if md, err := w.resolver.Resolve(ctx, videoID); err == nil {
				duration = md.Duration
				if md.Tags != nil {
					tags = md.Tags
				}
			} else {
				w.logger.Warn().Err(err).Str("video_id", videoID).Msg("write-time metadata lookup failed")
			}
		}
	}

	record := TranscriptRecord{
		Metadata: RecordMetadata{
			VideoURL:    videoURL,
			ChannelName: channelName,
			VideoTitle:  title,
			PublishDate: publishDate,
			Duration:    duration,
			Tags:        tags,
		},
		Transcript: make([]RecordEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		record.Transcript = append(record.Transcript, RecordEntry{
			Text: SanitizeText(entry.Text),
			At:   youtube.FormatTimestamp(entry.Start),
		})
	}

	path := filepath.Join(dir, w.sanitizer.Filename(title)+RecordExt)
	if err := writeJSON(path, &record); err != nil {
		return "", err
	}

	w.logger.Info().Str("path", path).Str("video_url", videoURL).Msg("record saved")
	return path, nil
}

// writeJSON serializes v as indented UTF-8 JSON and replaces path atomically.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return &StoreError{Op: "encode", Path: path, Err: err}
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &StoreError{Op: "write", Path: path, Err: err}
	}
	return nil
}
