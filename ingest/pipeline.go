// Package ingest drives the batch pipeline: identifier extraction,
// metadata resolution, transcript fetching and record persistence across a
// sequence of inputs.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ytscribe/youtube"
)

// MetadataResolver resolves metadata for a single video.
type MetadataResolver interface {
	Resolve(ctx context.Context, videoID string) (*youtube.VideoMetadata, error)
}

// TranscriptFetcher fetches the transcript of a single video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]youtube.TranscriptEntry, error)
}

// RecordSaver persists one transcript record.
type RecordSaver interface {
	Save(ctx context.Context, videoURL string, entries []youtube.TranscriptEntry, channelName, title, publishDate string) (string, error)
}

// Item is one unit of batch input: a video URL, optionally with metadata
// already known to the caller (e.g. from a prior channel enumeration).
// Incomplete metadata is discarded and resolved fresh.
type Item struct {
	URL      string
	Metadata *youtube.VideoMetadata
}

// Result summarizes one batch run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string
	// Total is the number of items processed.
	Total int
	// Saved is the number of records written.
	Saved int
	// Skipped is the number of items that failed and were passed over.
	Skipped int
}

// Pipeline orchestrates per-video fetch operations. A failure on one item
// is reported and the next item processed; no item failure aborts a batch.
type Pipeline struct {
	extractor *youtube.IDExtractor
	resolver  MetadataResolver
	fetcher   TranscriptFetcher
	saver     RecordSaver
	logger    zerolog.Logger
	out       io.Writer
}

// NewPipeline wires the pipeline stages together. out receives user-facing
// progress and failure messages; nil means os.Stdout.
func NewPipeline(extractor *youtube.IDExtractor, resolver MetadataResolver, fetcher TranscriptFetcher, saver RecordSaver, logger zerolog.Logger, out io.Writer) *Pipeline {
	if extractor == nil {
		extractor = youtube.DefaultIDExtractor()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{
		extractor: extractor,
		resolver:  resolver,
		fetcher:   fetcher,
		saver:     saver,
		logger:    logger.With().Str("component", "ingest").Logger(),
		out:       out,
	}
}

// Run processes items in order and returns a summary. Iteration order is
// strictly the input's order; progress is reported by position.
func (p *Pipeline) Run(ctx context.Context, items []Item) *Result {
	result := &Result{RunID: uuid.NewString(), Total: len(items)}
	logger := p.logger.With().Str("run_id", result.RunID).Logger()
	logger.Info().Int("items", len(items)).Msg("batch started")

	for i, item := range items {
		fmt.Fprintf(p.out, "[%d/%d] %s\n", i+1, len(items), item.URL)
		if err := p.processItem(ctx, logger, item); err != nil {
			result.Skipped++
			continue
		}
		result.Saved++
	}

	logger.Info().Int("saved", result.Saved).Int("skipped", result.Skipped).Msg("batch finished")
	return result
}

// RunSingle processes one URL with optional caller-supplied metadata.
func (p *Pipeline) RunSingle(ctx context.Context, url string, metadata *youtube.VideoMetadata) *Result {
	return p.Run(ctx, []Item{{URL: url, Metadata: metadata}})
}

// processItem runs extraction, resolution, fetching and persistence for one
// item. Every failure is reported to the user and logged with the failing
// identifier; the returned error only signals "skip this item".
func (p *Pipeline) processItem(ctx context.Context, logger zerolog.Logger, item Item) error {
	videoID, err := p.extractor.Extract(item.URL)
	if err != nil {
		fmt.Fprintf(p.out, "Invalid URL %q: no video ID found.\n", item.URL)
		logger.Warn().Str("url", item.URL).Msg("no video ID in input")
		return err
	}
	logger = logger.With().Str("video_id", videoID).Logger()

	metadata := item.Metadata
	if metadata.Complete() {
		fmt.Fprintf(p.out, "Using provided metadata for video %s.\n", videoID)
	} else {
		if metadata != nil {
			fmt.Fprintf(p.out, "Incomplete metadata for video %s, fetching fresh.\n", videoID)
		}
		metadata, err = p.resolver.Resolve(ctx, videoID)
		if err != nil {
			fmt.Fprintf(p.out, "Failed to fetch metadata for video %s. Skipping.\n", videoID)
			logger.Error().Err(err).Msg("metadata resolution failed")
			return err
		}
	}

	entries, err := p.fetcher.Fetch(ctx, videoID)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrTranscriptsDisabled):
			fmt.Fprintln(p.out, "Transcripts are disabled for this video.")
		case errors.Is(err, youtube.ErrNoTranscriptFound):
			fmt.Fprintln(p.out, "No transcript found for this video.")
		default:
			fmt.Fprintf(p.out, "An error occurred: %v\n", err)
		}
		logger.Error().Err(err).Msg("transcript fetch failed")
		return err
	}

	path, err := p.saver.Save(ctx, youtube.WatchURL(videoID), entries,
		metadata.ChannelTitle, metadata.Title, metadata.PublishDate)
	if err != nil {
		fmt.Fprintf(p.out, "Failed to save transcript for %s: %v\n", metadata.Title, err)
		logger.Error().Err(err).Msg("record save failed")
		return err
	}

	fmt.Fprintf(p.out, "Transcript for %s saved.\n", metadata.Title)
	logger.Info().Str("path", path).Msg("record saved")
	return nil
}
