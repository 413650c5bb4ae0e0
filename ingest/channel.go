package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"ytscribe/youtube"
)

// VideoPager iterates a channel listing one page at a time.
// youtube.ChannelPager is the production implementation.
type VideoPager interface {
	ChannelName() string
	Done() bool
	NextPage(ctx context.Context) ([]*youtube.VideoMetadata, error)
}

// ChannelExporter writes a channel listing to a tabular file.
type ChannelExporter interface {
	WriteChannelCSV(channelName string, rows []*youtube.VideoMetadata) (string, error)
}

// EnumerateChannel drains the pager and writes the full listing as a CSV
// export, returning the export path and the rows. The export overwrites any
// prior file for the channel. The resulting CSV is directly usable as
// batch input (ID in the first column, header skipped).
func EnumerateChannel(ctx context.Context, pager VideoPager, exporter ChannelExporter, logger zerolog.Logger, out io.Writer) (string, []*youtube.VideoMetadata, error) {
	if out == nil {
		out = os.Stdout
	}
	logger = logger.With().Str("component", "ingest").Str("channel", pager.ChannelName()).Logger()

	var rows []*youtube.VideoMetadata
	page := 0
	for !pager.Done() {
		batch, err := pager.NextPage(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("enumerate channel %s: %w", pager.ChannelName(), err)
		}
		page++
		rows = append(rows, batch...)
		logger.Info().Int("page", page).Int("videos", len(rows)).Msg("page fetched")
	}

	path, err := exporter.WriteChannelCSV(pager.ChannelName(), rows)
	if err != nil {
		return "", nil, err
	}

	fmt.Fprintf(out, "Fetched %d videos. Saved to %s.\n", len(rows), path)
	logger.Info().Int("videos", len(rows)).Str("path", path).Msg("channel enumerated")
	return path, rows, nil
}
