package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ytscribe/internal/retry"
)

// maxBatchSize is the Data API limit on IDs per videos.list call.
const maxBatchSize = 50

// VideoMetadata contains the descriptive attributes of a video.
type VideoMetadata struct {
	// VideoID is the 11-character video ID.
	VideoID string
	// Title is the video title.
	Title string
	// ChannelTitle is the display name of the channel.
	ChannelTitle string
	// PublishDate is the publish date truncated to YYYY-MM-DD.
	PublishDate string
	// Duration is the video length in display form (MM:SS or HH:MM:SS).
	Duration string
	// Tags are the video's tags, in source order. May be empty.
	Tags []string
}

// Complete reports whether every required attribute is present. Incomplete
// metadata supplied by a caller is discarded and resolved fresh.
func (m *VideoMetadata) Complete() bool {
	if m == nil {
		return false
	}
	return m.Title != "" &&
		m.ChannelTitle != "" &&
		m.PublishDate != "" &&
		m.Duration != "" &&
		len(m.Tags) > 0
}

// Resolver fetches video and channel metadata from the YouTube Data API v3.
type Resolver struct {
	service     *youtube.Service
	logger      zerolog.Logger
	RetryConfig retry.Config
}

// NewResolver creates a Data API-backed metadata resolver.
func NewResolver(ctx context.Context, apiKey string, logger zerolog.Logger, opts ...option.ClientOption) (*Resolver, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Resolver{
		service:     service,
		logger:      logger.With().Str("component", "resolver").Logger(),
		RetryConfig: retry.DefaultConfig(),
	}, nil
}

// Resolve fetches metadata for a single video. Missing videos yield
// ErrMetadataUnavailable.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*VideoMetadata, error) {
	items, err := r.ResolveBatch(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		r.logger.Warn().Str("video_id", videoID).Msg("no metadata found")
		return nil, fmt.Errorf("%w: %s", ErrMetadataUnavailable, videoID)
	}
	return items[0], nil
}

// ResolveBatch fetches metadata for up to 50 videos in one videos.list call.
// Videos the provider does not know are absent from the result, in line with
// the API's behavior; the returned slice preserves the provider's order.
func (r *Resolver) ResolveBatch(ctx context.Context, videoIDs []string) ([]*VideoMetadata, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > maxBatchSize {
		return nil, fmt.Errorf("at most %d video IDs per batch, got %d", maxBatchSize, len(videoIDs))
	}

	var resp *youtube.VideoListResponse
	err := retry.Do(ctx, r.RetryConfig, apiErrorClassifier, func(ctx context.Context) error {
		call := r.service.Videos.List([]string{"snippet", "contentDetails"}).
			Id(strings.Join(videoIDs, ",")).
			Context(ctx)

		var err error
		resp, err = call.Do()
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Strs("video_ids", videoIDs).Msg("videos.list failed")
		return nil, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}

	items := make([]*VideoMetadata, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, metadataFromItem(item))
	}
	return items, nil
}

// metadataFromItem converts a Data API video item to VideoMetadata.
// Missing or unparseable durations default to zero seconds.
func metadataFromItem(item *youtube.Video) *VideoMetadata {
	md := &VideoMetadata{VideoID: item.Id}

	if item.Snippet != nil {
		md.Title = item.Snippet.Title
		md.ChannelTitle = item.Snippet.ChannelTitle
		if len(item.Snippet.PublishedAt) >= 10 {
			md.PublishDate = item.Snippet.PublishedAt[:10]
		}
		md.Tags = item.Snippet.Tags
	}
	if item.ContentDetails != nil {
		md.Duration = FormatPeriod(item.ContentDetails.Duration)
	} else {
		md.Duration = FormatTimestamp(0)
	}

	return md
}

// apiErrorClassifier determines if a Data API error is retryable.
func apiErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrChannelNotFound), errors.Is(err, ErrInvalidChannelRef):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400, 401, 403, 404:
			// Bad requests, auth failures and missing resources don't heal.
			// Quota errors also surface as 403 and won't clear within a run.
			return false
		}
	}

	return true
}
