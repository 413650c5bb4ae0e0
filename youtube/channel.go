package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ytscribe/internal/retry"
)

// channelIDPattern matches channel IDs (UC followed by 22 chars).
var channelIDPattern = regexp.MustCompile(`UC[0-9A-Za-z_-]{22}`)

// ResolveChannelID converts a channel URL or handle to a channel ID.
// Direct /channel/ URLs are resolved locally without a remote call; handles
// go through a channel search taking the first result. Anything else fails
// with ErrInvalidChannelRef.
func (r *Resolver) ResolveChannelID(ctx context.Context, ref string) (string, error) {
	if strings.Contains(ref, "channel/") {
		parts := strings.Split(ref, "channel/")
		id := strings.Split(parts[len(parts)-1], "/")[0]
		id = strings.Split(id, "?")[0]
		if channelIDPattern.MatchString(id) {
			return id, nil
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidChannelRef, ref)
	}

	if i := strings.Index(ref, "@"); i >= 0 {
		handle := strings.Split(ref[i+1:], "/")[0]
		if handle == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidChannelRef, ref)
		}
		return r.searchChannel(ctx, handle)
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidChannelRef, ref)
}

// searchChannel finds a channel ID by free-text query, taking the first hit.
func (r *Resolver) searchChannel(ctx context.Context, query string) (string, error) {
	var channelID string

	err := retry.Do(ctx, r.RetryConfig, apiErrorClassifier, func(ctx context.Context) error {
		call := r.service.Search.List([]string{"snippet"}).
			Q(query).
			Type("channel").
			MaxResults(1).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}

		channelID = resp.Items[0].Snippet.ChannelId
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("channel search failed")
		return "", err
	}

	return channelID, nil
}

// uploadsPlaylist returns the uploads playlist ID and display name of a channel.
func (r *Resolver) uploadsPlaylist(ctx context.Context, channelID string) (string, string, error) {
	var playlistID, channelName string

	err := retry.Do(ctx, r.RetryConfig, apiErrorClassifier, func(ctx context.Context) error {
		call := r.service.Channels.List([]string{"contentDetails", "snippet"}).
			Id(channelID).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}

		channel := resp.Items[0]
		playlistID = channel.ContentDetails.RelatedPlaylists.Uploads
		if channel.Snippet != nil {
			channelName = channel.Snippet.Title
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}

	return playlistID, channelName, nil
}

// pageSize is the playlistItems page size.
const pageSize = 50

// ChannelPager iterates a channel's uploads playlist one page at a time.
// The consumer decides how many pages to pull; iteration is done when the
// provider stops returning a continuation token.
type ChannelPager struct {
	resolver    *Resolver
	playlistID  string
	channelName string
	pageToken   string
	done        bool
}

// NewChannelPager resolves the channel reference and its uploads playlist
// and returns a pager positioned at the first page.
func (r *Resolver) NewChannelPager(ctx context.Context, channelRef string) (*ChannelPager, error) {
	channelID, err := r.ResolveChannelID(ctx, channelRef)
	if err != nil {
		return nil, err
	}

	playlistID, channelName, err := r.uploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("uploads playlist for %s: %w", channelID, err)
	}

	return &ChannelPager{
		resolver:    r,
		playlistID:  playlistID,
		channelName: channelName,
	}, nil
}

// ChannelName returns the channel's display name.
func (p *ChannelPager) ChannelName() string { return p.channelName }

// Done reports whether all pages have been consumed.
func (p *ChannelPager) Done() bool { return p.done }

// NextPage fetches the next page of the uploads playlist and resolves full
// metadata for its videos in one batched call. Playlist entries without a
// resolvable video ID are skipped and logged. After the last page Done
// reports true and further calls return nil.
func (p *ChannelPager) NextPage(ctx context.Context) ([]*VideoMetadata, error) {
	if p.done {
		return nil, nil
	}

	r := p.resolver

	var videoIDs []string
	err := retry.Do(ctx, r.RetryConfig, apiErrorClassifier, func(ctx context.Context) error {
		call := r.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(p.playlistID).
			MaxResults(pageSize).
			PageToken(p.pageToken).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			return err
		}

		videoIDs = videoIDs[:0]
		for _, item := range resp.Items {
			id := ""
			if item.ContentDetails != nil {
				id = item.ContentDetails.VideoId
			}
			if id == "" && item.Snippet != nil && item.Snippet.ResourceId != nil {
				id = item.Snippet.ResourceId.VideoId
			}
			if id == "" {
				r.logger.Warn().Str("item_id", item.Id).Msg("skipping playlist item without video ID")
				continue
			}
			videoIDs = append(videoIDs, id)
		}

		p.pageToken = resp.NextPageToken
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list playlist %s: %w", p.playlistID, err)
	}

	if p.pageToken == "" {
		p.done = true
	}

	if len(videoIDs) == 0 {
		return nil, nil
	}

	rows, err := r.ResolveBatch(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
