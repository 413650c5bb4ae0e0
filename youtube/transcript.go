package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	httpclient "ytscribe/http"
)

const timedtextBaseURL = "https://www.youtube.com/api/timedtext"

// TranscriptEntry is one timed caption in source order.
type TranscriptEntry struct {
	// Text is the raw caption text.
	Text string
	// Start is the offset from the start of the video, in seconds.
	Start float64
}

// TranscriptClient fetches transcripts from YouTube's timedtext endpoint.
// Each fetch is a single attempt; callers decide whether to continue a batch.
type TranscriptClient struct {
	httpClient *httpclient.Client
	baseURL    string
	lang       string
}

// TranscriptOption configures a TranscriptClient.
type TranscriptOption func(*TranscriptClient)

// WithLanguage sets the caption language code (default "en").
func WithLanguage(lang string) TranscriptOption {
	return func(tc *TranscriptClient) { tc.lang = lang }
}

// WithBaseURL overrides the timedtext endpoint, for tests.
func WithBaseURL(base string) TranscriptOption {
	return func(tc *TranscriptClient) { tc.baseURL = base }
}

// NewTranscriptClient creates a transcript client on top of the given HTTP
// client. A nil client uses defaults.
func NewTranscriptClient(client *httpclient.Client, opts ...TranscriptOption) *TranscriptClient {
	if client == nil {
		client = httpclient.New(nil)
	}
	tc := &TranscriptClient{
		httpClient: client,
		baseURL:    timedtextBaseURL,
		lang:       "en",
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// timedtextResponse is the raw timedtext API response.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	StartMs    int64              `json:"tStartMs"`
	DurationMs int64              `json:"dDurationMs"`
	Segs       []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// Fetch retrieves the transcript for a video. Three outcomes are
// distinguished: success, ErrTranscriptsDisabled and ErrNoTranscriptFound;
// any other failure is wrapped in a *TranscriptError.
func (tc *TranscriptClient) Fetch(ctx context.Context, videoID string) ([]TranscriptEntry, error) {
	if videoID == "" {
		return nil, &TranscriptError{VideoID: videoID, Err: fmt.Errorf("video ID is required")}
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", tc.lang)
	params.Set("fmt", "json3")

	resp, err := tc.httpClient.Get(ctx, tc.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, &TranscriptError{VideoID: videoID, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w (id %s)", ErrNoTranscriptFound, videoID)
	case http.StatusForbidden:
		return nil, fmt.Errorf("%w (id %s)", ErrTranscriptsDisabled, videoID)
	default:
		return nil, &TranscriptError{VideoID: videoID, Err: fmt.Errorf("timedtext status %d", resp.StatusCode)}
	}

	entries, err := parseTimedtext(resp.Body)
	if err != nil {
		return nil, &TranscriptError{VideoID: videoID, Err: err}
	}
	if len(entries) == 0 {
		// A 200 with no caption events means no track exists for the language.
		return nil, fmt.Errorf("%w (id %s)", ErrNoTranscriptFound, videoID)
	}

	return entries, nil
}

// parseTimedtext parses the timedtext JSON body into ordered entries.
func parseTimedtext(data []byte) ([]TranscriptEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}

	var entries []TranscriptEntry
	for _, event := range resp.Events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}

		entries = append(entries, TranscriptEntry{
			Text:  text.String(),
			Start: float64(event.StartMs) / 1000.0,
		})
	}

	return entries, nil
}

// Close releases resources held by the client.
func (tc *TranscriptClient) Close() error {
	return tc.httpClient.Close()
}
