package ytscribe

import (
	"ytscribe/config"
	"ytscribe/store"
	"ytscribe/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytscribe.ErrTranscriptsDisabled) {
//		fmt.Println("Transcripts are disabled for this video.")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var tErr *ytscribe.TranscriptError
//	if errors.As(err, &tErr) {
//		fmt.Printf("Fetching %s failed: %v\n", tErr.VideoID, tErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// TranscriptError wraps errors during transcript retrieval.
	TranscriptError = youtube.TranscriptError
	// StoreError wraps errors during transcript storage operations.
	StoreError = store.StoreError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidVideoID indicates a video ID could not be extracted from the input.
	ErrInvalidVideoID = youtube.ErrInvalidVideoID
	// ErrInvalidChannelRef indicates the channel reference format was not recognized.
	ErrInvalidChannelRef = youtube.ErrInvalidChannelRef
	// ErrChannelNotFound indicates the YouTube channel does not exist.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrMetadataUnavailable indicates video metadata could not be retrieved.
	ErrMetadataUnavailable = youtube.ErrMetadataUnavailable
	// ErrTranscriptsDisabled indicates captions are disabled for the video.
	ErrTranscriptsDisabled = youtube.ErrTranscriptsDisabled
	// ErrNoTranscriptFound indicates no caption track exists for the requested language.
	ErrNoTranscriptFound = youtube.ErrNoTranscriptFound

	// Config errors
	// ErrAPIKeyMissing indicates no YouTube Data API key was configured.
	ErrAPIKeyMissing = config.ErrAPIKeyMissing
)
