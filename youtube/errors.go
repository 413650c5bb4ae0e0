package youtube

import "errors"

// Sentinel errors for the closed set of failure modes.
var (
	// ErrInvalidVideoID indicates the input string contains no video ID.
	ErrInvalidVideoID = errors.New("youtube: no video ID in input")
	// ErrInvalidChannelRef indicates the input is not a channel URL or handle.
	ErrInvalidChannelRef = errors.New("youtube: invalid channel URL or handle")
	// ErrChannelNotFound indicates the channel does not exist.
	ErrChannelNotFound = errors.New("youtube: channel not found")
	// ErrMetadataUnavailable indicates the provider returned no metadata.
	ErrMetadataUnavailable = errors.New("youtube: metadata unavailable")
	// ErrTranscriptsDisabled indicates the video owner disabled transcripts.
	ErrTranscriptsDisabled = errors.New("youtube: transcripts are disabled for this video")
	// ErrNoTranscriptFound indicates no transcript exists in any track.
	ErrNoTranscriptFound = errors.New("youtube: no transcript found for this video")
)

// TranscriptError wraps transport failures during transcript fetching.
// Disabled and missing transcripts use the sentinel errors instead, so the
// three outcomes stay distinguishable with errors.Is / errors.As:
//
//	var terr *youtube.TranscriptError
//	if errors.As(err, &terr) {
//		fmt.Printf("fetch %s: %v\n", terr.VideoID, terr.Err)
//	}
type TranscriptError struct {
	// VideoID is the video whose transcript fetch failed.
	VideoID string
	// Err is the underlying transport error.
	Err error
}

func (e *TranscriptError) Error() string {
	return "youtube: transcript fetch " + e.VideoID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *TranscriptError) Unwrap() error { return e.Err }
