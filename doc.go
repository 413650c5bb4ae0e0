// Package ytscribe downloads YouTube transcripts and video metadata.
//
// It fetches caption tracks through the timedtext endpoint, resolves video
// and channel metadata through the YouTube Data API v3, and stores each
// transcript as a JSON record alongside its metadata.
//
// Overview
//
// The sub-packages divide the work:
//
//   - youtube: video ID extraction, metadata resolution, channel
//     enumeration, and transcript retrieval
//   - store: sanitized filenames, JSON transcript records, channel CSV
//     exports, and duplicate detection
//   - ingest: the batch pipeline that ties extraction, resolution,
//     fetching, and saving together
//   - config: configuration management
//
// Quick Start
//
// Fetch and save a single transcript:
//
//	ctx := context.Background()
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	resolver, err := youtube.NewResolver(ctx, cfg.APIKey, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fetcher := youtube.NewTranscriptClient(nil)
//	sanitizer, _ := store.NewSanitizer(cfg.FilenamePattern, cfg.FilenameMaxLen)
//	writer := store.NewWriter(cfg.TranscriptDir, sanitizer, resolver, logger)
//	p := ingest.NewPipeline(nil, resolver, fetcher, writer, logger, os.Stdout)
//	p.RunSingle(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", nil)
//
// Configuration
//
// ytscribe loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytscribe.json or ~/.config/ytscribe/ytscribe.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - YOUTUBE_API_KEY: YouTube Data API v3 key (required)
//   - YTSCRIBE_LOG_FILE: Path of the log file
//   - YTSCRIBE_LOG_ENABLED: Enable logging (true/false)
//   - YTSCRIBE_TRANSCRIPT_DIR: Root directory for transcript records
//   - YTSCRIBE_FILENAME_MAX_LEN: Maximum sanitized filename length
//   - YTSCRIBE_HTTP_TIMEOUT: Timeout for transcript HTTP requests
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
//	if errors.Is(err, ytscribe.ErrNoTranscriptFound) {
//		fmt.Println("No transcript found for this video.")
//	}
//
// Extracting wrapped error details:
//
//	var sErr *ytscribe.StoreError
//	if errors.As(err, &sErr) {
//		fmt.Printf("%s failed on %s: %v\n", sErr.Op, sErr.Path, sErr.Err)
//	}
package ytscribe
