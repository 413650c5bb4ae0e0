// Command ytscribe downloads YouTube transcripts and metadata.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"ytscribe/config"
	httpclient "ytscribe/http"
	"ytscribe/ingest"
	applog "ytscribe/internal/log"
	"ytscribe/store"
	"ytscribe/youtube"
)

const duplicateReportFile = "duplicates.txt"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "video":
		err = cmdVideo(args)
	case "batch":
		err = cmdBatch(args)
	case "channel":
		err = cmdChannel(args)
	case "dedupe":
		err = cmdDedupe(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytscribe - YouTube transcript downloader

Usage:
  ytscribe video [flags] <video-url>      Download one video's transcript
  ytscribe batch [flags] <file>           Download transcripts for a list file (text or CSV)
  ytscribe channel <channel-url>          Enumerate a channel's uploads into a CSV
  ytscribe dedupe [directory]             Find duplicate transcript records
  ytscribe help                           Show this help message

Examples:
  ytscribe video https://www.youtube.com/watch?v=dQw4w9WgXcQ
  ytscribe video --lang de https://youtu.be/dQw4w9WgXcQ
  ytscribe batch videos.txt
  ytscribe batch transcripts/MyChannel/MyChannel.csv
  ytscribe channel https://www.youtube.com/@SomeCreator
  ytscribe dedupe transcripts

A YouTube Data API key must be provided via the YOUTUBE_API_KEY
environment variable.
`)
}

// app bundles the wired components behind every command.
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	logCloser  io.Closer
	httpClient *httpclient.Client
	resolver   *youtube.Resolver
	writer     *store.Writer
}

// newApp loads configuration and wires the component graph. A missing API
// key is fatal here, before any work starts.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrAPIKeyMissing) {
			return nil, fmt.Errorf("%w (set it in the environment or a .env-style shell profile)", err)
		}
		return nil, err
	}

	logger, logCloser, err := applog.New(cfg.LogFile, cfg.LogEnabled)
	if err != nil {
		return nil, err
	}

	resolver, err := youtube.NewResolver(ctx, cfg.APIKey, logger)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	sanitizer, err := store.NewSanitizer(cfg.FilenamePattern, cfg.FilenameMaxLen)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	hc := httpclient.New(&httpclient.Config{
		Timeout:           cfg.HTTPTimeout,
		UserAgent:         "ytscribe/1.0",
		RequestsPerSecond: 2.5,
		MaxResponseBytes:  32 << 20,
	})

	return &app{
		cfg:        cfg,
		logger:     logger,
		logCloser:  logCloser,
		httpClient: hc,
		resolver:   resolver,
		writer:     store.NewWriter(cfg.TranscriptDir, sanitizer, resolver, logger),
	}, nil
}

func (a *app) close() {
	a.httpClient.Close()
	a.logCloser.Close()
}

// pipeline builds the batch pipeline with the configured ID pattern.
func (a *app) pipeline(lang string) (*ingest.Pipeline, error) {
	extractor, err := youtube.NewIDExtractor(a.cfg.VideoIDPattern)
	if err != nil {
		return nil, err
	}
	fetcher := youtube.NewTranscriptClient(a.httpClient, youtube.WithLanguage(lang))
	return ingest.NewPipeline(extractor, a.resolver, fetcher, a.writer, a.logger, os.Stdout), nil
}

func cmdVideo(args []string) error {
	fs := flag.NewFlagSet("video", flag.ExitOnError)
	lang := fs.String("lang", "en", "Caption language code")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe video [flags] <video-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("missing video-url")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.pipeline(*lang)
	if err != nil {
		return err
	}

	result := p.RunSingle(ctx, fs.Arg(0), nil)
	if result.Saved == 0 {
		return fmt.Errorf("transcript not saved")
	}
	return nil
}

func cmdBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	lang := fs.String("lang", "en", "Caption language code")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe batch [flags] <file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("missing input file")
	}

	items, err := ingest.ItemsFromFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no video URLs in %s", fs.Arg(0))
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.pipeline(*lang)
	if err != nil {
		return err
	}

	result := p.Run(ctx, items)
	fmt.Printf("Done: %d saved, %d skipped of %d.\n", result.Saved, result.Skipped, result.Total)
	return nil
}

func cmdChannel(args []string) error {
	fs := flag.NewFlagSet("channel", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe channel <channel-url>\n")
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("missing channel-url")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	pager, err := a.resolver.NewChannelPager(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	_, _, err = ingest.EnumerateChannel(ctx, pager, a.writer, a.logger, os.Stdout)
	return err
}

func cmdDedupe(args []string) error {
	fs := flag.NewFlagSet("dedupe", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe dedupe [directory]\n")
	}
	fs.Parse(args)

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	dir := a.cfg.TranscriptDir
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	report, err := store.FindDuplicates(dir, a.logger)
	if err != nil {
		return err
	}

	if len(report.Pairs) == 0 {
		fmt.Println("No duplicate transcripts found.")
		return nil
	}

	if err := report.WriteReport(duplicateReportFile); err != nil {
		return err
	}
	fmt.Printf("Found %d duplicates. Saved report to %s.\n", len(report.Pairs), duplicateReportFile)
	return nil
}
