package store

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// digestChunkSize is the read buffer used when hashing record files, so
// large files are never loaded whole into memory.
const digestChunkSize = 8192

// DuplicatePair is one duplicate record pointing at its first-seen original.
type DuplicatePair struct {
	Duplicate string
	Original  string
}

// DuplicateReport maps content digests to first-seen paths and lists every
// later occurrence as a (duplicate, original) pair. Three identical files
// yield two pairs referencing the same original.
type DuplicateReport struct {
	// FirstSeen maps hex digest to the first file carrying that content.
	FirstSeen map[string]string
	// Pairs holds duplicates in walk order.
	Pairs []DuplicatePair
}

// FindDuplicates walks root recursively, digests every record file and
// reports files sharing a digest. A digest failure for one file is logged
// and that file excluded; the walk continues.
func FindDuplicates(root string, logger zerolog.Logger) (*DuplicateReport, error) {
	logger = logger.With().Str("component", "dedupe").Logger()

	report := &DuplicateReport{FirstSeen: make(map[string]string)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), RecordExt) {
			return nil
		}

		digest, err := fileDigest(path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("digest failed, file skipped")
			return nil
		}

		if original, seen := report.FirstSeen[digest]; seen {
			report.Pairs = append(report.Pairs, DuplicatePair{Duplicate: path, Original: original})
		} else {
			report.FirstSeen[digest] = path
		}
		return nil
	})
	if err != nil {
		return nil, &StoreError{Op: "walk", Path: root, Err: err}
	}

	return report, nil
}

// fileDigest computes the SHA-1 of a file, streamed in fixed-size chunks.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, digestChunkSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteReport writes the duplicate pairs as a flat text report, replacing
// any prior report. Nothing is written when there are no duplicates.
func (r *DuplicateReport) WriteReport(path string) error {
	if len(r.Pairs) == 0 {
		return nil
	}

	var b strings.Builder
	for _, pair := range r.Pairs {
		fmt.Fprintf(&b, "Duplicate: %s\nOriginal: %s\n\n", pair.Duplicate, pair.Original)
	}

	if err := renameio.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return &StoreError{Op: "write", Path: path, Err: err}
	}
	return nil
}
