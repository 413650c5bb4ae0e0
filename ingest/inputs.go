package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytscribe/youtube"
)

// ItemsFromFile reads batch input from a line-delimited file of IDs/URLs,
// or from a CSV file (by extension) whose first row is a header and whose
// first column holds the ID. Bare identifiers are expanded to canonical
// watch URLs; full URLs pass through unchanged.
func ItemsFromFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return itemsFromCSV(f)
	}
	return itemsFromLines(f)
}

func itemsFromCSV(f *os.File) ([]Item, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV input: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var items []Item
	for _, row := range rows[1:] { // first row is the header
		if len(row) == 0 {
			continue
		}
		if v := strings.TrimSpace(row[0]); v != "" {
			items = append(items, Item{URL: canonicalURL(v)})
		}
	}
	return items, nil
}

func itemsFromLines(f *os.File) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if v := strings.TrimSpace(scanner.Text()); v != "" {
			items = append(items, Item{URL: canonicalURL(v)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return items, nil
}

// canonicalURL expands a bare video ID to its watch URL.
func canonicalURL(s string) string {
	if strings.HasPrefix(s, "https://") {
		return s
	}
	return youtube.WatchURL(s)
}
