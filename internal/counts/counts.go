// Package counts reads and writes the per-video frame-count table
// (counts.csv, header "filename,frames").
package counts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Elias2660/bee-analysis/internal/timeline"
)

// Row is one counts.csv record.
type Row struct {
	Filename string
	Frames   int
}

// Table maps video filenames to total decodable frame counts. Lookups are
// keyed by base filename so callers may pass full paths.
type Table struct {
	rows   []Row
	frames map[string]int
}

// Load reads a counts.csv file.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timeline.ErrMalformedInput, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header of %s: %v",
			timeline.ErrMalformedInput, path, err)
	}
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[col] = i
	}
	fileCol, ok := colMap["filename"]
	if !ok {
		return nil, fmt.Errorf("%w: %s is missing a filename column", timeline.ErrMalformedInput, path)
	}
	frameCol, ok := colMap["frames"]
	if !ok {
		return nil, fmt.Errorf("%w: %s is missing a frames column", timeline.ErrMalformedInput, path)
	}

	table := &Table{frames: make(map[string]int)}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", timeline.ErrMalformedInput, path, line, err)
		}

		frames, err := strconv.Atoi(record[frameCol])
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: invalid frame count %q",
				timeline.ErrMalformedInput, path, line, record[frameCol])
		}

		row := Row{Filename: record[fileCol], Frames: frames}
		table.rows = append(table.rows, row)
		table.frames[filepath.Base(row.Filename)] = frames
	}

	if len(table.rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", timeline.ErrMalformedInput, path)
	}

	return table, nil
}

// Frames reports the frame count for a video, looked up by base filename.
func (t *Table) Frames(name string) (int, bool) {
	n, ok := t.frames[filepath.Base(name)]
	return n, ok
}

// Rows returns the records in file order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Write produces a counts.csv file from the given rows.
func Write(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"filename", "frames"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Filename, strconv.Itoa(row.Frames)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Filename, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
