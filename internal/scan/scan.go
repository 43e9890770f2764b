// Package scan discovers and parses the pipeline's raw inputs: timestamped
// video filenames and line-delimited event logs.
package scan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Elias2660/bee-analysis/internal/timeline"
)

const (
	// event logs carry one timestamp per line in this layout
	logTimeLayout = "20060102_150405"
	// video file stems carry the recording start time, followed by a
	// sub-second suffix that is stripped before parsing
	fileTimeLayout = "2006-01-02 15:04:05"
)

// ListVideos returns the video files in dir with the given extension
// (e.g. ".h264"), sorted by name.
func ListVideos(dir, ext string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", ext, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ParseSegmentStart extracts the epoch start time encoded in a video
// filename such as "2024-07-01 12:00:00.123456.h264". The layout carries no
// zone, so it is read in the machine's local zone, matching how the logs
// were written.
func ParseSegmentStart(path string) (int64, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i] // drop the sub-second suffix
	}
	ts, err := time.ParseInLocation(fileTimeLayout, stem, time.Local)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse start time from %q: %v",
			timeline.ErrMalformedInput, filepath.Base(path), err)
	}
	return ts.Unix(), nil
}

// DiscoverSegments lists the videos in dir and parses each filename's start
// time.
func DiscoverSegments(dir, ext string) ([]timeline.SegmentFile, error) {
	paths, err := ListVideos(dir, ext)
	if err != nil {
		return nil, err
	}

	files := make([]timeline.SegmentFile, 0, len(paths))
	for _, path := range paths {
		start, err := ParseSegmentStart(path)
		if err != nil {
			return nil, err
		}
		files = append(files, timeline.SegmentFile{Filename: path, StartTime: start})
	}
	return files, nil
}

// ParseEventLog reads one class's log. The class is the file's stem and each
// non-blank line is one event start timestamp.
func ParseEventLog(path string) ([]timeline.EventRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timeline.ErrMalformedInput, err)
	}
	defer file.Close()

	class := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var records []timeline.EventRecord
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ts, err := time.ParseInLocation(logTimeLayout, line, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: cannot parse timestamp %q",
				timeline.ErrMalformedInput, filepath.Base(path), lineNum, line)
		}
		records = append(records, timeline.EventRecord{Class: class, StartTime: ts.Unix()})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return records, nil
}

// ReadEventLogs reads every named log in dir and merges the records. All
// logs must exist and parse; a missing log is a fatal input defect.
func ReadEventLogs(dir string, names []string) ([]timeline.EventRecord, error) {
	var records []timeline.EventRecord
	for _, name := range names {
		recs, err := ParseEventLog(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}
