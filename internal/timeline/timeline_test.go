package timeline

import (
	"errors"
	"testing"
)

func testFiles() []SegmentFile {
	// deliberately unordered
	return []SegmentFile{
		{Filename: "c.h264", StartTime: 25},
		{Filename: "a.h264", StartTime: 0},
		{Filename: "b.h264", StartTime: 10},
	}
}

func TestBuildSegmentTimeline(t *testing.T) {
	segments, err := BuildSegmentTimeline(testFiles(), map[string]int{"c.h264": 30}, 2)
	if err != nil {
		t.Fatalf("BuildSegmentTimeline failed: %v", err)
	}

	want := []Segment{
		{Filename: "a.h264", StartTime: 0, Duration: 10, EndTime: 10},
		{Filename: "b.h264", StartTime: 10, Duration: 15, EndTime: 25},
		{Filename: "c.h264", StartTime: 25, FrameCount: 30, Duration: 15, EndTime: 40},
	}
	if segments.Len() != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), segments.Len())
	}
	for i, w := range want {
		if got := segments.At(i); got != w {
			t.Errorf("segment %d: expected %+v, got %+v", i, w, got)
		}
	}

	// every boundary is shared: a segment ends exactly where the next starts
	for i := 0; i < segments.Len()-1; i++ {
		if segments.At(i).EndTime != segments.At(i+1).StartTime {
			t.Errorf("segment %d ends at %d but segment %d starts at %d",
				i, segments.At(i).EndTime, i+1, segments.At(i+1).StartTime)
		}
	}

	if got := segments.Last(); got.Filename != "c.h264" {
		t.Errorf("expected last segment c.h264, got %s", got.Filename)
	}
}

func TestBuildSegmentTimelineLastDurationFloors(t *testing.T) {
	// 31 frames at 2 fps floors to 15 seconds
	segments, err := BuildSegmentTimeline(
		[]SegmentFile{{Filename: "a.h264", StartTime: 100}},
		map[string]int{"a.h264": 31},
		2,
	)
	if err != nil {
		t.Fatalf("BuildSegmentTimeline failed: %v", err)
	}
	if got := segments.Last().Duration; got != 15 {
		t.Errorf("expected duration 15, got %d", got)
	}
	if got := segments.Last().EndTime; got != 115 {
		t.Errorf("expected end time 115, got %d", got)
	}
}

func TestBuildSegmentTimelineErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  []SegmentFile
		frames map[string]int
		fps    int
	}{
		{"no segments", nil, map[string]int{}, 2},
		{"zero frame rate", testFiles(), map[string]int{"c.h264": 30}, 0},
		{"missing last frame count", testFiles(), map[string]int{"a.h264": 20}, 2},
		{"negative last frame count", testFiles(), map[string]int{"c.h264": -1}, 2},
		{
			"duplicate start time",
			[]SegmentFile{
				{Filename: "a.h264", StartTime: 5},
				{Filename: "b.h264", StartTime: 5},
			},
			map[string]int{"b.h264": 30},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSegmentTimeline(tt.files, tt.frames, tt.fps)
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestOwnerIndex(t *testing.T) {
	segments, err := BuildSegmentTimeline(testFiles(), map[string]int{"c.h264": 30}, 2)
	if err != nil {
		t.Fatalf("BuildSegmentTimeline failed: %v", err)
	}

	tests := []struct {
		ts     int64
		want   int
		wantOK bool
	}{
		{-3, 0, false},
		{0, 0, false}, // exactly on the first start: strictly-less fails
		{1, 0, true},
		{10, 0, true}, // boundary belongs to the previous segment
		{11, 1, true},
		{25, 1, true},
		{26, 2, true},
		{1000, 2, true}, // past the recording still resolves to the last segment
	}

	for _, tt := range tests {
		got, ok := segments.OwnerIndex(tt.ts)
		if ok != tt.wantOK {
			t.Errorf("OwnerIndex(%d): expected ok=%v, got %v", tt.ts, tt.wantOK, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("OwnerIndex(%d): expected %d, got %d", tt.ts, tt.want, got)
		}
	}
}

func TestBuildEventTimeline(t *testing.T) {
	segments, err := BuildSegmentTimeline(testFiles(), map[string]int{"c.h264": 30}, 2)
	if err != nil {
		t.Fatalf("BuildSegmentTimeline failed: %v", err)
	}

	records := []EventRecord{
		{Class: "logNo", StartTime: 30},
		{Class: "logPos", StartTime: 2},
		{Class: "logNeg", StartTime: 5},
	}
	events, err := BuildEventTimeline(records, segments)
	if err != nil {
		t.Fatalf("BuildEventTimeline failed: %v", err)
	}

	want := []Event{
		{Class: "logPos", StartTime: 2, EndTime: 5},
		{Class: "logNeg", StartTime: 5, EndTime: 30},
		{Class: "logNo", StartTime: 30, EndTime: 40}, // recording end
	}
	if events.Len() != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), events.Len())
	}
	for i, w := range want {
		if got := events.At(i); got != w {
			t.Errorf("event %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestBuildEventTimelineErrors(t *testing.T) {
	segments, err := BuildSegmentTimeline(testFiles(), map[string]int{"c.h264": 30}, 2)
	if err != nil {
		t.Fatalf("BuildSegmentTimeline failed: %v", err)
	}

	if _, err := BuildEventTimeline(nil, segments); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("empty records: expected ErrMalformedInput, got %v", err)
	}

	// recording ends at 40; an event starting later cannot be given an end
	late := []EventRecord{{Class: "logPos", StartTime: 50}}
	if _, err := BuildEventTimeline(late, segments); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("late event: expected ErrMalformedInput, got %v", err)
	}
}
