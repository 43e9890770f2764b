package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedInput reports an input table that is empty, unparsable, or
// missing a mandatory field. Fatal for the run; no partial output is produced.
var ErrMalformedInput = errors.New("malformed input")

// SegmentFile is one discovered video file with the start time parsed from
// its name.
type SegmentFile struct {
	Filename  string
	StartTime int64 // epoch seconds
}

// Segment is one contiguous video file on the recording timeline.
type Segment struct {
	Filename   string
	StartTime  int64
	FrameCount int   // 0 when no count is known for this file
	Duration   int64 // seconds
	EndTime    int64
}

// SegmentTimeline holds segments sorted by start time with durations and
// end times populated. Construct via BuildSegmentTimeline; the sorted order
// is an invariant of the type, not caller discipline.
type SegmentTimeline struct {
	segments []Segment
}

// BuildSegmentTimeline orders the given files by start time and derives each
// segment's duration from its successor's start. The last segment has no
// successor, so its duration comes from its total frame count and the frame
// rate, which is why frames[last] is mandatory.
func BuildSegmentTimeline(files []SegmentFile, frames map[string]int, fps int) (*SegmentTimeline, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no video segments", ErrMalformedInput)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: frame rate must be positive, got %d", ErrMalformedInput, fps)
	}

	segments := make([]Segment, len(files))
	for i, f := range files {
		segments[i] = Segment{
			Filename:   f.Filename,
			StartTime:  f.StartTime,
			FrameCount: frames[f.Filename],
		}
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].StartTime < segments[j].StartTime
	})

	for i := 1; i < len(segments); i++ {
		if segments[i].StartTime == segments[i-1].StartTime {
			return nil, fmt.Errorf("%w: segments %q and %q share start time %d",
				ErrMalformedInput, segments[i-1].Filename, segments[i].Filename, segments[i].StartTime)
		}
	}

	last := len(segments) - 1
	if segments[last].FrameCount <= 0 {
		return nil, fmt.Errorf("%w: no frame count for last segment %q",
			ErrMalformedInput, segments[last].Filename)
	}

	for i := range segments {
		if i < last {
			segments[i].Duration = segments[i+1].StartTime - segments[i].StartTime
		} else {
			segments[i].Duration = int64(segments[i].FrameCount / fps)
		}
		segments[i].EndTime = segments[i].StartTime + segments[i].Duration
	}

	return &SegmentTimeline{segments: segments}, nil
}

func (t *SegmentTimeline) Len() int {
	return len(t.segments)
}

func (t *SegmentTimeline) At(i int) Segment {
	return t.segments[i]
}

func (t *SegmentTimeline) Last() Segment {
	return t.segments[len(t.segments)-1]
}

// Segments returns a copy of the ordered segments.
func (t *SegmentTimeline) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// OwnerIndex resolves the segment an instant belongs to: the one with the
// greatest start time strictly less than ts. An instant landing exactly on a
// segment boundary therefore belongs to the previous segment. Reports false
// when ts precedes every segment.
func (t *SegmentTimeline) OwnerIndex(ts int64) (int, bool) {
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].StartTime >= ts
	})
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

// EventRecord is one raw log entry: a class and when it started.
type EventRecord struct {
	Class     string
	StartTime int64
}

// Event is a logged occurrence with its end time filled in.
type Event struct {
	Class     string
	StartTime int64
	EndTime   int64
}

// EventTimeline holds events sorted by start time with end times populated.
type EventTimeline struct {
	events []Event
}

// BuildEventTimeline orders events by start time. Each event runs until the
// next one begins; the final event runs until the recording ends, taken from
// the last segment's end time.
func BuildEventTimeline(records []EventRecord, segments *SegmentTimeline) (*EventTimeline, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no events", ErrMalformedInput)
	}

	events := make([]Event, len(records))
	for i, r := range records {
		events[i] = Event{Class: r.Class, StartTime: r.StartTime}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})

	last := len(events) - 1
	for i := 0; i < last; i++ {
		events[i].EndTime = events[i+1].StartTime
	}

	recordingEnd := segments.Last().EndTime
	if recordingEnd < events[last].StartTime {
		return nil, fmt.Errorf("%w: event %q at %d starts after recording ends at %d",
			ErrMalformedInput, events[last].Class, events[last].StartTime, recordingEnd)
	}
	events[last].EndTime = recordingEnd

	return &EventTimeline{events: events}, nil
}

func (t *EventTimeline) Len() int {
	return len(t.events)
}

func (t *EventTimeline) At(i int) Event {
	return t.events[i]
}

// Events returns a copy of the ordered events.
func (t *EventTimeline) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}
