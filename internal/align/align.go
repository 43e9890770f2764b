// Package align maps event intervals onto segment-relative frame ranges.
package align

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Elias2660/bee-analysis/internal/timeline"
)

var (
	// ErrUnalignedEvent reports an event starting before every known segment.
	ErrUnalignedEvent = errors.New("event precedes all segments")

	// ErrSegmentExhausted reports an event whose duration extends past the
	// last known segment. Indicates the event log and the segment set are
	// inconsistent, e.g. events logged after recording stopped.
	ErrSegmentExhausted = errors.New("event extends past the last segment")
)

// Label is one output record: a frame range inside a single video file
// carrying a class.
type Label struct {
	Filename   string
	Class      string
	StartFrame int
	EndFrame   int
}

// the first frames after a segment boundary are unreliable, so continuation
// rows start no later than frame 4 (earlier when the leftover is shorter)
const continuationStartCap = 4

// AlignEvent computes the label rows for a single event. The owning segment
// gets the primary row; if the event outlasts that segment, the remainder is
// split across subsequent segments in timeline order.
func AlignEvent(ev timeline.Event, segments *timeline.SegmentTimeline, fps int) ([]Label, error) {
	idx, ok := segments.OwnerIndex(ev.StartTime)
	if !ok {
		return nil, fmt.Errorf("%w: %s event at %d starts before first segment at %d",
			ErrUnalignedEvent, ev.Class, ev.StartTime, segments.At(0).StartTime)
	}

	owner := segments.At(idx)
	primary := Label{
		Filename:   owner.Filename,
		Class:      ev.Class,
		StartFrame: int(ev.StartTime-owner.StartTime) * fps,
	}

	if ev.EndTime <= owner.EndTime {
		primary.EndFrame = int(ev.EndTime-owner.StartTime) * fps
		return []Label{primary}, nil
	}

	// The event overflows its owning segment. The primary row is pulled back
	// one second so the end frame never lands past the last decodable frame.
	primary.EndFrame = int(owner.Duration-1) * fps
	labels := []Label{primary}

	leftover := ev.EndTime - owner.EndTime
	for i := idx + 1; leftover > 0; i++ {
		if i >= segments.Len() {
			return nil, fmt.Errorf("%w: %s event ending at %d overruns by %ds",
				ErrSegmentExhausted, ev.Class, ev.EndTime, leftover)
		}
		seg := segments.At(i)

		start := int64(continuationStartCap)
		if f := leftover * int64(fps); f < start {
			start = f
		}
		row := Label{
			Filename:   seg.Filename,
			Class:      ev.Class,
			StartFrame: int(start),
		}

		if leftover < seg.Duration {
			row.EndFrame = int(leftover) * fps
			leftover = 0
		} else {
			row.EndFrame = int(seg.Duration) * fps
			leftover -= seg.Duration
		}
		labels = append(labels, row)
	}

	return labels, nil
}

// AlignAll resolves every event against the segment timeline and assembles
// the full label table, stably sorted by filename.
func AlignAll(events *timeline.EventTimeline, segments *timeline.SegmentTimeline, fps int) ([]Label, error) {
	var labels []Label
	for _, ev := range events.Events() {
		rows, err := AlignEvent(ev, segments, fps)
		if err != nil {
			return nil, err
		}
		labels = append(labels, rows...)
	}

	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Filename < labels[j].Filename
	})

	return labels, nil
}
