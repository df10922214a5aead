// Package window turns an ordered keypress sequence into the display
// windows that drive the caption track.
package window

import (
	"keycast/internal/keylog"
)

// Options control window generation.
type Options struct {
	// InactivityMs is the idle gap after which a caption disappears.
	InactivityMs int64
	// MaxVisible caps how many keys a window shows at once. Values
	// below 1 are treated as 1.
	MaxVisible int
}

// Window is the visibility span for one keypress. First and Last index a
// contiguous range into the event slice; the event at Last is the key
// that completed the window and is rendered highlighted. Truncated marks
// that older keys were dropped to honor the visible cap.
type Window struct {
	First     int
	Last      int
	UntilMs   int64
	Truncated bool
}

// Generate emits one window per event, in event order. A session runs
// while the gap to the next event stays within the inactivity threshold
// (inclusive, so a gap equal to the threshold keeps the session alive);
// a larger gap ends the window at the event time plus the threshold and
// the next event starts a fresh session. The pass is pure: calling it
// again on the same input yields the same windows.
func Generate(events []keylog.Event, opts Options) []Window {
	maxVisible := opts.MaxVisible
	if maxVisible < 1 {
		maxVisible = 1
	}

	windows := make([]Window, 0, len(events))
	sessionStart := 0

	for i, ev := range events {
		first := i - maxVisible + 1
		truncated := first > sessionStart
		if !truncated {
			first = sessionStart
		}

		until := ev.TimeMs + opts.InactivityMs
		if i+1 < len(events) && events[i+1].TimeMs-ev.TimeMs <= opts.InactivityMs {
			// superseded by the next keypress, no gap in coverage
			until = events[i+1].TimeMs
		} else {
			sessionStart = i + 1
		}

		windows = append(windows, Window{
			First:     first,
			Last:      i,
			UntilMs:   until,
			Truncated: truncated,
		})
	}

	return windows
}
