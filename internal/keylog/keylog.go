package keylog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// single recorded keypress
type Event struct {
	TimeMs int64
	Key    string
}

// wire form of an event; the pointer timestamp makes a missing
// field distinguishable from zero
type rawEvent struct {
	TimeMs *int64 `json:"time_ms"`
	Key    string `json:"key"`
}

// reads and validates a JSON keypress log
func Load(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keylog: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Parse(file)
}

// Parse decodes a JSON array of {"time_ms", "key"} records and validates
// the sequence: it must be non-empty, every timestamp present and
// non-negative, and timestamps non-decreasing.
func Parse(r io.Reader) ([]Event, error) {
	var raw []rawEvent
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode keylog: %w", err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("keylog contains no events")
	}

	events := make([]Event, len(raw))
	for i, rec := range raw {
		if rec.TimeMs == nil {
			return nil, fmt.Errorf("event %d: missing time_ms", i)
		}
		if *rec.TimeMs < 0 {
			return nil, fmt.Errorf(
				"event %d: negative timestamp %d",
				i,
				*rec.TimeMs,
			)
		}
		if i > 0 && *rec.TimeMs < events[i-1].TimeMs {
			return nil, fmt.Errorf(
				"event %d: timestamp %d precedes previous timestamp %d",
				i,
				*rec.TimeMs,
				events[i-1].TimeMs,
			)
		}
		events[i] = Event{TimeMs: *rec.TimeMs, Key: rec.Key}
	}

	return events, nil
}
