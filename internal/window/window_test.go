package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keycast/internal/keylog"
)

func loginEvents() []keylog.Event {
	return []keylog.Event{
		{TimeMs: 100, Key: "L"},
		{TimeMs: 200, Key: "O"},
		{TimeMs: 300, Key: "G"},
		{TimeMs: 1500, Key: "I"},
		{TimeMs: 1600, Key: "N"},
	}
}

func TestGenerateSessions(t *testing.T) {
	windows := Generate(loginEvents(), Options{InactivityMs: 1000, MaxVisible: 10})
	require.Len(t, windows, 5)

	want := []Window{
		{First: 0, Last: 0, UntilMs: 200},
		{First: 0, Last: 1, UntilMs: 300},
		// gap to the next event is 1200 > 1000, so the window runs the
		// full threshold and the session ends
		{First: 0, Last: 2, UntilMs: 1300},
		{First: 3, Last: 3, UntilMs: 1600},
		// no later event, extends 1000ms past its own keypress
		{First: 3, Last: 4, UntilMs: 2600},
	}
	assert.Equal(t, want, windows)
}

func TestGenerateTruncation(t *testing.T) {
	windows := Generate(loginEvents(), Options{InactivityMs: 1000, MaxVisible: 2})
	require.Len(t, windows, 5)

	third := windows[2]
	assert.Equal(t, 1, third.First)
	assert.Equal(t, 2, third.Last)
	assert.True(t, third.Truncated)

	// second window fills the cap exactly without truncating
	assert.Equal(t, 0, windows[1].First)
	assert.False(t, windows[1].Truncated)

	// fresh session is not truncated even at the cap
	assert.Equal(t, 3, windows[4].First)
	assert.False(t, windows[4].Truncated)
}

func TestGenerateGapEqualToThresholdStaysActive(t *testing.T) {
	events := []keylog.Event{
		{TimeMs: 0, Key: "a"},
		{TimeMs: 1000, Key: "b"},
	}

	windows := Generate(events, Options{InactivityMs: 1000, MaxVisible: 10})
	require.Len(t, windows, 2)

	// the boundary gap merges: first window ends exactly at the second
	// event and the session continues
	assert.Equal(t, int64(1000), windows[0].UntilMs)
	assert.Equal(t, 0, windows[1].First)
}

func TestGenerateClampsMaxVisible(t *testing.T) {
	events := loginEvents()

	for _, maxVisible := range []int{0, -3} {
		windows := Generate(events, Options{InactivityMs: 1000, MaxVisible: maxVisible})
		require.Len(t, windows, len(events))
		for _, win := range windows {
			assert.Equal(t, win.Last, win.First, "clamped cap shows one key")
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	events := []keylog.Event{
		{TimeMs: 0, Key: "a"},
		{TimeMs: 50, Key: "b"},
		{TimeMs: 60, Key: "c"},
		{TimeMs: 400, Key: "d"},
		{TimeMs: 400, Key: "e"},
		{TimeMs: 2000, Key: "f"},
		{TimeMs: 2100, Key: "g"},
		{TimeMs: 2150, Key: "h"},
		{TimeMs: 9000, Key: "i"},
	}
	opts := Options{InactivityMs: 300, MaxVisible: 3}

	windows := Generate(events, opts)
	require.Len(t, windows, len(events))

	sessionStart := 0
	for i, win := range windows {
		assert.Equal(t, i, win.Last, "one window per event, in order")
		assert.LessOrEqual(t, win.First, win.Last)
		assert.GreaterOrEqual(t, win.UntilMs, events[win.Last].TimeMs,
			"window never ends before its own event")
		assert.Equal(t, win.First > sessionStart, win.Truncated)

		if i > 0 {
			assert.GreaterOrEqual(t, events[win.Last].TimeMs,
				events[windows[i-1].Last].TimeMs,
				"non-decreasing start order")
		}

		if i+1 < len(events) &&
			events[i+1].TimeMs-events[i].TimeMs <= opts.InactivityMs {
			assert.Equal(t, events[i+1].TimeMs, win.UntilMs,
				"superseded window leaves no coverage gap")
		} else {
			sessionStart = i + 1
		}
	}
}

func TestGenerateIsRepeatable(t *testing.T) {
	events := loginEvents()
	opts := Options{InactivityMs: 1000, MaxVisible: 2}

	first := Generate(events, opts)
	second := Generate(events, opts)

	assert.Equal(t, first, second)
}
