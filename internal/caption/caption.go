// Package caption renders key display windows as ASS subtitle events.
package caption

import (
	"fmt"
	"math"
	"strings"

	"keycast/internal/keylog"
	"keycast/internal/window"
)

// Ellipsis marks dropped keys at the head of a truncated window.
const Ellipsis = "…"

var assEscaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
)

// Escape protects characters that ASS treats as override-block syntax so
// literal key glyphs render as-is.
func Escape(text string) string {
	return assEscaper.Replace(text)
}

// Text builds the visible line for one window: older keys space-joined,
// an ellipsis when truncated, and the just-pressed key wrapped in a color
// override so it stands out. highlightColor is in BBGGRR order.
func Text(labels []string, truncated bool, highlightColor string) string {
	if len(labels) == 0 {
		return ""
	}

	parts := make([]string, 0, len(labels)+1)
	if truncated {
		parts = append(parts, Ellipsis)
	}
	for _, label := range labels[:len(labels)-1] {
		parts = append(parts, Escape(label))
	}
	parts = append(parts, fmt.Sprintf(
		"{\\c&H%s&}%s{\\r}",
		highlightColor,
		Escape(labels[len(labels)-1]),
	))

	return strings.Join(parts, " ")
}

// Line is one timed caption.
type Line struct {
	StartMs int64
	EndMs   int64
	Text    string
}

// Lines converts windows over already-normalized events into timed
// captions. Each caption starts at its completing keypress and ends
// where the window closes.
func Lines(
	events []keylog.Event,
	windows []window.Window,
	highlightColor string,
) []Line {
	lines := make([]Line, 0, len(windows))

	for _, win := range windows {
		labels := make([]string, 0, win.Last-win.First+1)
		for i := win.First; i <= win.Last; i++ {
			labels = append(labels, events[i].Key)
		}

		lines = append(lines, Line{
			StartMs: events[win.Last].TimeMs,
			EndMs:   win.UntilMs,
			Text:    Text(labels, win.Truncated, highlightColor),
		})
	}

	return lines
}

// FormatTime renders a millisecond count as an ASS H:MM:SS.CC timestamp.
// Centiseconds are truncated, not rounded.
func FormatTime(ms int64) string {
	hours := ms / 3600000
	minutes := ms % 3600000 / 60000
	seconds := ms % 60000 / 1000
	centis := ms % 1000 / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// AlphaHex converts a 0-1 opacity into the two-digit ASS alpha byte. ASS
// stores transparency, so opacity 1 maps to 00 and opacity 0 to FF.
func AlphaHex(opacity float64) string {
	alpha := int(math.Round((1 - opacity) * 255))
	return fmt.Sprintf("%02X", alpha)
}

// ReverseColor reorders a 6-hex-digit RRGGBB color into the BBGGRR
// component order ASS expects.
func ReverseColor(rrggbb string) (string, error) {
	if len(rrggbb) != 6 {
		return "", fmt.Errorf(
			"color must be exactly 6 hex digits, got %q",
			rrggbb,
		)
	}
	for _, r := range rrggbb {
		if !isHexDigit(r) {
			return "", fmt.Errorf(
				"color must be exactly 6 hex digits, got %q",
				rrggbb,
			)
		}
	}

	return rrggbb[4:6] + rrggbb[2:4] + rrggbb[0:2], nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}
