package keys

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Policy selects how raw key labels are rewritten for display.
type Policy int

const (
	// Vim-style notation: Ctrl+C becomes <C-C>, bare characters stay bare.
	PolicyCompact Policy = iota
	// Symbol notation: Ctrl+Backspace becomes ^⌫.
	PolicyIcon
)

// ParsePolicy resolves a policy identifier from config or flags.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact":
		return PolicyCompact, nil
	case "icon":
		return PolicyIcon, nil
	default:
		return 0, fmt.Errorf("unknown key policy %q: use compact or icon", s)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyIcon:
		return "icon"
	default:
		return "compact"
	}
}

var compactNames = map[string]string{
	"Backspace": "BS",
	"Ctrl":      "C",
	"Control":   "C",
	"Escape":    "Esc",
	"Enter":     "CR",
	"Return":    "CR",
	"Tab":       "Tab",
	"Space":     "Space",
	"Shift":     "S",
	"Alt":       "A",
	"Option":    "A",
	"Meta":      "M",
	"Cmd":       "M",
	"Super":     "M",
	"Delete":    "Del",
	"Insert":    "Ins",
	"Home":      "Home",
	"End":       "End",
	"PageUp":    "PgUp",
	"PageDown":  "PgDn",
	"Left":      "Left",
	"Right":     "Right",
	"Up":        "Up",
	"Down":      "Down",
}

var iconNames = map[string]string{
	"Backspace": "⌫",
	"Ctrl":      "^",
	"Control":   "^",
	"Escape":    "⎋",
	"Enter":     "⏎",
	"Return":    "⏎",
	"Tab":       "⇥",
	"Space":     "␣",
	"Shift":     "⇧",
	"Alt":       "⌥",
	"Option":    "⌥",
	"Meta":      "⌘",
	"Cmd":       "⌘",
	"Super":     "⌘",
	"Delete":    "⌦",
	"Left":      "←",
	"Right":     "→",
	"Up":        "↑",
	"Down":      "↓",
}

// Normalize rewrites a raw key label, which may be a +-joined modifier
// combination, into its display form under the given policy. Labels not
// covered by a lookup table pass through unchanged.
func Normalize(policy Policy, key string) string {
	switch policy {
	case PolicyIcon:
		return normalizeIcon(key)
	default:
		return normalizeCompact(key)
	}
}

func normalizeCompact(key string) string {
	parts := strings.Split(key, "+")
	for i, part := range parts {
		if name, ok := compactNames[part]; ok {
			parts[i] = name
		}
	}

	if len(parts) == 1 && utf8.RuneCountInString(parts[0]) == 1 {
		return parts[0]
	}

	return "<" + strings.Join(parts, "-") + ">"
}

func normalizeIcon(key string) string {
	parts := strings.Split(key, "+")

	var sb strings.Builder
	for _, part := range parts {
		if name, ok := iconNames[part]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteString(part)
		}
	}

	return sb.String()
}
