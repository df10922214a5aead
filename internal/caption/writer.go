package caption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer renders a complete ASS document for a caption track. The header
// fields come from configuration and the probed video dimensions; the
// BackAlpha byte carries the inverse opacity of the box behind the text.
type Writer struct {
	Title     string
	FontName  string
	FontSize  int
	BackAlpha string
	Alignment int
	MarginV   int
	Width     int
	Height    int
}

const styleName = "Keycast"

// renders the full subtitle document
func (w *Writer) Render(lines []Line) string {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", w.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", w.Width))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n", w.Height))
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section; BorderStyle 3 draws the opaque box the alpha
	// applies to
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf(
		"Style: %s,%s,%d,&H00FFFFFF,&H000000FF,&H%s000000,&H%s000000,0,0,0,0,100,100,0,0,3,2,0,%d,10,10,%d,1\n\n",
		styleName, w.FontName, w.FontSize, w.BackAlpha, w.BackAlpha,
		w.Alignment, w.MarginV,
	))

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, line := range lines {
		sb.WriteString(fmt.Sprintf(
			"Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			FormatTime(line.StartMs),
			FormatTime(line.EndMs),
			styleName,
			line.Text,
		))
	}

	return sb.String()
}

// writes the document to disk, creating parent directories as needed
func (w *Writer) WriteFile(lines []Line, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(w.Render(lines)), 0644); err != nil {
		return fmt.Errorf("failed to write ASS file: %w", err)
	}

	return nil
}
