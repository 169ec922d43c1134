package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cgalab/format-converter/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
	iconYes     = "yes"
	iconNo      = "-"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output path, indented under a status line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints conversion statistics on a single line.
func printStats(w io.Writer, s pipeline.Stats) {
	parts := []string{
		plural(s.Graphs, "graph"),
		plural(s.Vertices, "vertex"),
		plural(s.Edges, "edge"),
	}
	if s.DroppedLoops > 0 {
		parts = append(parts, plural(s.DroppedLoops, "dropped loop"))
	}
	parts = append(parts, fmt.Sprintf("%d bytes", s.Bytes))
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printResult prints the summary of one conversion.
func printResult(w io.Writer, res *pipeline.Result) {
	if res.Stats.Graphs == 0 {
		printWarning(w, "%s: no graphs", res.Input)
		return
	}
	printSuccess(w, "Converted %s", res.Input)
	for _, out := range res.Outputs {
		if out == pipeline.Stdio {
			out = "<stdout>"
		}
		printFile(w, out)
	}
	printStats(w, res.Stats)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	switch {
	case strings.HasSuffix(noun, "ex"):
		noun = strings.TrimSuffix(noun, "ex") + "ices"
	default:
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}

func yesNo(b bool) string {
	if b {
		return styleIconSuccess.Render(iconYes)
	}
	return StyleDim.Render(iconNo)
}
