package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/verletsim/internal/palette"
)

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

var (
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2).
			Width(38)

	// HUD status colours share the FPS thresholds' palette.
	SparkHigh = fg(palette.Good.Hex())
	SparkMid  = fg(palette.Warn.Hex())
	SparkLow  = fg(palette.Bad.Hex())

	StatusRunning   = SparkHigh.Bold(true)
	StatusPaused    = SparkMid.Bold(true)
	StatusRecording = SparkLow.Bold(true).Blink(true)

	Subtle      = fg("#6b7089")
	MetricLabel = fg("#8a8fa6").Width(11)
	MetricValue = fg(palette.Hex(1.5)).Bold(true)
	KeyHint     = Subtle.Italic(true)

	graphStyle = fg(palette.Hex(2.5))
)

// GradientText colours each rune of text along an HCL blend between two
// hex colours. Unparseable colours fall back to white.
func GradientText(text, startHex, endHex string) string {
	if len(text) == 0 {
		return ""
	}
	start := parseColor(startHex)
	end := parseColor(endHex)

	runes := []rune(text)
	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		hex := start.BlendHcl(end, t).Clamped().Hex()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(c)))
	}
	return result.String()
}

func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

// FPSText renders a frame rate in its HUD colour.
func FPSText(fps float64) string {
	hex := palette.FPS(fps).Hex()
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(fmt.Sprintf("%5.1f", fps))
}

// ProgressBar renders a fill level in [0,1]; fuller bars are greener.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return SparkLow.Render(bar)
	case percent > 0.4:
		return SparkMid.Render(bar)
	}
	return SparkHigh.Render(bar)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// sample to fit width
	step := max(len(values)/width, 1)

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}

	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
