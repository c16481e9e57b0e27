package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/cylsum/internal/sweep"
)

// CurveOptions controls how a sweep is drawn.
type CurveOptions struct {
	Width       int
	Height      int
	StrokeColor string
	// LogY plots log10 of the error, which is usually what a sweep needs.
	LogY bool
	// Tolerance draws a dashed horizontal line when positive.
	Tolerance float64
}

func DefaultCurveOptions() CurveOptions {
	return CurveOptions{Width: 640, Height: 360, StrokeColor: "#00ff88", LogY: true}
}

const minPlottable = 1e-18

// CurveToSVG draws the worst error of each sweep point against its grid
// value.
func CurveToSVG(points []sweep.Point, opts CurveOptions) string {
	if len(points) < 2 {
		return ""
	}

	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.MaxAbs
		if opts.LogY {
			ys[i] = math.Log10(math.Max(p.MaxAbs, minPlottable))
		}
	}

	tolY := opts.Tolerance
	if opts.LogY && tolY > 0 {
		tolY = math.Log10(tolY)
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := ys[0], ys[0]
	for i, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if opts.Tolerance > 0 {
		minY, maxY = math.Min(minY, tolY), math.Max(maxY, tolY)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	w, h := float64(opts.Width), float64(opts.Height)
	px := func(x float64) float64 { return (x - minX) / rangeX * w }
	py := func(y float64) float64 { return h - (y-minY)/rangeY*h }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height))

	if opts.Tolerance > 0 {
		y := py(tolY)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#ff4444" stroke-dasharray="6,4"/>
`, y, opts.Width, y))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.StrokeColor))
	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(p.X), py(ys[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(p.X), py(ys[i])))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteCurve renders the sweep and writes it to path.
func WriteCurve(path string, points []sweep.Point, opts CurveOptions) error {
	svg := CurveToSVG(points, opts)
	if svg == "" {
		return fmt.Errorf("export: need at least two points, got %d", len(points))
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
