package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cylsum/internal/dsm"
	"github.com/san-kum/cylsum/internal/powervector"
	"github.com/san-kum/cylsum/internal/validate"
)

func status(c validate.Check) string {
	switch {
	case c.Trials == 0:
		return StatusSkip.Render("SKIP")
	case c.Passed():
		return StatusPass.Render("PASS")
	default:
		return StatusFail.Render("FAIL")
	}
}

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

func renderCheck(c validate.Check) string {
	lines := []string{
		Title.Render(c.Name) + "  " + status(c),
		row("max", fmt.Sprintf("%.2e", c.MaxAbs)),
		row("mean", fmt.Sprintf("%.2e", c.MeanAbs)),
		row("p95", fmt.Sprintf("%.2e", c.P95)),
		row("tolerance", fmt.Sprintf("%.0e", c.Tolerance)),
		row("trials", fmt.Sprintf("%d (%d skipped)", c.Trials, c.Skipped)),
	}
	if c.Name == validate.CheckCorollary {
		lines = append(lines, row("max relative", fmt.Sprintf("%.2e", c.MaxRelative)))
	}
	if c.Name == validate.CheckSensitivity {
		lines = append(lines, row("over bound", fmt.Sprintf("%d", c.BoundViolations)))
	}
	if len(c.Samples) > 0 {
		lines = append(lines, row("samples", Sparkline(c.Samples, 24)))
	}
	return strings.Join(lines, "\n")
}

// RenderReport draws the three checks side by side.
func RenderReport(r *validate.Report) string {
	cols := make([]string, 0, 3)
	for _, c := range r.Checks() {
		cols = append(cols, Panel.Render(renderCheck(c)))
	}

	header := Title.Render(fmt.Sprintf("DSM validation  seed %d", r.Seed)) +
		Subtle.Render(fmt.Sprintf("  %v", r.Elapsed.Round(time.Millisecond)))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
	)
}

// RenderEnsemble lists the maxima of every seed followed by the worst case.
func RenderEnsemble(res *validate.EnsembleResult) string {
	var sb strings.Builder
	sb.WriteString(Title.Render(fmt.Sprintf("%-8s  %-10s  %-10s  %-10s", "seed", "summation", "sensitivity", "corollary")))
	sb.WriteString("\n")
	for _, r := range res.Reports {
		fmt.Fprintf(&sb, "%-8d  %-10.2e  %-11.2e  %-10.2e\n",
			r.Seed, r.Summation.MaxAbs, r.Sensitivity.MaxAbs, r.Corollary.MaxAbs)
	}
	sb.WriteString(Separator(46))
	sb.WriteString("\n")
	sb.WriteString(RenderReport(&res.Worst))
	return sb.String()
}

// RenderResultant shows a cylinder set, its DSM resultant and the
// power-vector reference.
func RenderResultant(set dsm.Set, r dsm.Resultant) string {
	var sb strings.Builder
	for i, c := range set {
		fmt.Fprintf(&sb, "%s%+.2f x %.1f\n", MetricLabel.Render(fmt.Sprintf("component %d", i)), c.Power, c.Axis)
	}
	sb.WriteString(Separator(32))
	sb.WriteString("\n")

	mc := r.MinusCylinder()
	pv := powervector.FromSet(set)
	sb.WriteString(row("magnitude", fmt.Sprintf("%.6f", r.Magnitude)) + "\n")
	sb.WriteString(row("angle", fmt.Sprintf("%.6f", r.Angle)) + "\n")
	sb.WriteString(row("axis", fmt.Sprintf("%.6f", r.Axis())) + "\n")
	sb.WriteString(row("minus cyl", fmt.Sprintf("%+.4f x %.2f", mc.Power, mc.Axis)) + "\n")
	sb.WriteString(row("J0 / J45", fmt.Sprintf("%+.6f / %+.6f", pv.J0, pv.J45)) + "\n")
	sb.WriteString(row("reference", fmt.Sprintf("%.6f", pv.Magnitude())))
	return Panel.Render(sb.String())
}
