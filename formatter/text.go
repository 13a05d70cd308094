package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/planner"
	"github.com/theoremus-urban-solutions/transit-planner/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b4befe"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	metroStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true)
	busStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	routeStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(0, 1)
)

func modeBadge(m graph.Mode) string {
	if m == graph.Metro {
		return metroStyle.Render(m.String())
	}
	return busStyle.Render(m.String())
}

// RenderText renders a response for a terminal
func RenderText(res *planner.RouteResponse) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s → %s", res.Source, res.Destination)))
	b.WriteString("\n")

	switch res.Status {
	case planner.StatusError:
		b.WriteString(errorStyle.Render(res.Message))
		b.WriteString("\n")
		return b.String()
	case planner.StatusNoRoutes:
		b.WriteString(hintStyle.Render(res.Message))
		b.WriteString("\n")
		return b.String()
	}

	if len(res.DirectRoutes) > 0 {
		b.WriteString(sectionStyle.Render("Direct routes"))
		b.WriteString("\n")
		for _, r := range res.DirectRoutes {
			fmt.Fprintf(&b, "  %s %s %s\n", modeBadge(r.Type), r.Details,
				hintStyle.Render(utils.PresentableDistance(r.Distance)))
		}
	}
	if len(res.CombinedRoutes) > 0 {
		b.WriteString(sectionStyle.Render("Routes with transfers"))
		b.WriteString("\n")
		for i, r := range res.CombinedRoutes {
			b.WriteString(routeStyle.Render(renderCombined(i+1, r)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCombined(n int, r planner.CombinedRoute) string {
	lines := make([]string, 0, len(r.Legs)+1)
	lines = append(lines, fmt.Sprintf("#%d  %d legs, %d stops, %s", n, r.TotalSteps, r.TotalStops,
		utils.PresentableDistance(r.Distance)))
	for _, l := range r.Legs {
		lines = append(lines, fmt.Sprintf("%s %s -> %s (%s, %d stops)",
			modeBadge(l.TransportMode), l.From, l.To, strings.Join(l.Options, ", "), l.StopsCount))
	}
	return strings.Join(lines, "\n")
}
