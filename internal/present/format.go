// Package present turns structured router responses into human-facing
// text, Markdown, and HTML. The router itself never builds display
// strings; everything user-visible lives here.
package present

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/skyrouteai/skyroute/internal/extract"
	"github.com/skyrouteai/skyroute/internal/intent"
	"github.com/skyrouteai/skyroute/internal/router"
)

// Text renders a response as plain conversational text for the terminal.
func Text(resp *router.Response) string {
	if resp.Err != nil {
		return resp.Err.Message
	}
	switch resp.Intent {
	case intent.FlightStatus:
		return statusText(resp)
	case intent.FareAnalytics:
		return analyticsText(resp)
	}
	return "I'm not sure how to answer that."
}

func statusText(resp *router.Response) string {
	rec := resp.Status
	var b strings.Builder

	fmt.Fprintf(&b, "✈️  Flight %s", rec.FlightNumber)
	if rec.Airline != nil {
		fmt.Fprintf(&b, " (%s)", *rec.Airline)
	}
	if rec.Status != nil {
		fmt.Fprintf(&b, " — %s", *rec.Status)
	}
	b.WriteString("\n")

	if rec.DepartureAirport != nil {
		fmt.Fprintf(&b, "  Departure: %s", *rec.DepartureAirport)
		if rec.DepartureGate != nil {
			fmt.Fprintf(&b, ", gate %s", *rec.DepartureGate)
		}
		b.WriteString("\n")
	}
	writeTimes(&b, "  Scheduled out", rec.DepartureScheduled, "actual", rec.DepartureActual)
	if rec.ArrivalAirport != nil {
		fmt.Fprintf(&b, "  Arrival: %s", *rec.ArrivalAirport)
		if rec.ArrivalGate != nil {
			fmt.Fprintf(&b, ", gate %s", *rec.ArrivalGate)
		}
		b.WriteString("\n")
	}
	writeTimes(&b, "  Scheduled in", rec.ArrivalScheduled, "estimated", rec.ArrivalEstimated)

	return strings.TrimRight(b.String(), "\n")
}

func writeTimes(b *strings.Builder, label string, scheduled *time.Time, altLabel string, alt *time.Time) {
	if scheduled == nil && alt == nil {
		return
	}
	b.WriteString(label + ":")
	if scheduled != nil {
		fmt.Fprintf(b, " %s", scheduled.Format("Mon 15:04 MST"))
	}
	if alt != nil {
		fmt.Fprintf(b, " (%s %s)", altLabel, alt.Format("15:04"))
	}
	b.WriteString("\n")
}

func analyticsText(resp *router.Response) string {
	var b strings.Builder
	route := routeLabel(resp.Params)

	if len(resp.Airlines) > 0 {
		fmt.Fprintf(&b, "🏆 On-time ranking %s:\n", route)
		for i, a := range resp.Airlines {
			name := a.CarrierName
			if name == "" {
				name = a.CarrierCode
			}
			fmt.Fprintf(&b, "  %d. %s — %.1f%% on time (avg arrival delay %.1f min, %d flights)\n",
				i+1, name, a.OnTimePct, a.AvgArrivalDelay, a.FlightCount)
		}
	}
	if len(resp.Days) > 0 {
		fmt.Fprintf(&b, "📅 Delays by day of week %s (best day first):\n", route)
		for _, d := range resp.Days {
			fmt.Fprintf(&b, "  %-9s avg delay %.1f min, %.1f%% on time (%d flights)\n",
				d.DayOfWeek, d.AvgOverallDelay, d.OnTimePct, d.FlightCount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func routeLabel(p extract.Params) string {
	if !p.HasRoute() {
		return ""
	}
	label := fmt.Sprintf("for %s → %s", *p.Origin, *p.Destination)
	if p.Year != nil {
		label += fmt.Sprintf(" in %d", *p.Year)
	}
	return label
}

// Markdown renders a response as GitHub-flavored Markdown, with result
// tables for analytics payloads.
func Markdown(resp *router.Response) string {
	if resp.Err != nil {
		return fmt.Sprintf("> ⚠️ %s", resp.Err.Message)
	}
	switch resp.Intent {
	case intent.FlightStatus:
		return statusMarkdown(resp)
	case intent.FareAnalytics:
		return analyticsMarkdown(resp)
	}
	return "I'm not sure how to answer that."
}

func statusMarkdown(resp *router.Response) string {
	rec := resp.Status
	var b strings.Builder

	fmt.Fprintf(&b, "## ✈️ Flight %s\n\n", rec.FlightNumber)
	rows := [][2]string{
		{"Airline", strOr(rec.Airline)},
		{"Status", strOr(rec.Status)},
		{"Departure", strOr(rec.DepartureAirport)},
		{"Departure gate", strOr(rec.DepartureGate)},
		{"Scheduled out", timeOr(rec.DepartureScheduled)},
		{"Actual out", timeOr(rec.DepartureActual)},
		{"Arrival", strOr(rec.ArrivalAirport)},
		{"Arrival gate", strOr(rec.ArrivalGate)},
		{"Scheduled in", timeOr(rec.ArrivalScheduled)},
		{"Estimated in", timeOr(rec.ArrivalEstimated)},
	}
	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func analyticsMarkdown(resp *router.Response) string {
	var b strings.Builder
	route := routeLabel(resp.Params)

	if len(resp.Airlines) > 0 {
		fmt.Fprintf(&b, "## 🏆 On-time ranking %s\n\n", route)
		b.WriteString("| # | Airline | On-time % | Avg arr delay (min) | Flights |\n|---|---|---|---|---|\n")
		for i, a := range resp.Airlines {
			name := a.CarrierName
			if name == "" {
				name = a.CarrierCode
			}
			fmt.Fprintf(&b, "| %d | %s | %.1f | %.1f | %d |\n",
				i+1, name, a.OnTimePct, a.AvgArrivalDelay, a.FlightCount)
		}
	}
	if len(resp.Days) > 0 {
		fmt.Fprintf(&b, "## 📅 Delays by day %s\n\n", route)
		b.WriteString("| Day | Avg delay (min) | On-time % | Flights |\n|---|---|---|---|\n")
		for _, d := range resp.Days {
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %d |\n",
				d.DayOfWeek, d.AvgOverallDelay, d.OnTimePct, d.FlightCount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTML renders the Markdown form of a response to an HTML fragment.
func HTML(resp *router.Response) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(Markdown(resp)), &buf); err != nil {
		return "", fmt.Errorf("rendering response HTML: %w", err)
	}
	return buf.String(), nil
}

func strOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04 MST")
}
