// Package svg renders a built schedule as a standalone Gantt-style SVG
// document. It is a pure consumer of schedule.Interval values: intervals in,
// bytes out, file handling stays with the caller.
package svg

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"batchplan/internal/catalog"
	"batchplan/internal/schedule"
)

// Render draws one bar per interval, grouped into rows: step rows first in
// declared order, then resource rows sorted by id. Bar color comes from the
// interval's Kind tag, never from parsing its label. Output is deterministic
// for identical inputs.
func Render(plan *catalog.Plan, intervals []schedule.Interval, title string, theme Theme) []byte {
	th := theme.normalize()

	rows := rowOrder(plan, intervals)
	rowIndex := make(map[string]int, len(rows))
	for i, r := range rows {
		rowIndex[r] = i
	}

	totalHours := hoursCeil(schedule.Makespan(intervals))
	if totalHours < 1 {
		totalHours = 1
	}
	plotW := th.Width - th.MarginLeft - th.MarginRight
	plotH := len(rows) * th.RowHeight
	height := th.MarginTop + plotH + th.MarginBottom
	pxPerHour := float64(plotW) / float64(totalHours)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		th.Width, height, th.Width, height)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", th.Width, height, th.Background)

	if title != "" {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="%s" font-size="%d" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`+"\n",
			th.Width/2, th.MarginTop/2+th.FontSize/2, th.FontFamily, th.FontSize+4, th.Text, escape(title))
	}

	// Hour grid and axis labels.
	tick := tickStep(totalHours)
	for h := 0; h <= totalHours; h += tick {
		x := th.MarginLeft + int(float64(h)*pxPerHour)
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, th.MarginTop, x, th.MarginTop+plotH, th.Grid)
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">%d</text>`+"\n",
			x, th.MarginTop+plotH+th.FontSize+6, th.FontFamily, th.FontSize, th.Text, h)
	}
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">Time (hours)</text>`+"\n",
		th.MarginLeft+plotW/2, th.MarginTop+plotH+2*(th.FontSize+6), th.FontFamily, th.FontSize, th.Text)

	// Row labels and separators.
	for i, r := range rows {
		y := th.MarginTop + i*th.RowHeight
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="end">%s</text>`+"\n",
			th.MarginLeft-8, y+th.RowHeight/2+th.FontSize/2-1, th.FontFamily, th.FontSize, th.Text, escape(r))
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			th.MarginLeft, y, th.MarginLeft+plotW, y, th.Grid)
	}

	// Bars.
	for _, iv := range intervals {
		ri, ok := rowIndex[iv.Row]
		if !ok {
			continue
		}
		x := float64(th.MarginLeft) + iv.Start.Hours()*pxPerHour
		w := iv.Duration().Hours() * pxPerHour
		y := th.MarginTop + ri*th.RowHeight + (th.RowHeight-th.BarHeight)/2
		fmt.Fprintf(&b, `<rect x="%.2f" y="%d" width="%.2f" height="%d" fill="%s" stroke="%s" stroke-width="1">`,
			x, y, w, th.BarHeight, th.fill(iv.Kind), th.Text)
		fmt.Fprintf(&b, `<title>%s [%.2fh, %.2fh]</title></rect>`+"\n",
			escape(iv.Label), iv.Start.Hours(), iv.End.Hours())
	}

	writeLegend(&b, th, plotH)

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// rowOrder lists chart rows: plan steps in declared order, then every
// resource that actually appears in the schedule, sorted by id.
func rowOrder(plan *catalog.Plan, intervals []schedule.Interval) []string {
	rows := make([]string, 0, len(plan.Steps)+len(plan.Resources))
	seen := make(map[string]bool, cap(rows))
	for _, s := range plan.Steps {
		rows = append(rows, s.ID)
		seen[s.ID] = true
	}

	resources := make([]string, 0, len(plan.Resources))
	for _, iv := range intervals {
		if iv.Kind == schedule.KindResourceCleaning && !seen[iv.Row] {
			resources = append(resources, iv.Row)
			seen[iv.Row] = true
		}
	}
	sort.Strings(resources)
	return append(rows, resources...)
}

func writeLegend(b *strings.Builder, th Theme, plotH int) {
	entries := []struct {
		kind schedule.Kind
		name string
	}{
		{schedule.KindSetup, "Setup"},
		{schedule.KindOperation, "Operation"},
		{schedule.KindCleaning, "Cleaning"},
		{schedule.KindResourceCleaning, "Resource Cleaning"},
	}

	x := th.MarginLeft
	y := th.MarginTop + plotH + 3*(th.FontSize+6)
	for _, e := range entries {
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			x, y-th.FontSize, th.FontSize, th.FontSize, th.fill(e.kind), th.Text)
		fmt.Fprintf(b, `<text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s">%s</text>`+"\n",
			x+th.FontSize+6, y-1, th.FontFamily, th.FontSize, th.Text, e.name)
		x += th.FontSize + 6 + 8*len(e.name) + 24
	}
}

func tickStep(totalHours int) int {
	// Aim for roughly a dozen labeled ticks regardless of span.
	step := totalHours / 12
	if step < 1 {
		return 1
	}
	for _, nice := range []int{1, 2, 4, 6, 12, 24, 48, 96} {
		if step <= nice {
			return nice
		}
	}
	return ((step + 23) / 24) * 24
}

func hoursCeil(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Hour - 1) / time.Hour)
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
