package svg

import "batchplan/internal/schedule"

// Theme controls chart geometry and colors. Zero values fall back to
// DefaultTheme via normalize().
type Theme struct {
	Width     int // total SVG width in pixels
	RowHeight int
	BarHeight int

	MarginTop    int // room for the title
	MarginBottom int // room for axis labels + legend
	MarginLeft   int // room for row labels
	MarginRight  int

	FontFamily string
	FontSize   int

	Background string
	Text       string
	Grid       string

	// Fill colors keyed by interval kind; the palette follows the plant's
	// traditional chart colors.
	SetupFill            string
	OperationFill        string
	CleaningFill         string
	ResourceCleaningFill string
}

// DefaultTheme matches the historical chart palette: lightblue setup,
// lightgreen operation, salmon cleaning, gray resource turnaround.
func DefaultTheme() Theme {
	return Theme{
		Width:        1400,
		RowHeight:    36,
		BarHeight:    26,
		MarginTop:    50,
		MarginBottom: 70,
		MarginLeft:   110,
		MarginRight:  30,

		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   12,

		Background: "#ffffff",
		Text:       "#1a1a1a",
		Grid:       "#d9d9d9",

		SetupFill:            "#add8e6",
		OperationFill:        "#90ee90",
		CleaningFill:         "#fa8072",
		ResourceCleaningFill: "#9e9e9e",
	}
}

func (t Theme) normalize() Theme {
	def := DefaultTheme()
	if t.Width <= 0 {
		t.Width = def.Width
	}
	if t.RowHeight <= 0 {
		t.RowHeight = def.RowHeight
	}
	if t.BarHeight <= 0 || t.BarHeight > t.RowHeight {
		t.BarHeight = min(def.BarHeight, t.RowHeight)
	}
	if t.MarginTop <= 0 {
		t.MarginTop = def.MarginTop
	}
	if t.MarginBottom <= 0 {
		t.MarginBottom = def.MarginBottom
	}
	if t.MarginLeft <= 0 {
		t.MarginLeft = def.MarginLeft
	}
	if t.MarginRight <= 0 {
		t.MarginRight = def.MarginRight
	}
	if t.FontFamily == "" {
		t.FontFamily = def.FontFamily
	}
	if t.FontSize <= 0 {
		t.FontSize = def.FontSize
	}
	if t.Background == "" {
		t.Background = def.Background
	}
	if t.Text == "" {
		t.Text = def.Text
	}
	if t.Grid == "" {
		t.Grid = def.Grid
	}
	if t.SetupFill == "" {
		t.SetupFill = def.SetupFill
	}
	if t.OperationFill == "" {
		t.OperationFill = def.OperationFill
	}
	if t.CleaningFill == "" {
		t.CleaningFill = def.CleaningFill
	}
	if t.ResourceCleaningFill == "" {
		t.ResourceCleaningFill = def.ResourceCleaningFill
	}
	return t
}

func (t Theme) fill(k schedule.Kind) string {
	switch k {
	case schedule.KindSetup:
		return t.SetupFill
	case schedule.KindOperation:
		return t.OperationFill
	case schedule.KindCleaning:
		return t.CleaningFill
	case schedule.KindResourceCleaning:
		return t.ResourceCleaningFill
	default:
		return t.Grid
	}
}
