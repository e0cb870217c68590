package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlays grouped by category, each with its key
// and an on/off marker.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a controls panel at (x, y).
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

var (
	toggleOn  = rl.Color{R: 110, G: 210, B: 140, A: 255}
	toggleOff = rl.Color{R: 70, G: 80, B: 90, A: 255}
	keyColor  = rl.Color{R: 150, G: 160, B: 170, A: 255}
)

// Draw renders the list when OverlayControls is on and returns the Y below
// it, or the panel's own Y when hidden.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !overlays.IsEnabled(OverlayControls) {
		return c.y
	}

	r := c.renderer
	pad, line := r.Theme.Padding, r.Theme.LineHeight

	groups := make([][]OverlayDescriptor, 0, 2)
	cats := overlays.Categories()
	rows := int32(1)
	for _, cat := range cats {
		g := overlays.ByCategory(cat)
		groups = append(groups, g)
		rows += int32(len(g)) + 1
	}
	r.DrawPanel(c.x, c.y, c.width, rows*line+pad*2+int32(len(cats))*4+4)

	x := c.x + pad
	y := c.y + pad
	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += line + 4

	for i, cat := range cats {
		rl.DrawText(categoryLabel(cat), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += line
		for _, d := range groups[i] {
			c.drawToggle(x, y, c.width-pad*2, d, overlays.IsEnabled(d.ID))
			y += line
		}
		y += 4
	}
	return y
}

func (c *ControlsPanel) drawToggle(x, y, width int32, d OverlayDescriptor, on bool) {
	fs := c.renderer.Theme.FontSize
	marker, name := toggleOff, c.renderer.Theme.LabelColor
	if on {
		marker, name = toggleOn, rl.White
	}
	rl.DrawCircle(x+4, y+fs/2, 4, marker)
	rl.DrawText(d.Name, x+14, y, fs, name)

	if d.KeyLabel != "" {
		key := "[" + d.KeyLabel + "]"
		rl.DrawText(key, x+width-rl.MeasureText(key, fs), y, fs, keyColor)
	}
}

// SchoolStatsData holds the live school summary.
type SchoolStatsData struct {
	Agents        int
	Fleeing       int
	MeanSpeed     float32
	MaxSpeed      float32
	BouncesPerSec float32
	ThreatActive  bool
}

// SchoolStatsPanel renders live school statistics.
type SchoolStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewSchoolStatsPanel creates a new school stats panel.
func NewSchoolStatsPanel(x, y, width int32) *SchoolStatsPanel {
	return &SchoolStatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (q *SchoolStatsPanel) SetPosition(x, y int32) {
	q.x = x
	q.y = y
}

// Draw renders the school stats panel.
func (q *SchoolStatsPanel) Draw(data SchoolStatsData) int32 {
	r := q.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*6 + padding*2 + 4
	r.DrawPanel(q.x, q.y, q.width, panelHeight)

	y := q.y + padding
	rl.DrawText("School", q.x+padding, y, 14, rl.White)
	y += lineHeight + 2

	var frac float32
	if data.Agents > 0 {
		frac = float32(data.Fleeing) / float32(data.Agents)
	}
	inner := q.width - padding*2
	y = r.DrawBar(q.x+padding, y, "Fleeing", frac, 0.25, inner)
	y = r.DrawLabelValue(q.x+padding, y, "Mean speed", fmt.Sprintf("%.2f", data.MeanSpeed))
	y = r.DrawLabelValue(q.x+padding, y, "Max speed", fmt.Sprintf("%.2f", data.MaxSpeed))
	y = r.DrawLabelValue(q.x+padding, y, "Bounces/s", fmt.Sprintf("%.1f", data.BouncesPerSec))

	threat := "off"
	if data.ThreatActive {
		threat = "active"
	}
	y = r.DrawLabelValue(q.x+padding, y, "Threat", threat)

	return y
}
