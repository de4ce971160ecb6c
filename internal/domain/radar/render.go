package radar

import (
	"strings"

	"github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
)

// Kind of a draw command.
type Kind string

const (
	KindRing      Kind = "ring"
	KindRingLabel Kind = "ring_label"
	KindSpoke     Kind = "spoke"
	KindLabel     Kind = "category_label"
	KindPoint     Kind = "point"
	KindAlertRing Kind = "alert_ring"
)

const (
	ringFont  = "bold 11px Inter, system-ui, sans-serif"
	labelFont = "bold 12px Inter, system-ui, sans-serif"

	spokeColor    = "#d1d5db"
	alertColor    = "#dc2626"
	fallbackColor = "#3b82f6"

	ringOpacity  = 64.0 / 255
	gradientFade = 128.0 / 255

	pointRadius         = 6
	industryPointRadius = 8
	alertRingRadius     = 14
)

// RiskLevel labels one concentric ring.
type RiskLevel struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// RiskLevels from the innermost ring outwards.
var RiskLevels = [RingCount]RiskLevel{
	{Label: "Low Risk", Color: "#10b981"},
	{Label: "Medium Risk", Color: "#f59e0b"},
	{Label: "High Risk", Color: "#ef4444"},
	{Label: "Critical Risk", Color: "#dc2626"},
	{Label: "Extreme Risk", Color: "#991b1b"},
}

// Gradient is a radial fill from Inner at full opacity to Inner at OuterOpacity.
type Gradient struct {
	Color        string  `json:"color"`
	OuterOpacity float64 `json:"outer_opacity"`
}

// Command is one drawing instruction. Lines use From/To, circles use
// From as center plus Radius, text uses From as anchor (horizontally centered).
type Command struct {
	Kind        Kind                   `json:"kind"`
	From        Point                  `json:"from"`
	To          *Point                 `json:"to,omitempty"`
	Radius      float64                `json:"radius,omitempty"`
	Text        string                 `json:"text,omitempty"`
	Font        string                 `json:"font,omitempty"`
	Color       string                 `json:"color"`
	Opacity     float64                `json:"opacity"`
	StrokeWidth float64                `json:"stroke_width,omitempty"`
	Fill        bool                   `json:"fill"`
	Gradient    *Gradient              `json:"gradient,omitempty"`
	BlindSpotID blindspots.BlindSpotID `json:"blind_spot_id,omitempty"`
}

// Frame is a complete, self-contained redraw of the radar.
type Frame struct {
	Dimensions Dimensions `json:"dimensions"`
	Geometry   Geometry   `json:"geometry"`
	Filter     string     `json:"filter"`
	// Empty is set when there is nothing to plot; the caller shows a placeholder.
	Empty    bool      `json:"empty"`
	Commands []Command `json:"commands"`
}

// Render builds the draw commands for spots under filter. It does not mutate its inputs.
func Render(spots []*blindspots.BlindSpot, filter string, d Dimensions) Frame {
	if filter == "" {
		filter = FilterAll
	}
	g := NewGeometry(d)
	f := Frame{Dimensions: d, Geometry: g, Filter: filter, Commands: []Command{}}
	if len(spots) == 0 {
		f.Empty = true
		return f
	}

	for i := 1; i <= RingCount; i++ {
		f.Commands = append(f.Commands, Command{
			Kind:        KindRing,
			From:        g.Center,
			Radius:      g.RingRadius(i),
			Color:       RiskLevels[i-1].Color,
			Opacity:     ringOpacity,
			StrokeWidth: 1,
		})
	}
	for i, level := range RiskLevels {
		f.Commands = append(f.Commands, Command{
			Kind:    KindRingLabel,
			From:    Point{X: g.Center.X, Y: g.Center.Y - g.RingRadius(i+1) + 12},
			Text:    level.Label,
			Font:    ringFont,
			Color:   level.Color,
			Opacity: 1,
			Fill:    true,
		})
	}

	cats := blindspots.Categories()
	for i, cat := range cats {
		angle := SpokeAngle(i, len(cats))
		end := g.polar(angle, g.MaxRadius)
		f.Commands = append(f.Commands, Command{
			Kind:        KindSpoke,
			From:        g.Center,
			To:          &end,
			Color:       spokeColor,
			Opacity:     1,
			StrokeWidth: 1,
		})
		anchor := g.polar(angle, g.MaxRadius+labelOffset)
		for _, line := range labelLines(cat.Label, anchor) {
			f.Commands = append(f.Commands, Command{
				Kind:    KindLabel,
				From:    line.at,
				Text:    line.text,
				Font:    labelFont,
				Color:   cat.Color,
				Opacity: 1,
				Fill:    true,
			})
		}
	}

	for _, b := range spots {
		if !Visible(b, filter) {
			continue
		}
		f.Commands = append(f.Commands, pointCommands(g, b)...)
	}
	return f
}

type textLine struct {
	text string
	at   Point
}

// labelLines wraps multi-word labels onto two lines around anchor.
func labelLines(label string, anchor Point) []textLine {
	words := strings.Split(label, " ")
	if len(words) > 1 {
		return []textLine{
			{text: words[0], at: Point{X: anchor.X, Y: anchor.Y - 6}},
			{text: strings.Join(words[1:], " "), at: Point{X: anchor.X, Y: anchor.Y + 8}},
		}
	}
	return []textLine{{text: label, at: anchor}}
}

func pointCommands(g Geometry, b *blindspots.BlindSpot) []Command {
	color := fallbackColor
	if info, ok := blindspots.LookupCategory(b.Category); ok {
		color = info.Color
	}
	at := g.Project(b.Coordinates)

	dot := Command{
		Kind:        KindPoint,
		From:        at,
		Radius:      pointRadius,
		Color:       color,
		Opacity:     1,
		Fill:        true,
		BlindSpotID: b.ID,
	}
	if b.IndustrySpecific {
		dot.Radius = industryPointRadius
		dot.Gradient = &Gradient{Color: color, OuterOpacity: gradientFade}
	}
	out := []Command{dot}

	if b.Severity == blindspots.SeverityCritical {
		out = append(out, Command{
			Kind:        KindAlertRing,
			From:        at,
			Radius:      alertRingRadius,
			Color:       alertColor,
			Opacity:     1,
			StrokeWidth: 2,
			BlindSpotID: b.ID,
		})
	}
	return out
}
