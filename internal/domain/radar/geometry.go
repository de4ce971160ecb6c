// Package radar projects blind spots onto the risk radar, produces the draw
// commands for a frame and resolves clicks back to the plotted records.
package radar

import (
	"math"

	"github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
)

const (
	// labelMargin is kept free around the plot for category labels.
	labelMargin = 60
	// MinDimension is the side length at which the plot radius reaches zero.
	MinDimension = 2 * labelMargin
	// labelOffset places category labels beyond the outer ring.
	labelOffset = 35
	// RingCount is the number of concentric risk-level rings.
	RingCount = 5
	// HitRadius is the maximum click distance, in pixels, that selects a point.
	HitRadius = 20

	// FilterAll disables category filtering.
	FilterAll = "all"
)

// Dimensions of the drawing surface in pixels.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultDimensions matches the square canvas used by the web client.
var DefaultDimensions = Dimensions{Width: 700, Height: 700}

// Point in pixel space, origin top-left, y pointing down.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry holds the derived plot frame for a set of dimensions.
type Geometry struct {
	Center    Point   `json:"center"`
	MaxRadius float64 `json:"max_radius"`
}

func NewGeometry(d Dimensions) Geometry {
	return Geometry{
		Center:    Point{X: d.Width / 2, Y: d.Height / 2},
		MaxRadius: math.Min(d.Width, d.Height)/2 - labelMargin,
	}
}

// RingRadius returns the radius of ring i, 1 <= i <= RingCount.
func (g Geometry) RingRadius(i int) float64 {
	return g.MaxRadius / RingCount * float64(i)
}

// SpokeAngle is the angle in radians of sector index out of count. The first
// sector points up and sectors proceed clockwise.
func SpokeAngle(index, count int) float64 {
	return float64(index)*(2*math.Pi/float64(count)) - math.Pi/2
}

// Project maps polar template coordinates to a pixel position. Angle 0 points up.
func (g Geometry) Project(c blindspots.Coordinates) Point {
	angle := c.Angle*math.Pi/180 - math.Pi/2
	radius := c.Radius / 100 * g.MaxRadius
	return g.polar(angle, radius)
}

func (g Geometry) polar(angle, radius float64) Point {
	return Point{
		X: g.Center.X + math.Cos(angle)*radius,
		Y: g.Center.Y + math.Sin(angle)*radius,
	}
}

// Visible reports whether a record passes the category filter.
func Visible(b *blindspots.BlindSpot, filter string) bool {
	return filter == "" || filter == FilterAll || string(b.Category) == filter
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
