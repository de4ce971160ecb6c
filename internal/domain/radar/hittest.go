package radar

import (
	"math"

	"github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
)

// HitTest returns the visible record nearest to click, provided it lies within
// HitRadius. On equal distances the record listed first wins.
func HitTest(spots []*blindspots.BlindSpot, filter string, d Dimensions, click Point) (*blindspots.BlindSpot, bool) {
	g := NewGeometry(d)

	var closest *blindspots.BlindSpot
	minDistance := math.Inf(1)
	for _, b := range spots {
		if !Visible(b, filter) {
			continue
		}
		dist := distance(click, g.Project(b.Coordinates))
		if dist <= HitRadius && dist < minDistance {
			minDistance = dist
			closest = b
		}
	}
	return closest, closest != nil
}
