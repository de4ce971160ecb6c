package middleware

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
)

// Input validation for path and query parameters

const maxDimension = 4000

// ValidateAnalysisID analysis IDs are UUIDs
func ValidateAnalysisID(id string) error {
	if id == "" {
		return &blindspots.ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &blindspots.ValidationError{Field: "id", Message: "invalid analysis ID format"}
	}
	return nil
}

// ValidateFilter returns the normalized filter ("all" or a category key)
func ValidateFilter(filter string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" || f == radar.FilterAll {
		return radar.FilterAll, nil
	}
	if _, ok := blindspots.LookupCategory(blindspots.Category(f)); !ok {
		return "", &blindspots.ValidationError{Field: "filter", Message: fmt.Sprintf("unknown category %q", filter)}
	}
	return f, nil
}

// ValidateDimensions falls back to def for zero values
func ValidateDimensions(width, height float64, def radar.Dimensions) (radar.Dimensions, error) {
	d := radar.Dimensions{Width: width, Height: height}
	if d.Width == 0 {
		d.Width = def.Width
	}
	if d.Height == 0 {
		d.Height = def.Height
	}
	// at or under MinDimension the plot radius would be zero or negative
	if math.IsNaN(d.Width) || math.IsNaN(d.Height) ||
		math.Min(d.Width, d.Height) <= radar.MinDimension || math.Max(d.Width, d.Height) > maxDimension {
		return radar.Dimensions{}, &blindspots.ValidationError{
			Field:   "dimensions",
			Message: fmt.Sprintf("width and height must be greater than %d and at most %d", radar.MinDimension, maxDimension),
		}
	}
	return d, nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
