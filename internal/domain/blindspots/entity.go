package blindspots

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AnalysisID identifier type
type AnalysisID string

// BlindSpotID identifier type
type BlindSpotID string

// Category enum
type Category string

const (
	CategorySecurity    Category = "security"
	CategoryCompliance  Category = "compliance"
	CategoryMarket      Category = "market"
	CategoryTechnical   Category = "technical"
	CategoryOperational Category = "operational"
	CategoryStrategic   Category = "strategic"
	CategoryFinancial   Category = "financial"
	CategoryCustomer    Category = "customer"
	CategoryGaming      Category = "gaming"
)

// Severity enum
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Weight orders severities by risk. Unknown severities weigh 0.
func (s Severity) Weight() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// ParseSeverity is case-insensitive.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// Coordinates is the polar plotting position of a blind spot:
// Angle in degrees (0-360), Radius in percent of the plot radius (0-100).
type Coordinates struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// String returns the serialized form stored alongside the record.
func (c Coordinates) String() string {
	b, _ := json.Marshal(c)
	return string(b)
}

// ParseCoordinates decodes the stored text form. Missing or non-numeric
// fields are rejected rather than defaulted.
func ParseCoordinates(raw string) (Coordinates, error) {
	var probe struct {
		Angle  *float64 `json:"angle"`
		Radius *float64 `json:"radius"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates %q: %w", raw, err)
	}
	if probe.Angle == nil || probe.Radius == nil {
		return Coordinates{}, fmt.Errorf("parse coordinates %q: angle and radius are required", raw)
	}
	c := Coordinates{Angle: *probe.Angle, Radius: *probe.Radius}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

func (c Coordinates) Validate() error {
	if c.Angle < 0 || c.Angle > 360 {
		return &ValidationError{Field: "coordinates.angle", Message: "must be between 0 and 360"}
	}
	if c.Radius < 0 || c.Radius > 100 {
		return &ValidationError{Field: "coordinates.radius", Message: "must be between 0 and 100"}
	}
	return nil
}

// Analysis is one user-initiated run. It owns its blind spots.
type Analysis struct {
	ID             AnalysisID `json:"id"`
	UserID         string     `json:"user_id"`
	Industry       string     `json:"industry"`
	Market         *string    `json:"market"`
	Input          string     `json:"input"`
	ComplianceMode bool       `json:"compliance_mode"`
	SecurityMode   bool       `json:"security_mode"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BlindSpot is one reported risk item of an analysis.
type BlindSpot struct {
	ID               BlindSpotID `json:"id"`
	AnalysisID       AnalysisID  `json:"analysis_id"`
	Category         Category    `json:"category"`
	Title            string      `json:"title"`
	Severity         Severity    `json:"severity"`
	RiskScore        float64     `json:"risk_score"`
	Description      string      `json:"description"`
	Impact           string      `json:"impact"`
	Recommendation   string      `json:"recommendation"`
	Timeline         string      `json:"timeline"`
	Effort           string      `json:"effort"`
	Coordinates      Coordinates `json:"coordinates"`
	IndustrySpecific bool        `json:"industry_specific"`
}

const (
	maxTitleLen = 200
	maxTextLen  = 2000
	// MaxInputLen bounds the stored analysis context.
	MaxInputLen = 1000
)

// Validate checks a record before it is persisted or plotted.
func (b *BlindSpot) Validate() error {
	if _, ok := LookupCategory(b.Category); !ok {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", b.Category)}
	}
	if b.Severity.Weight() == 0 {
		return &ValidationError{Field: "severity", Message: fmt.Sprintf("unknown severity %q", b.Severity)}
	}
	if b.RiskScore < 0 || b.RiskScore > 10 {
		return &ValidationError{Field: "risk_score", Message: "must be between 0 and 10"}
	}
	if strings.TrimSpace(b.Title) == "" || len(b.Title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("must be 1-%d characters", maxTitleLen)}
	}
	// checked in declaration order so the reported field is stable
	texts := []struct{ field, value string }{
		{"description", b.Description},
		{"impact", b.Impact},
		{"recommendation", b.Recommendation},
		{"timeline", b.Timeline},
		{"effort", b.Effort},
	}
	for _, t := range texts {
		if len(t.value) > maxTextLen {
			return &ValidationError{Field: t.field, Message: fmt.Sprintf("must be at most %d characters", maxTextLen)}
		}
	}
	return b.Coordinates.Validate()
}

// Summary aggregates the blind spots of a user's analyses.
type Summary struct {
	Analyses         int              `json:"analyses"`
	BlindSpots       int              `json:"blind_spots"`
	BySeverity       map[Severity]int `json:"by_severity"`
	IndustrySpecific int              `json:"industry_specific"`
}
