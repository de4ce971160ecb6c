package blindspots

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates(`{"angle":15,"radius":92}`)
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Angle: 15, Radius: 92}, c)

	round, err := ParseCoordinates(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, round)
}

func TestParseCoordinatesRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		``,
		`not json`,
		`{"angle":"north","radius":10}`,
		`{"angle":10}`,
		`{"angle":400,"radius":10}`,
		`{"angle":10,"radius":-1}`,
	} {
		_, err := ParseCoordinates(raw)
		assert.Error(t, err, raw)
	}
}

func TestSeverityWeightOrder(t *testing.T) {
	assert.Less(t, SeverityLow.Weight(), SeverityMedium.Weight())
	assert.Less(t, SeverityMedium.Weight(), SeverityHigh.Weight())
	assert.Less(t, SeverityHigh.Weight(), SeverityCritical.Weight())
	assert.Zero(t, Severity("Extreme").Weight())

	s, err := ParseSeverity(" critical ")
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, s)
	_, err = ParseSeverity("bad")
	assert.Error(t, err)
}

func validSpot() *BlindSpot {
	return &BlindSpot{
		Category:    CategoryMarket,
		Title:       "Gap",
		Severity:    SeverityLow,
		RiskScore:   3,
		Coordinates: Coordinates{Angle: 0, Radius: 0},
	}
}

func TestBlindSpotValidate(t *testing.T) {
	require.NoError(t, validSpot().Validate())

	cases := map[string]func(b *BlindSpot){
		"category":           func(b *BlindSpot) { b.Category = "weather" },
		"severity":           func(b *BlindSpot) { b.Severity = "Extreme" },
		"risk_score":         func(b *BlindSpot) { b.RiskScore = 10.5 },
		"title":              func(b *BlindSpot) { b.Title = " " },
		"description":        func(b *BlindSpot) { b.Description = strings.Repeat("a", maxTextLen+1) },
		"coordinates.radius": func(b *BlindSpot) { b.Coordinates.Radius = 101 },
	}
	for field, mutate := range cases {
		b := validSpot()
		mutate(b)
		err := b.Validate()
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), field)
		assert.Equal(t, field, vErr.Field)
	}
}

func TestBlindSpotValidateReportsFirstOversizedText(t *testing.T) {
	long := strings.Repeat("a", maxTextLen+1)
	for i := 0; i < 20; i++ {
		b := validSpot()
		b.Effort = long
		b.Timeline = long
		b.Description = long
		var vErr *ValidationError
		require.True(t, errors.As(b.Validate(), &vErr))
		assert.Equal(t, "description", vErr.Field)
	}
}

func TestIndustryName(t *testing.T) {
	name, ok := IndustryName("b2b-aiaas")
	assert.True(t, ok)
	assert.Equal(t, "B2B AI-as-a-Service", name)

	name, ok = IndustryName("healthcare-tech")
	assert.True(t, ok)
	assert.Equal(t, "Healthcare Technology", name)

	_, ok = IndustryName("nope")
	assert.False(t, ok)
	assert.Len(t, Industries(), 41)

	id, ok := IndustryIDByName("Healthcare Technology")
	assert.True(t, ok)
	assert.Equal(t, "healthcare-tech", id)
	_, ok = IndustryIDByName("Custom Vertical")
	assert.False(t, ok)
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 9)
	assert.Equal(t, CategorySecurity, cats[0].Key)
	assert.Equal(t, CategoryGaming, cats[8].Key)

	cats[0].Label = "changed"
	info, ok := LookupCategory(CategorySecurity)
	require.True(t, ok)
	assert.Equal(t, "Security Vulnerabilities", info.Label)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "scriptalert(x)/script", SanitizeInput(`  <script>alert("x")</script> `))
	assert.Equal(t, "its fine", SanitizeInput("it's fine"))

	long := SanitizeInput(strings.Repeat("é", MaxInputLen+50))
	assert.Equal(t, MaxInputLen, len([]rune(long)))
}
