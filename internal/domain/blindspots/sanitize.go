package blindspots

import "strings"

var stripped = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// SanitizeInput drops markup-sensitive characters, trims and caps the
// context text at MaxInputLen characters.
func SanitizeInput(input string) string {
	s := strings.TrimSpace(stripped.Replace(input))
	if r := []rune(s); len(r) > MaxInputLen {
		s = string(r[:MaxInputLen])
	}
	return s
}
