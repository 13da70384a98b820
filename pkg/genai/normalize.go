package genai

import "strings"

// Closed value sets for the enum fields of an outlook. Raw model output is
// coerced into these; anything else becomes the declared default.
var (
	DemandLevels       = []string{"HIGH", "MEDIUM", "LOW"}
	DefaultDemandLevel = "MEDIUM"

	MarketOutlooks       = []string{"POSITIVE", "NEUTRAL", "NEGATIVE"}
	DefaultMarketOutlook = "NEUTRAL"
)

// NormalizeEnum upper-cases raw and checks membership in allowed, returning
// def for absent or out-of-set values.
func NormalizeEnum(raw string, allowed []string, def string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
