package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEnum(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"canonical", "HIGH", "HIGH"},
		{"lowercase", "high", "HIGH"},
		{"mixed case with spaces", "  Medium ", "MEDIUM"},
		{"out of set", "EXTREME", DefaultDemandLevel},
		{"absent", "", DefaultDemandLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeEnum(tc.raw, DemandLevels, DefaultDemandLevel))
		})
	}
}

func TestNormalizeEnum_OutlookSet(t *testing.T) {
	assert.Equal(t, "NEGATIVE", NormalizeEnum("negative", MarketOutlooks, DefaultMarketOutlook))
	assert.Equal(t, DefaultMarketOutlook, NormalizeEnum("bullish", MarketOutlooks, DefaultMarketOutlook))
}
