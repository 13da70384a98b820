package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SalaryRange is one role's compensation band inside an outlook.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// Outlook is the normalized industry analysis. After IndustryOutlook returns,
// enum fields are members of their allowed sets and list fields are never nil.
type Outlook struct {
	SalaryRanges      []SalaryRange `json:"salary_ranges"`
	GrowthRate        float64       `json:"growth_rate"`
	DemandLevel       string        `json:"demand_level"`
	TopSkills         []string      `json:"top_skills"`
	MarketOutlook     string        `json:"market_outlook"`
	KeyTrends         []string      `json:"key_trends"`
	RecommendedSkills []string      `json:"recommended_skills"`
}

const outlookSystem = "You are a JSON generator. Output only a JSON string, no markdown markers."

const outlookPrompt = `You are a senior labor market analyst. Produce an analysis of the current state of the "%s" industry.
Return strictly the following JSON shape and nothing else:
{
	"salary_ranges": [{"role": "string", "min": 0, "max": 0, "median": 0, "location": "string"}],
	"growth_rate": 0.0,
	"demand_level": "HIGH" | "MEDIUM" | "LOW",
	"top_skills": ["skill1", "skill2"],
	"market_outlook": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
	"key_trends": ["trend1", "trend2"],
	"recommended_skills": ["skill1", "skill2"]
}
Include at least 5 common roles in salary_ranges, growth_rate as a percentage,
and at least 5 entries in top_skills, key_trends and recommended_skills.`

// IndustryOutlook generates a normalized outlook for one industry. headlines
// are optional recent market signals appended to ground the analysis.
func (c *Client) IndustryOutlook(ctx context.Context, industry string, headlines []string) (*Outlook, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, outlookPrompt, industry)
	if len(headlines) > 0 {
		sb.WriteString("\n\nRecent headlines for context:\n- ")
		sb.WriteString(strings.Join(headlines, "\n- "))
	}

	raw, err := c.complete(ctx, outlookSystem, sb.String())
	if err != nil {
		return nil, err
	}

	var out Outlook
	if err := json.Unmarshal([]byte(StripFences(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse outlook for %q: %v: %w", industry, err, ErrGenerationFailed)
	}
	normalizeOutlook(&out)
	return &out, nil
}

// normalizeOutlook coerces enum fields into their allowed sets and replaces
// nil lists with empty ones so consumers never branch on field presence.
func normalizeOutlook(o *Outlook) {
	o.DemandLevel = NormalizeEnum(o.DemandLevel, DemandLevels, DefaultDemandLevel)
	o.MarketOutlook = NormalizeEnum(o.MarketOutlook, MarketOutlooks, DefaultMarketOutlook)
	if o.SalaryRanges == nil {
		o.SalaryRanges = []SalaryRange{}
	}
	if o.TopSkills == nil {
		o.TopSkills = []string{}
	}
	if o.KeyTrends == nil {
		o.KeyTrends = []string{}
	}
	if o.RecommendedSkills == nil {
		o.RecommendedSkills = []string{}
	}
}
