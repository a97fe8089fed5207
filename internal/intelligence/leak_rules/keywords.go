package leak_rules

import "strings"

// themeCohort ties a set of trigger substrings over the free-text challenge
// answer to the thematic finding it unlocks.
type themeCohort struct {
	keywords []string
	tmpl     *findingTemplate
}

// themeCohorts is matched first-hit-wins, so a challenge answer mentioning
// both leads and cash surfaces the lead theme only.  Keywords are matched as
// lowercase substrings; stems ("automat") deliberately catch inflections.
var themeCohorts = []themeCohort{
	{
		keywords: []string{"lead", "customer", "client", "sales", "marketing", "convert"},
		tmpl:     &tmplLeadGenerationGaps,
	},
	{
		keywords: []string{"cash", "money", "profit", "margin", "expense", "cost", "revenue"},
		tmpl:     &tmplCashFlowBlindSpots,
	},
	{
		keywords: []string{"time", "busy", "overwhelm", "hour", "automat", "delegate"},
		tmpl:     &tmplOwnerTimeDrain,
	},
}

// matchChallengeTheme inspects the owner's free-text answer and returns the
// first thematic finding whose cohort matches, or nil when no theme applies.
func matchChallengeTheme(text string) *findingTemplate {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	for _, cohort := range themeCohorts {
		for _, kw := range cohort.keywords {
			if strings.Contains(text, kw) {
				return cohort.tmpl
			}
		}
	}
	return nil
}

//Personal.AI order the ending
