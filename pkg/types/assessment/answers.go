// Package assessment defines the wire-level data types exchanged between the
// form layer, the analysis engine, and API clients: the questionnaire answer
// set going in and the profit-leak report coming out.  No business logic lives
// here, only plain data types and enumeration helpers.
package assessment

import "strings"

// SchemaVersion identifies which questionnaire generation produced an answer
// set.  The answer struct is a superset of all generations; the version only
// controls which optional fields are expected to be present.
type SchemaVersion string

const (
	// SchemaV1 is the original four-section questionnaire (business basics,
	// marketing and lead flow, sales and follow-up, profit bottlenecks).
	SchemaV1 SchemaVersion = "v1"

	// SchemaV2 adds the financial-habits section and the long-form challenge
	// answer that unlocks scored (enriched) reports.
	SchemaV2 SchemaVersion = "v2"
)

// Answers is a single questionnaire submission.  It is constructed once from
// the external form payload and treated as immutable for the duration of one
// analysis run.  Enum-choice fields carry the option codes emitted by the
// form ("spreadsheet", "100k-250k", ...); multi-choice fields carry a set of
// such codes; free-text fields are unconstrained.
type Answers struct {
	Version SchemaVersion `json:"version,omitempty"`

	// Business snapshot
	BusinessType     string `json:"businessType"`
	BusinessOffering string `json:"businessOffering"`
	Revenue          string `json:"revenue"`
	Employees        string `json:"employees,omitempty"`
	GrowthPlan       string `json:"growthPlan,omitempty"`

	// Lead flow and sales systems
	LeadSources     []string `json:"leadSources,omitempty"`
	TrackingSystem  string   `json:"trackingSystem"`
	FollowUpProcess string   `json:"followUpProcess"`
	OfferUpsells    string   `json:"offerUpsells,omitempty"`

	// Pricing, profit and value leaks
	PricingStrategy     string `json:"pricingStrategy,omitempty"`
	ProfitAwareness     string `json:"profitAwareness,omitempty"`
	ValueAwareness      string `json:"valueAwareness,omitempty"`
	ExpenseReview       string `json:"expenseReview,omitempty"`
	AutomationPotential string `json:"automationPotential,omitempty"`

	// Financial habits and exit awareness
	FinancialReviewFrequency string `json:"financialReviewFrequency,omitempty"`
	CashFlowTracking         string `json:"cashFlowTracking,omitempty"`
	BusinessValuation        string `json:"businessValuation,omitempty"`

	// Free-text: the one thing the owner would fix first.  Answers longer
	// than the enriched threshold unlock per-finding action steps and the
	// aggregate performance score.
	BiggestImprovement string `json:"biggestImprovement,omitempty"`
}

// EnrichedThreshold is the minimum rune length of BiggestImprovement that
// switches a submission into enriched mode.
const EnrichedThreshold = 50

// Enriched reports whether the submission carries a long-form narrative
// answer and therefore qualifies for action steps and scoring.
func (a *Answers) Enriched() bool {
	return len([]rune(strings.TrimSpace(a.BiggestImprovement))) > EnrichedThreshold
}

// DistinctLeadSources returns the number of distinct, non-empty lead source
// codes.  Duplicates and surrounding whitespace in the submitted set are
// ignored.
func (a *Answers) DistinctLeadSources() int {
	seen := make(map[string]struct{}, len(a.LeadSources))
	for _, s := range a.LeadSources {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		seen[s] = struct{}{}
	}
	return len(seen)
}

//Personal.AI order the ending
