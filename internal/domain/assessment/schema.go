// Package assessment implements the answer-schema gate of the analysis
// pipeline.  A submission that passes Validate is guaranteed to carry every
// mandatory field of its questionnaire generation; nothing downstream checks
// field presence again.
package assessment

import (
	"sort"
	"strings"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// mandatoryFields maps a field name to its accessor.  The set is shared by
// every questionnaire generation: later generations only ever added optional
// fields, never new mandatory ones.
var mandatoryFields = []struct {
	name string
	get  func(*assessment.Answers) string
}{
	{"businessType", func(a *assessment.Answers) string { return a.BusinessType }},
	{"businessOffering", func(a *assessment.Answers) string { return a.BusinessOffering }},
	{"revenue", func(a *assessment.Answers) string { return a.Revenue }},
	{"trackingSystem", func(a *assessment.Answers) string { return a.TrackingSystem }},
	{"followUpProcess", func(a *assessment.Answers) string { return a.FollowUpProcess }},
}

// Validate confirms that every mandatory field is present and non-empty and
// normalises the answer set in place (whitespace trimming, nil multi-choice
// fields becoming empty sets, version defaulting).  It is all-or-nothing: on
// any missing field it returns an ErrCodeAssessmentInvalid error naming every
// missing field, and the answers must not be processed further.
func Validate(a *assessment.Answers) error {
	if a == nil {
		return errors.Validation("answer set is nil")
	}

	normalize(a)

	var missing []string
	for _, f := range mandatoryFields {
		if strings.TrimSpace(f.get(a)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Validation("missing required fields").
			WithDetail(strings.Join(missing, ", "))
	}
	return nil
}

// normalize trims enum and free-text values and defaults absent collections
// so that rule predicates never have to distinguish nil from empty.
func normalize(a *assessment.Answers) {
	if a.Version == "" {
		a.Version = assessment.SchemaV1
	}
	if a.LeadSources == nil {
		a.LeadSources = []string{}
	}

	a.BusinessType = strings.TrimSpace(a.BusinessType)
	a.BusinessOffering = strings.TrimSpace(a.BusinessOffering)
	a.Revenue = strings.TrimSpace(a.Revenue)
	a.Employees = strings.TrimSpace(a.Employees)
	a.GrowthPlan = strings.TrimSpace(a.GrowthPlan)
	a.TrackingSystem = strings.TrimSpace(a.TrackingSystem)
	a.FollowUpProcess = strings.TrimSpace(a.FollowUpProcess)
	a.OfferUpsells = strings.TrimSpace(a.OfferUpsells)
	a.PricingStrategy = strings.TrimSpace(a.PricingStrategy)
	a.ProfitAwareness = strings.TrimSpace(a.ProfitAwareness)
	a.ValueAwareness = strings.TrimSpace(a.ValueAwareness)
	a.ExpenseReview = strings.TrimSpace(a.ExpenseReview)
	a.AutomationPotential = strings.TrimSpace(a.AutomationPotential)
	a.FinancialReviewFrequency = strings.TrimSpace(a.FinancialReviewFrequency)
	a.CashFlowTracking = strings.TrimSpace(a.CashFlowTracking)
	a.BusinessValuation = strings.TrimSpace(a.BusinessValuation)
	a.BiggestImprovement = strings.TrimSpace(a.BiggestImprovement)

	for i, s := range a.LeadSources {
		a.LeadSources[i] = strings.TrimSpace(s)
	}
}

//Personal.AI order the ending
