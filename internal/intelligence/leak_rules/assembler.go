package leak_rules

import (
	"fmt"
	"strings"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// ─────────────────────────────────────────────────────────────────────────────
// Report assembly
// ─────────────────────────────────────────────────────────────────────────────

// businessPhrases maps a business-type option code to the noun phrase used in
// the report summary.  Unknown codes fall back to the generic phrase.
var businessPhrases = map[string]string{
	"retail":       "retail business",
	"service":      "service business",
	"restaurant":   "restaurant",
	"ecommerce":    "online store",
	"online":       "online business",
	"trades":       "trades business",
	"construction": "construction business",
	"consulting":   "consulting practice",
	"health":       "health and wellness business",
	"creative":     "creative business",
}

const genericBusinessPhrase = "business"

// recommendationCTA closes every deterministic report with the same next-step
// nudge, regardless of which leaks fired.
const recommendationCTA = "Start with the first leak on this list. Fixing the biggest leak " +
	"first usually pays for the time spent within a month, and a free Profit Sidekick " +
	"session can help you build the patch plan."

// impactPenalties is the score deduction per finding, keyed by severity.
var impactPenalties = map[assessment.ImpactLevel]int{
	assessment.ImpactLow:      6,
	assessment.ImpactMedium:   10,
	assessment.ImpactHigh:     16,
	assessment.ImpactCritical: 22,
}

// scoreSummaries phrases the aggregate result, keyed by label.
var scoreSummaries = map[string]string{
	assessment.LabelProfitPro:       "Your systems are solid. The leaks below are fine-tuning, not firefighting.",
	assessment.LabelLeakyButFixable: "The foundations are there, but a few leaks are steadily draining profit you've already earned.",
	assessment.LabelProfitDripZone:  "Several leaks are compounding. Each one is fixable, but together they're costing you real money every month.",
	assessment.LabelEmergencyMode:   "The leaks below are serious and feeding each other. Patching the first two should be this week's priority.",
}

// recoveryBands maps a revenue bracket to a coarse monthly-recovery estimate.
// The figures are deliberately conservative ranges, not projections.
var recoveryBands = map[string]assessment.RecoveryRange{
	"under100k": {MonthlyMin: 500, MonthlyMax: 2000},
	"100k-250k": {MonthlyMin: 1000, MonthlyMax: 4000},
	"250k-500k": {MonthlyMin: 2000, MonthlyMax: 8000},
	"500k-1m":   {MonthlyMin: 4000, MonthlyMax: 15000},
	"1m-3m":     {MonthlyMin: 8000, MonthlyMax: 30000},
	"3m+":       {MonthlyMin: 15000, MonthlyMax: 60000},
}

const recoveryNote = "Estimate based on typical results for businesses in your revenue " +
	"bracket addressing similar leaks. Actual recovery depends on execution."

// Assemble turns the evaluated findings into a complete report.  The finding
// list is capped at the report ceiling, keeping evaluation order; the summary
// is phrased for the owner's business type; enriched submissions additionally
// receive the performance score, an empathy message, a patch plan and a
// recovery estimate.
func Assemble(a *assessment.Answers, findings []assessment.Finding) *assessment.Report {
	if len(findings) > assessment.MaxFindings {
		findings = findings[:assessment.MaxFindings]
	}

	report := &assessment.Report{
		Summary:        summaryFor(a, len(findings)),
		ProfitLeaks:    findings,
		Recommendation: recommendationCTA,
	}

	if a.Enriched() {
		score := scoreFor(findings)
		report.ProfitPerformanceScore = score
		report.EmpathyMessage = empathyFor(score.Score)
		report.PatchPlan = patchPlanFor(findings)
		report.EstimatedRecoveryRange = recoveryFor(a.Revenue)
	}

	return report
}

// Analyze is the single entry point of the deterministic path: evaluate the
// rules and assemble the result.  The answers must already have passed schema
// validation.
func Analyze(a *assessment.Answers) *assessment.Report {
	return Assemble(a, Evaluate(a))
}

func summaryFor(a *assessment.Answers, count int) string {
	phrase, ok := businessPhrases[code(a.BusinessType)]
	if !ok {
		phrase = genericBusinessPhrase
	}
	noun := "profit leaks"
	if count == 1 {
		noun = "profit leak"
	}
	return fmt.Sprintf("We found %d %s in your %s. Here's where the money is going, starting with the most expensive.",
		count, noun, phrase)
}

// scoreFor computes the aggregate score: a perfect 100 minus a fixed penalty
// per finding by severity, clamped to the valid range.  Findings never raise
// the score, so adding one can only hold it or pull it down.
func scoreFor(findings []assessment.Finding) *assessment.PerformanceScore {
	score := 100
	for i := range findings {
		score -= impactPenalties[findings[i].PotentialImpact]
	}
	if score < 0 {
		score = 0
	}
	label := assessment.LabelForScore(score)
	return &assessment.PerformanceScore{
		Score:   score,
		Label:   label,
		Summary: scoreSummaries[label],
	}
}

func empathyFor(score int) string {
	if score >= 60 {
		return "You're running a tighter ship than most owners we hear from. The gaps " +
			"below aren't failures, they're the next layer of profit you haven't " +
			"claimed yet."
	}
	return "Running a business means a hundred decisions a day, and nobody gets them " +
		"all right. Every leak below is common, fixable, and none of them mean " +
		"you've been doing it wrong."
}

// patchPlanFor lifts the first action step of the top findings into a
// three-step starter plan.  Findings without attached steps contribute a
// generic step built from their title.
func patchPlanFor(findings []assessment.Finding) []string {
	plan := make([]string, 0, assessment.ActionStepCount)
	for i := range findings {
		if len(plan) == assessment.ActionStepCount {
			break
		}
		f := &findings[i]
		if len(f.ActionableInsights) > 0 {
			plan = append(plan, f.ActionableInsights[0])
		} else {
			plan = append(plan, "Tackle "+strings.ToLower(f.Title)+" this week")
		}
	}
	return plan
}

func recoveryFor(revenue string) *assessment.RecoveryRange {
	band, ok := recoveryBands[code(revenue)]
	if !ok {
		band = recoveryBands["under100k"]
	}
	band.Note = recoveryNote
	return &band
}

//Personal.AI order the ending
