// Package leak_rules implements the deterministic profit-leak engine: an
// ordered set of independent predicates over a validated answer set, each
// producing at most one finding, plus the assembler that turns the fired
// findings into a complete report.  Evaluation is total (no rule can fail)
// and free of hidden state, so identical answers always yield identical
// findings in identical order.
package leak_rules

import (
	"strings"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// ─────────────────────────────────────────────────────────────────────────────
// Finding templates
// ─────────────────────────────────────────────────────────────────────────────

// findingTemplate is the full text of one diagnosable leak.  The three action
// steps are attached to the emitted finding only for enriched submissions.
type findingTemplate struct {
	title       string
	description string
	impact      assessment.ImpactLevel
	actions     [assessment.ActionStepCount]string
}

func (t *findingTemplate) finding(enriched bool) assessment.Finding {
	f := assessment.Finding{
		Title:           t.title,
		Description:     t.description,
		PotentialImpact: t.impact,
	}
	if enriched {
		f.ActionableInsights = append([]string(nil), t.actions[:]...)
	}
	return f
}

var (
	tmplInadequateTracking = findingTemplate{
		title: "Inadequate Tracking",
		description: "Leads and customers are being managed without a real system, so warm " +
			"prospects quietly fall through the cracks and repeat-sale opportunities go unseen.",
		impact: assessment.ImpactHigh,
		actions: [3]string{
			"Move your lead and customer list into a simple CRM this week",
			"Log every new enquiry the day it arrives, including the source",
			"Review the pipeline once a week and flag anyone who has gone quiet",
		},
	}

	tmplInconsistentFollowUp = findingTemplate{
		title: "Inconsistent Follow-Up",
		description: "Prospects who didn't buy on the first contact rarely hear from you again. " +
			"Most sales happen after several touches, so an unreliable follow-up habit is " +
			"handing revenue to competitors who simply stayed in touch.",
		impact: assessment.ImpactHigh,
		actions: [3]string{
			"Write a three-message follow-up sequence and schedule it for every new lead",
			"Set a 48-hour rule: no enquiry goes unanswered for more than two days",
			"Automate the first follow-up email so it never depends on a busy day",
		},
	}

	tmplLimitedChannels = findingTemplate{
		title: "Limited Channel Diversity",
		description: "Nearly all of your leads come from one or two sources. If that channel " +
			"cools off, the pipeline empties overnight, and you're missing buyers who " +
			"simply never encounter you where they spend their time.",
		impact: assessment.ImpactMedium,
		actions: [3]string{
			"Pick one additional channel your customers already use and test it for 30 days",
			"Ask your five best customers how they found you and double down there",
			"Set up a simple referral offer so existing customers become a channel",
		},
	}

	tmplOperationalInefficiency = findingTemplate{
		title: "Operational Inefficiency",
		description: "Your team size is large for your current revenue bracket, which usually " +
			"means payroll is absorbing margin that better systems or clearer roles would " +
			"free up.",
		impact: assessment.ImpactHigh,
		actions: [3]string{
			"Map who does what for a week and find duplicated or idle effort",
			"Automate or template the three most repetitive tasks you find",
			"Set a revenue-per-person target and review it monthly",
		},
	}

	tmplNoUpsellPath = findingTemplate{
		title: "No Upsell Path",
		description: "Customers who already trust you are never offered a next step. Selling " +
			"more to an existing customer costs a fraction of winning a new one, so a " +
			"missing upsell is one of the cheapest leaks to patch.",
		impact: assessment.ImpactMedium,
		actions: [3]string{
			"Design one add-on or upgrade that naturally follows your main offer",
			"Offer it at the point of sale, not weeks later",
			"Track the attach rate and adjust the offer monthly",
		},
	}

	tmplGuessworkPricing = findingTemplate{
		title: "Guesswork Pricing",
		description: "Prices set by matching competitors or gut feel ignore the value you " +
			"actually deliver. Even a small underpricing compounds across every sale you " +
			"make all year.",
		impact: assessment.ImpactMedium,
		actions: [3]string{
			"List the concrete outcomes your best customers get and price against those",
			"Test a 10% increase on your next five quotes and watch the close rate",
			"Stop quoting from the competitor's price sheet and anchor on value delivered",
		},
	}
)

// Thematic findings triggered by keyword cohorts over the free-text challenge
// answer (see keywords.go).
var (
	tmplLeadGenerationGaps = findingTemplate{
		title: "Lead Generation Gaps",
		description: "Your own words say it: getting enough of the right customers is the " +
			"bottleneck. That usually traces back to an unclear offer or a pipeline that " +
			"depends on luck instead of a repeatable process.",
		impact: assessment.ImpactHigh,
		actions: [3]string{
			"Write down the one problem you solve and for whom, in one sentence",
			"Commit to a single lead-generation activity daily for two weeks",
			"Measure cost and conversion per channel before spending more anywhere",
		},
	}

	tmplCashFlowBlindSpots = findingTemplate{
		title: "Cash Flow Blind Spots",
		description: "Money worries show up in your answers, and cash problems are almost " +
			"always visibility problems first. By the time the bank balance hurts, the " +
			"leak has been running for months.",
		impact: assessment.ImpactHigh,
		actions: [3]string{
			"Start a simple weekly cash review: in, out, and what's due in 30 days",
			"Invoice the day work completes and chase anything past seven days",
			"Cancel or renegotiate the three subscriptions you forgot you had",
		},
	}

	tmplOwnerTimeDrain = findingTemplate{
		title: "Owner Time Drain",
		description: "You're describing a business that runs on your hours. Every task only " +
			"you can do is a ceiling on growth and a discount on the value of everything " +
			"else you could be doing.",
		impact: assessment.ImpactMedium,
		actions: [3]string{
			"Track your time for one week and mark everything below your hourly value",
			"Document one recurring task and hand it off completely",
			"Block two founder-only hours a week for work that grows the business",
		},
	}
)

// Generic fillers appended in this fixed order when fewer than the minimum
// number of targeted findings fire.
var fillerTemplates = []findingTemplate{
	{
		title: "Untapped Customer Value",
		description: "Most businesses your size earn 20-30% more from the customers they " +
			"already have. Reactivation, referrals and repeat offers are usually the " +
			"fastest money on the table.",
		impact: assessment.ImpactMedium,
		actions: [3]string{
			"Email your past customers with a reason to come back this month",
			"Ask every happy customer for one referral, every time",
			"Create a simple repeat-purchase incentive",
		},
	},
	{
		title: "Pricing Strategy Weaknesses",
		description: "Few small businesses revisit pricing more than once a year, and most " +
			"are quietly underpriced. A structured pricing review nearly always finds " +
			"margin hiding in plain sight.",
		impact: assessment.ImpactMedium,
		actions: [3]string{
			"Compare your prices against the value delivered, not just the market",
			"Add a premium tier for customers who want more done for them",
			"Review pricing quarterly instead of when forced to",
		},
	},
	{
		title: "Invisible Expense Creep",
		description: "Recurring costs grow silently. Tools, subscriptions and suppliers " +
			"added over the years rarely get challenged, and the total drags on profit " +
			"every single month.",
		impact: assessment.ImpactLow,
		actions: [3]string{
			"Export three months of bank statements and highlight every recurring charge",
			"Cancel anything unused and renegotiate the top three remaining costs",
			"Put a calendar reminder to repeat this audit every quarter",
		},
	},
}

// ─────────────────────────────────────────────────────────────────────────────
// Trigger sets
// ─────────────────────────────────────────────────────────────────────────────

// Tracking methods considered inadequate.  "memory" and "email" appear in the
// later questionnaire generations.
var inadequateTracking = map[string]struct{}{
	"spreadsheet": {},
	"paper":       {},
	"none":        {},
	"memory":      {},
	"email":       {},
}

// Follow-up answers considered unreliable.  "no" and "unsure" are the v1
// option codes; the rest come from the v2 questionnaire.
var unreliableFollowUp = map[string]struct{}{
	"none":                {},
	"no":                  {},
	"unsure":              {},
	"manual-inconsistent": {},
	"reactive":            {},
}

// minLeadChannels is the distinct-channel count below which the pipeline is
// considered dangerously concentrated.
const minLeadChannels = 3

// overstaffedFor maps a revenue bracket to the team sizes that are out of
// proportion for it.  Brackets not listed never trigger the rule.
var overstaffedFor = map[string]map[string]struct{}{
	"under100k": {"6-10": {}, "11-20": {}, "20+": {}},
	"100k-250k": {"11-20": {}, "20+": {}},
	"250k-500k": {"20+": {}},
}

// Upsell and pricing answers that indicate a leak.
var (
	missingUpsell    = map[string]struct{}{"no": {}, "unsure": {}}
	guessworkPricing = map[string]struct{}{"match-competitors": {}, "unsure": {}}
)

// ─────────────────────────────────────────────────────────────────────────────
// Rule set
// ─────────────────────────────────────────────────────────────────────────────

// rule is a single predicate over the validated answers.  It returns the
// template of the leak it diagnoses, or nil when it does not fire.
type rule struct {
	name string
	eval func(a *assessment.Answers) *findingTemplate
}

// ruleSet is evaluated in declaration order; each rule fires at most once and
// the accumulation order doubles as the ranking tie-break when the assembler
// truncates the list.
var ruleSet = []rule{
	{
		name: "inadequate_tracking",
		eval: func(a *assessment.Answers) *findingTemplate {
			if _, ok := inadequateTracking[code(a.TrackingSystem)]; ok {
				return &tmplInadequateTracking
			}
			return nil
		},
	},
	{
		name: "inconsistent_follow_up",
		eval: func(a *assessment.Answers) *findingTemplate {
			if _, ok := unreliableFollowUp[code(a.FollowUpProcess)]; ok {
				return &tmplInconsistentFollowUp
			}
			return nil
		},
	},
	{
		name: "limited_channel_diversity",
		eval: func(a *assessment.Answers) *findingTemplate {
			if a.DistinctLeadSources() < minLeadChannels {
				return &tmplLimitedChannels
			}
			return nil
		},
	},
	{
		name: "operational_inefficiency",
		eval: func(a *assessment.Answers) *findingTemplate {
			sizes, ok := overstaffedFor[code(a.Revenue)]
			if !ok {
				return nil
			}
			if _, hit := sizes[code(a.Employees)]; hit {
				return &tmplOperationalInefficiency
			}
			return nil
		},
	},
	{
		name: "no_upsell_path",
		eval: func(a *assessment.Answers) *findingTemplate {
			if _, ok := missingUpsell[code(a.OfferUpsells)]; ok {
				return &tmplNoUpsellPath
			}
			return nil
		},
	},
	{
		name: "guesswork_pricing",
		eval: func(a *assessment.Answers) *findingTemplate {
			if _, ok := guessworkPricing[code(a.PricingStrategy)]; ok {
				return &tmplGuessworkPricing
			}
			return nil
		},
	},
	{
		name: "challenge_theme",
		eval: func(a *assessment.Answers) *findingTemplate {
			return matchChallengeTheme(a.BiggestImprovement)
		},
	},
}

// code lowercases and trims an option code for trigger-set lookup.
func code(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Evaluate runs every rule in declaration order against the validated answer
// set and returns the fired findings, padded with generic fillers until the
// report floor is met.  Action steps are attached only when the submission is
// enriched.  Evaluation is pure: it never fails and never mutates the answers.
func Evaluate(a *assessment.Answers) []assessment.Finding {
	enriched := a.Enriched()

	findings := make([]assessment.Finding, 0, len(ruleSet))
	seen := make(map[string]struct{}, len(ruleSet))
	for _, r := range ruleSet {
		tmpl := r.eval(a)
		if tmpl == nil {
			continue
		}
		if _, dup := seen[tmpl.title]; dup {
			continue
		}
		seen[tmpl.title] = struct{}{}
		findings = append(findings, tmpl.finding(enriched))
	}

	// Pad with fillers, in fixed priority order, until the floor is met.
	for i := 0; len(findings) < assessment.MinFindings && i < len(fillerTemplates); i++ {
		tmpl := &fillerTemplates[i]
		if _, dup := seen[tmpl.title]; dup {
			continue
		}
		seen[tmpl.title] = struct{}{}
		findings = append(findings, tmpl.finding(enriched))
	}

	return findings
}

//Personal.AI order the ending
