package sidekick_gpt

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// ---------------------------------------------------------------------------
// System prompt
// ---------------------------------------------------------------------------

// systemPrompt fixes the Profit Sidekick persona and the hard output rules.
// The JSON shape and the scoring contract are repeated in the user prompt so
// weaker models see them twice.
const systemPrompt = `You are the Profit Sidekick, a sharp but warm small-business ` +
	`profit advisor. You analyse questionnaire answers from a business owner and ` +
	`identify the specific places their business is leaking profit. You are ` +
	`encouraging, concrete and never condescending. You respond with a single ` +
	`JSON object and nothing else: no markdown fences, no commentary before or ` +
	`after the JSON.`

// ---------------------------------------------------------------------------
// User prompt template
// ---------------------------------------------------------------------------

// userPromptTemplate renders the full questionnaire into the analysis request.
// Every answer is passed through verbatim; empty optional answers render as
// "not answered" so the model never invents a value.
const userPromptTemplate = `Analyse this business for profit leaks.

BUSINESS PROFILE
- Business type: {{orNA .BusinessType}}
- What they sell: {{orNA .BusinessOffering}}
- Annual revenue bracket: {{orNA .Revenue}}
- Team size: {{orNA .Employees}}
- Growth plan: {{orNA .GrowthPlan}}

LEAD FLOW AND SALES
- Lead sources: {{joinOrNA .LeadSources}}
- Lead/customer tracking: {{orNA .TrackingSystem}}
- Follow-up process: {{orNA .FollowUpProcess}}
- Offers upsells: {{orNA .OfferUpsells}}

PRICING AND PROFIT
- Pricing strategy: {{orNA .PricingStrategy}}
- Knows profit per sale: {{orNA .ProfitAwareness}}
- Knows customer lifetime value: {{orNA .ValueAwareness}}
- Reviews expenses: {{orNA .ExpenseReview}}
- Automation potential: {{orNA .AutomationPotential}}

FINANCIAL HABITS
- Financial review frequency: {{orNA .FinancialReviewFrequency}}
- Cash flow tracking: {{orNA .CashFlowTracking}}
- Knows business valuation: {{orNA .BusinessValuation}}

IN THEIR OWN WORDS
"{{orNA .BiggestImprovement}}"

Respond with exactly one JSON object of this shape:
{
  "summary": "one paragraph overview of where this business is leaking profit",
  "profitLeaks": [
    {
      "title": "short leak name",
      "description": "2-3 sentences on what is leaking and why it costs money",
      "potentialImpact": "Low | Medium | High | Critical"{{if .Enriched}},
      "actionableInsights": ["step 1", "step 2", "step 3"]{{end}}
    }
  ],
  "recommendation": "the single most important next step"{{if .Enriched}},
  "profitPerformanceScore": {
    "score": 0,
    "label": "Profit Pro | Leaky but Fixable | Profit Drip Zone | Emergency Mode",
    "summary": "one sentence on the overall health"
  },
  "empathyMessage": "one warm sentence acknowledging how hard running a business is",
  "patchPlan": ["first fix", "second fix", "third fix"],
  "estimatedRecoveryRange": {
    "monthlyMin": 0,
    "monthlyMax": 0,
    "note": "one sentence qualifying the estimate"
  }{{end}}
}

Rules:
- profitLeaks must contain between 3 and 5 entries, ordered most expensive first.
- potentialImpact must be exactly one of: Low, Medium, High, Critical.
{{- if .Enriched}}
- actionableInsights must contain exactly 3 concrete steps per leak.
- score is an integer from 0 to 100. Label by score: 80-100 "Profit Pro",
  60-79 "Leaky but Fixable", 40-59 "Profit Drip Zone", 0-39 "Emergency Mode".
- patchPlan must contain exactly 3 steps.
{{- else}}
- Do not include actionableInsights, profitPerformanceScore, empathyMessage,
  patchPlan or estimatedRecoveryRange.
{{- end}}
- Output raw JSON only.`

// promptData is the template context: the answers plus the enrichment flag.
type promptData struct {
	*assessment.Answers
	Enriched bool
}

var promptFuncs = template.FuncMap{
	"orNA": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "not answered"
		}
		return strings.TrimSpace(s)
	},
	"joinOrNA": func(ss []string) string {
		out := make([]string, 0, len(ss))
		for _, s := range ss {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return "not answered"
		}
		return strings.Join(out, ", ")
	},
}

var (
	userTmpl     *template.Template
	userTmplOnce sync.Once
	userTmplErr  error
)

// BuildMessages renders the system and user turns for one analysis call.
func BuildMessages(a *assessment.Answers) ([]Message, error) {
	userTmplOnce.Do(func() {
		userTmpl, userTmplErr = template.New("sidekick_user").
			Funcs(promptFuncs).
			Parse(userPromptTemplate)
	})
	if userTmplErr != nil {
		return nil, errors.Wrap(userTmplErr, errors.ErrCodeInternal, "parsing prompt template")
	}

	var buf bytes.Buffer
	data := promptData{Answers: a, Enriched: a.Enriched()}
	if err := userTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "rendering prompt template")
	}

	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: buf.String()},
	}, nil
}

//Personal.AI order the ending
