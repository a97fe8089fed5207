package assessment

import "fmt"

// ─────────────────────────────────────────────────────────────────────────────
// ImpactLevel
// ─────────────────────────────────────────────────────────────────────────────

// ImpactLevel is the ordered severity classification of a profit leak.
type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "Low"
	ImpactMedium   ImpactLevel = "Medium"
	ImpactHigh     ImpactLevel = "High"
	ImpactCritical ImpactLevel = "Critical"
)

// impactRanks orders the levels from least to most severe.
var impactRanks = map[ImpactLevel]int{
	ImpactLow:      0,
	ImpactMedium:   1,
	ImpactHigh:     2,
	ImpactCritical: 3,
}

// IsValid returns true when the level is a known enumeration value.
func (l ImpactLevel) IsValid() bool {
	_, ok := impactRanks[l]
	return ok
}

// Rank returns the severity order of the level (Low=0 … Critical=3).
// Unknown levels rank below Low.
func (l ImpactLevel) Rank() int {
	if r, ok := impactRanks[l]; ok {
		return r
	}
	return -1
}

// ─────────────────────────────────────────────────────────────────────────────
// Finding
// ─────────────────────────────────────────────────────────────────────────────

// ActionStepCount is the number of remediation steps attached to a finding in
// enriched mode.  A finding carries exactly this many steps or none at all.
const ActionStepCount = 3

// Finding is one diagnosed profit leak: an operational deficiency likely
// costing the business money.
type Finding struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	PotentialImpact ImpactLevel `json:"potentialImpact"`

	// ActionableInsights is present only for enriched submissions and then
	// holds exactly ActionStepCount ordered remediation steps.
	ActionableInsights []string `json:"actionableInsights,omitempty"`
}

// Validate checks the structural invariants of a single finding.
func (f *Finding) Validate() error {
	if f.Title == "" {
		return fmt.Errorf("finding title must not be empty")
	}
	if f.Description == "" {
		return fmt.Errorf("finding %q: description must not be empty", f.Title)
	}
	if !f.PotentialImpact.IsValid() {
		return fmt.Errorf("finding %q: unknown impact level %q", f.Title, f.PotentialImpact)
	}
	if len(f.ActionableInsights) != 0 && len(f.ActionableInsights) != ActionStepCount {
		return fmt.Errorf("finding %q: expected %d action steps, got %d",
			f.Title, ActionStepCount, len(f.ActionableInsights))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// PerformanceScore
// ─────────────────────────────────────────────────────────────────────────────

// PerformanceScore is the aggregate 0-100 health rating of the business.
type PerformanceScore struct {
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

// Score labels, assigned by fixed breakpoints.
const (
	LabelProfitPro       = "Profit Pro"        // 80-100
	LabelLeakyButFixable = "Leaky but Fixable" // 60-79
	LabelProfitDripZone  = "Profit Drip Zone"  // 40-59
	LabelEmergencyMode   = "Emergency Mode"    // 0-39
)

// LabelForScore maps a 0-100 score to its label.  The breakpoints are a fixed
// contract shared by the deterministic engine, the model prompt, and clients.
func LabelForScore(score int) string {
	switch {
	case score >= 80:
		return LabelProfitPro
	case score >= 60:
		return LabelLeakyButFixable
	case score >= 40:
		return LabelProfitDripZone
	default:
		return LabelEmergencyMode
	}
}

// Validate checks the score range and the score/label pairing.
func (s *PerformanceScore) Validate() error {
	if s.Score < 0 || s.Score > 100 {
		return fmt.Errorf("score %d out of range [0,100]", s.Score)
	}
	if want := LabelForScore(s.Score); s.Label != want {
		return fmt.Errorf("score %d labelled %q, want %q", s.Score, s.Label, want)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Report
// ─────────────────────────────────────────────────────────────────────────────

// Finding cardinality bounds enforced on every report, regardless of which
// path produced it.
const (
	MinFindings = 3
	MaxFindings = 5
)

// RecoveryRange is a coarse monthly revenue-recovery estimate.
type RecoveryRange struct {
	MonthlyMin float64 `json:"monthlyMin"`
	MonthlyMax float64 `json:"monthlyMax"`
	Note       string  `json:"note"`
}

// Report is the complete analysis handed to the presentation layer.  The
// score, empathy message, patch plan and recovery range are present only for
// enriched submissions.
type Report struct {
	Summary        string    `json:"summary"`
	ProfitLeaks    []Finding `json:"profitLeaks"`
	Recommendation string    `json:"recommendation"`

	ProfitPerformanceScore *PerformanceScore `json:"profitPerformanceScore,omitempty"`
	EmpathyMessage         string            `json:"empathyMessage,omitempty"`
	PatchPlan              []string          `json:"patchPlan,omitempty"`
	EstimatedRecoveryRange *RecoveryRange    `json:"estimatedRecoveryRange,omitempty"`
}

// Validate checks every structural invariant of the report: non-empty summary
// and recommendation, finding cardinality within [MinFindings, MaxFindings],
// per-finding invariants, score range/label pairing, and patch plan length.
func (r *Report) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("report summary must not be empty")
	}
	if r.Recommendation == "" {
		return fmt.Errorf("report recommendation must not be empty")
	}
	if n := len(r.ProfitLeaks); n < MinFindings || n > MaxFindings {
		return fmt.Errorf("report has %d findings, want between %d and %d",
			n, MinFindings, MaxFindings)
	}
	for i := range r.ProfitLeaks {
		if err := r.ProfitLeaks[i].Validate(); err != nil {
			return err
		}
	}
	if r.ProfitPerformanceScore != nil {
		if err := r.ProfitPerformanceScore.Validate(); err != nil {
			return err
		}
	}
	if len(r.PatchPlan) != 0 && len(r.PatchPlan) != ActionStepCount {
		return fmt.Errorf("patch plan has %d steps, want %d", len(r.PatchPlan), ActionStepCount)
	}
	if rr := r.EstimatedRecoveryRange; rr != nil && rr.MonthlyMin > rr.MonthlyMax {
		return fmt.Errorf("recovery range min %.0f exceeds max %.0f", rr.MonthlyMin, rr.MonthlyMax)
	}
	return nil
}

//Personal.AI order the ending
