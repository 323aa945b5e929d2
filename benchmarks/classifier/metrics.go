// ABOUTME: Scoring for classifier benchmark runs
// ABOUTME: Compares final-turn plans against ground truth, field by field

package classifier

import (
	"fmt"
	"strings"

	"github.com/harper/duality/internal/core"
)

// Scores at or above this on every component count as a pass.
const passThreshold = 0.9

// TestResult is the outcome of one scenario.
type TestResult struct {
	TestID          string                 `json:"test_id"`
	TestName        string                 `json:"test_name"`
	ClassifierScore float64                `json:"classifier_score"`
	AdvisorScore    float64                `json:"advisor_score"`
	ContextScore    float64                `json:"context_score"`
	OverallScore    float64                `json:"overall_score"`
	Status          string                 `json:"status"`
	Details         map[string]interface{} `json:"details"`
}

// MetricsCalculator scores plans against scenario ground truth.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a metrics calculator.
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// scoreCard accumulates checked-vs-matched counts for one component.
type scoreCard struct {
	checked int
	matched int
	misses  []string
}

func (c *scoreCard) check(field, got, want string) {
	if want == "" {
		return
	}
	c.checked++
	if got == want {
		c.matched++
		return
	}
	c.misses = append(c.misses, fmt.Sprintf("%s: got %q, want %q", field, got, want))
}

// score returns the fraction matched, 1.0 when nothing was checked.
func (c *scoreCard) score() float64 {
	if c.checked == 0 {
		return 1.0
	}
	return float64(c.matched) / float64(c.checked)
}

func (c *scoreCard) detail() string {
	if len(c.misses) == 0 {
		return fmt.Sprintf("all %d checks matched", c.checked)
	}
	return strings.Join(c.misses, "; ")
}

// EvaluateScenario scores the final-turn plan against the scenario's
// ground truth and builds the result.
func (m *MetricsCalculator) EvaluateScenario(scenario TestScenario, plan *core.TurnPlan) TestResult {
	gt := scenario.GroundTruth

	var classifiers scoreCard
	classifiers.check("pattern", string(plan.Pattern), gt.Pattern)
	classifiers.check("sentiment", plan.Sentiment.Label, gt.SentimentLabel)
	classifiers.check("emotion", plan.Sentiment.Emotion, gt.Emotion)
	classifiers.check("mood", noneIfEmpty(plan.SuggestedMood), gt.Mood)

	var advisor scoreCard
	gotType, gotTarget := "none", ""
	if plan.Suggestion != nil {
		gotType = string(plan.Suggestion.Type)
		gotTarget = plan.Suggestion.Recommended
	}
	advisor.check("suggestion_type", gotType, gt.SuggestionType)
	advisor.check("suggestion_target", gotTarget, gt.SuggestionTarget)

	var context scoreCard
	gotContext := "skipped"
	if plan.UsingContext() {
		gotContext = "used"
	}
	context.check("context", gotContext, gt.Context)

	classifierScore := classifiers.score()
	advisorScore := advisor.score()
	contextScore := context.score()
	overall := (classifierScore + advisorScore + contextScore) / 3.0

	status := "FAIL"
	if classifierScore >= passThreshold && advisorScore >= passThreshold && contextScore >= passThreshold {
		status = "PASS"
	}

	return TestResult{
		TestID:          scenario.ID,
		TestName:        scenario.Name,
		ClassifierScore: classifierScore,
		AdvisorScore:    advisorScore,
		ContextScore:    contextScore,
		OverallScore:    overall,
		Status:          status,
		Details: map[string]interface{}{
			"classifier_detail": classifiers.detail(),
			"advisor_detail":    advisor.detail(),
			"context_detail":    context.detail(),
			"final_input":       plan.Input,
		},
	}
}

func noneIfEmpty(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
