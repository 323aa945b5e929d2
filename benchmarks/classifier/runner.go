// ABOUTME: Executes classifier benchmark scenarios and collects results
// ABOUTME: Plays scripted turns through a fresh engine per scenario

package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/core"
	"github.com/harper/duality/internal/storage"
)

// BenchmarkRunner executes labeled scenarios against the live pipeline.
type BenchmarkRunner struct {
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a benchmark runner.
func NewBenchmarkRunner(verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}
}

// RunScenario executes one scenario in an isolated in-memory store and
// scores the final turn.
func (r *BenchmarkRunner) RunScenario(scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	store, err := storage.NewStoreInMemory()
	if err != nil {
		return TestResult{}, fmt.Errorf("creating scenario store: %w", err)
	}
	defer store.Close()

	cfg := &config.Config{
		UserID:           1,
		ContextLimit:     config.DefaultContextLimit,
		MaxSessionErrors: 5,
		EmotionalWindow:  24 * time.Hour,
	}
	engine := core.NewEngine(store, cfg)

	var finalPlan *core.TurnPlan
	for _, turn := range scenario.Turns {
		if r.verbose {
			fmt.Printf("[Turn %d] User: %s\n", turn.TurnNumber, turn.UserMessage)
		}

		plan, err := engine.Plan(turn.UserMessage)
		if err != nil {
			return TestResult{}, fmt.Errorf("turn %d failed: %w", turn.TurnNumber, err)
		}
		if turn.TurnNumber == scenario.GroundTruth.FinalTurn {
			finalPlan = plan
		}

		response := turn.AIResponse
		if response == "" {
			response = "Understood."
		}
		if _, err := engine.RecordExchange(plan, response, 0.1); err != nil {
			return TestResult{}, fmt.Errorf("recording turn %d: %w", turn.TurnNumber, err)
		}
	}

	if finalPlan == nil {
		return TestResult{}, fmt.Errorf("scenario %s never reached final turn %d", scenario.ID, scenario.GroundTruth.FinalTurn)
	}

	result := r.metrics.EvaluateScenario(scenario, finalPlan)

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RESULTS: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Classifiers: %.2f\n", result.ClassifierScore)
		fmt.Printf("Advisor: %.2f\n", result.AdvisorScore)
		fmt.Printf("Context: %.2f\n", result.ContextScore)
		fmt.Printf("Overall Score: %.2f\n", result.OverallScore)
		fmt.Printf("Status: %s\n", result.Status)
		fmt.Printf("========================================\n\n")
	}

	return result, nil
}

// RunAllScenarios executes every benchmark scenario in order.
func (r *BenchmarkRunner) RunAllScenarios() ([]TestResult, error) {
	scenarios := GetAllScenarios()
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunScenario(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ExportResults writes a JSON summary of the run.
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	passed, failed := 0, 0
	for _, result := range results {
		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	summary := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"total_tests": len(results),
		"passed":      passed,
		"failed":      failed,
		"results":     results,
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}

	fmt.Printf("Results exported to: %s\n", outputPath)
	return nil
}
