// ABOUTME: Command-line benchmark runner for the heuristic classifiers
// ABOUTME: Replays labeled conversations offline and reports accuracy

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harper/duality/benchmarks/classifier"
)

func main() {
	testID := flag.String("test", "", "Run a single scenario by ID. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("Duality Classifier Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner := classifier.NewBenchmarkRunner(*verbose)

	var results []classifier.TestResult
	var err error

	if *testID == "" {
		fmt.Println("Running all classifier benchmark scenarios...")
		fmt.Println()

		results, err = runner.RunAllScenarios()
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := findScenario(*testID)
		if !ok {
			log.Fatalf("Unknown scenario ID: %s (valid options: %v)", *testID, scenarioIDs())
		}

		fmt.Printf("Running scenario: %s\n\n", scenario.Name)

		result, err := runner.RunScenario(scenario)
		if err != nil {
			log.Fatalf("Scenario failed: %v", err)
		}
		results = []classifier.TestResult{result}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		fmt.Printf("  Classifiers: %.2f\n", result.ClassifierScore)
		fmt.Printf("  Advisor: %.2f\n", result.AdvisorScore)
		fmt.Printf("  Context: %.2f\n", result.ContextScore)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Scenarios: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func findScenario(id string) (classifier.TestScenario, bool) {
	for _, scenario := range classifier.GetAllScenarios() {
		if scenario.ID == id {
			return scenario, true
		}
	}
	return classifier.TestScenario{}, false
}

func scenarioIDs() []string {
	scenarios := classifier.GetAllScenarios()
	ids := make([]string, len(scenarios))
	for i, scenario := range scenarios {
		ids[i] = scenario.ID
	}
	return ids
}
