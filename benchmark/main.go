// Package main provides a performance benchmarking tool for the devex CLI.
// It generates synthetic commit datasets of increasing size, measures execution
// times for the analyze and patterns commands, running each test multiple times,
// treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - devex binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic datasets are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoStoreRuns   int
	StoreRuns     int
	ReferenceDate string
	DatasetSizes  map[string]int
	DatasetOrder  []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       5 * time.Minute,
		NoStoreRuns:   3,
		StoreRuns:     4,
		ReferenceDate: "2024-10-08",
		DatasetSizes: map[string]int{
			"small":  1_000,
			"medium": 10_000,
			"large":  100_000,
			"huge":   500_000,
		},
		DatasetOrder: []string{"small", "medium", "large", "huge"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating synthetic datasets in %s...\n", config.WorkDir)
	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the devex binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if devex is available
	if _, err := exec.LookPath("devex"); err != nil {
		return fmt.Errorf("devex binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// generateDatasets writes one commits CSV per configured size and returns their paths
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	rng := rand.New(rand.NewSource(42))
	datasets := make(map[string]string)

	for _, name := range config.DatasetOrder {
		rows := config.DatasetSizes[name]
		path := filepath.Join(config.WorkDir, fmt.Sprintf("commits_%s.csv", name))
		if err := writeCommitsCSV(path, rows, rng); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
		fmt.Printf("  %s: %d rows -> %s\n", name, rows, path)
		datasets[name] = path
	}

	return datasets, nil
}

// writeCommitsCSV generates rows spread across two years straddling the reference date
func writeCommitsCSV(path string, rows int, rng *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "anonymized_name", "message", "lines_added", "lines_deleted", "repository_slug"}); err != nil {
		return err
	}

	start := time.Date(2023, 10, 8, 0, 0, 0, 0, time.UTC)
	repos := []string{"web-app", "api", "mobile", "infra"}
	messages := []string{"fix login bug", "add caching layer", "refactor settings page", "update dependencies"}

	for i := 0; i < rows; i++ {
		day := start.AddDate(0, 0, rng.Intn(730))
		record := []string{
			day.Format("2006-01-02"),
			fmt.Sprintf("P %03d", rng.Intn(200)+1),
			messages[rng.Intn(len(messages))],
			fmt.Sprintf("%d", rng.Intn(400)),
			fmt.Sprintf("%d", rng.Intn(200)),
			repos[rng.Intn(len(repos))],
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across the generated datasets
func runBenchmarks(config BenchmarkConfig, datasets map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-store: %d runs, store: %d runs\n",
		len(datasets), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, name := range config.DatasetOrder {
		fmt.Printf("Benchmarking %s\n", name)
		csvPath := datasets[name]

		// Full comparison analysis
		result := runBenchmarkSuite(config, name, "analyze", "comparison analysis",
			[]string{"--commits-csv", csvPath, "--reference-date", config.ReferenceDate, "--workforce-mode", "both"})
		results = append(results, result)

		// Commit pattern analysis
		result = runBenchmarkSuite(config, name, "patterns", "pattern analysis",
			[]string{"--commits-csv", csvPath, "--reference-date", config.ReferenceDate})
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, description string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(storeArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, append(args, storeArgs...), numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase([]string{"--store-backend", "none"}, config.NoStoreRuns, "No-store")

	// Phase 2: Store runs against a throwaway SQLite database
	dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%s_%s.db", dataset, command))
	coldTime, warmAvg := runPhase([]string{"--store-backend", "sqlite", "--store-db-connect", dbPath}, config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a devex command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	cmdArgs := append([]string{command}, args...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("devex", cmdArgs...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "patterns" {
		return strings.Contains(outputStr, "assertionRate")
	}
	return strings.Contains(outputStr, "metadata")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/devex_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Comparison Analysis:")
	printCommandSummary(results, "patterns", "Pattern Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-store: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
