// Package main provides a performance benchmarking tool for the Relgate CLI.
// It measures decision latency across generated comparison sets of different
// sizes, running each test multiple times, treating the first successful run
// with a history backend as cold and averaging the rest as warm, and
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - relgate binary installed and available in PATH
// - git binary available in PATH (a throwaway repository is created per run)
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where fixture repositories and files are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario      string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	ModuleCounts  map[string]int
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
		Timeout:       1 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		ModuleCounts: map[string]int{
			"small":  5,
			"medium": 50,
			"large":  500,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	repoPath, err := setupFixtureRepo(config)
	if err != nil {
		fmt.Printf("Fixture setup failed: %v\n", err)
		os.Exit(1)
	}

	// Clear any leftover decision history before timing
	fmt.Printf("Clearing history...\n")
	clearCmd := exec.Command("relgate", "history", "clear", "--history-backend", "sqlite")
	clearCmd.Dir = repoPath
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("History cleared successfully\n")
	}

	results := runBenchmarks(config, repoPath)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the relgate and git binaries are available
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("relgate"); err != nil {
		return fmt.Errorf("relgate binary not found in PATH")
	}
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// setupFixtureRepo creates a throwaway git repository with a single commit so
// the CLI has a real branch and commit message to resolve.
func setupFixtureRepo(config BenchmarkConfig) (string, error) {
	repoPath := filepath.Join(config.WorkDir, "relgate-bench-repo")
	_ = os.RemoveAll(repoPath)
	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		return "", err
	}

	commands := [][]string{
		{"init", "--initial-branch", "main"},
		{"config", "user.email", "bench@example.com"},
		{"config", "user.name", "Bench"},
		{"commit", "--allow-empty", "-m", "bench: initial commit"},
	}
	for _, args := range commands {
		fullArgs := append([]string{"-C", repoPath}, args...)
		if output, err := exec.Command("git", fullArgs...).CombinedOutput(); err != nil {
			return "", fmt.Errorf("git %v: %s", args, output)
		}
	}
	return repoPath, nil
}

// writeComparisonsFixture generates a comparisons JSON file with the given
// number of modules, half of them changed.
func writeComparisonsFixture(config BenchmarkConfig, scenario string, count int) (string, error) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		changed := i%2 == 0
		fmt.Fprintf(&sb, `{"module":"com.example:%s-module-%03d","changed":%t,"description":"generated fixture entry %d"}`,
			scenario, i, changed, i)
	}
	sb.WriteString("]")

	path := filepath.Join(config.WorkDir, fmt.Sprintf("comparisons_%s.json", scenario))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// runBenchmarks executes all benchmark tests across configured scenarios
func runBenchmarks(config BenchmarkConfig, repoPath string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.ModuleCounts), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, scenario := range []string{"small", "medium", "large"} {
		count := config.ModuleCounts[scenario]
		fmt.Printf("Benchmarking %s (%d modules)\n", scenario, count)

		comparisonsPath, err := writeComparisonsFixture(config, scenario, count)
		if err != nil {
			fmt.Printf("Warning: skipping %s, fixture generation failed: %v\n", scenario, err)
			continue
		}

		// Report decision
		desc := fmt.Sprintf("report decision (%d modules)", count)
		result := runBenchmarkSuite(config, scenario, repoPath, "report", desc, "--comparisons "+comparisonsPath)
		results = append(results, result)

		// Assert decision
		desc = fmt.Sprintf("assert decision (%d modules)", count)
		result = runBenchmarkSuite(config, scenario, repoPath, "assert", desc, "--comparisons "+comparisonsPath)
		results = append(results, result)
	}

	// History reads after the suites above have populated the store
	result := runBenchmarkSuite(config, "history", repoPath, "history", "history recent reads", "recent --limit 20")
	results = append(results, result)

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, scenario, repoPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, scenario)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repoPath, command, extraArgs, historyBackend, numRuns)
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

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Scenario:      scenario,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a relgate command multiple times with the specified
// history backend and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, repoPath, command, extraArgs, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}
	args = append(args, "--history-backend", historyBackend)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("relgate", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			// assert exits nonzero when no release is needed; the decision
			// still completed, so success is judged from the output
			if (cmdErr == nil || command == "assert") && isSuccess(output, command) {
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

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates a completed decision or read
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "history" {
		return strings.Contains(outputStr, "decisions") || strings.Contains(outputStr, "No decisions recorded yet.")
	}
	return strings.Contains(outputStr, "Decision completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/relgate_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"scenario", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Scenario, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "report", "Report Decisions:")
	printCommandSummary(results, "assert", "Assert Decisions:")
	printCommandSummary(results, "history", "History Reads:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-history: %s, Cold: %s, Warm: %s\n", result.Scenario, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
