package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type BenchmarkResult struct {
	Name       string
	Framework  string
	Category   string
	Scenario   string
	Iterations int64
	NsPerOp    float64
	BytesPerOp int64
	AllocsOp   int64
}

type CategoryResults struct {
	Category string
	Results  []BenchmarkResult
}

var frameworkColors = map[string]text.Colors{
	"Dijay": {text.FgGreen},
	"Do":    {text.FgYellow},
	"Dig":   {text.FgMagenta},
	"Fx":    {text.FgBlue},
}

var categoryTitles = map[string]string{
	"Provide_Simple":       "Provider Registration (Simple)",
	"Provide_Chain":        "Provider Registration (Dependency Chain)",
	"Invoke_Singleton":     "Service Resolution (Singleton)",
	"Invoke_Chain":         "Service Resolution (Dependency Chain)",
	"Invoke_Request":       "Service Resolution (Request Scope)",
	"Named_10":             "Named Services (10 services)",
	"Lifecycle_10":         "Lifecycle Start/Stop (10 services)",
	"Lifecycle_50":         "Lifecycle Start/Stop (50 services)",
	"LifecycleWithWork_10": "Lifecycle with Work (10 services, 1ms each)",
	"LifecycleWithWork_50": "Lifecycle with Work (50 services, 1ms each)",
}

func main() {
	fmt.Println(text.Bold.Sprint("Dijay DI Framework Benchmark Suite"))
	fmt.Println()

	fmt.Println(text.Faint.Sprint("Running benchmarks..."))
	fmt.Println()

	benchDir := ".."
	if len(os.Args) > 1 && os.Args[1] != "--json" {
		benchDir = os.Args[1]
	}

	cmd := exec.Command("go", "test", "-bench=.", "-benchmem", "-count=3", "-benchtime=100ms")
	cmd.Dir = benchDir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Benchmark failed: %s\n", string(exitErr.Stderr))
		}
		os.Exit(1)
	}

	results := parseResults(output)
	grouped := groupByCategory(results)

	for _, cat := range grouped {
		printCategory(cat)
	}

	printSummary(grouped)

	if len(os.Args) > 1 && os.Args[1] == "--json" {
		exportJSON(results)
	}
}

func parseResults(output []byte) []BenchmarkResult {
	var results []BenchmarkResult
	benchPattern := regexp.MustCompile(`^Benchmark(\w+)-\d+\s+(\d+)\s+([\d.]+) ns/op\s+(\d+) B/op\s+(\d+) allocs/op`)
	namePattern := regexp.MustCompile(`^([^_]+)_([^_]+)_(\w+)$`)

	seen := make(map[string][]BenchmarkResult)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		matches := benchPattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.ParseInt(matches[2], 10, 64)
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)
		bytesPerOp, _ := strconv.ParseInt(matches[4], 10, 64)
		allocsOp, _ := strconv.ParseInt(matches[5], 10, 64)

		nameParts := namePattern.FindStringSubmatch(name)
		var category, scenario, framework string
		if nameParts != nil {
			category = nameParts[1]
			scenario = nameParts[2]
			framework = nameParts[3]
		} else {
			parts := strings.Split(name, "_")
			if len(parts) >= 2 {
				framework = parts[len(parts)-1]
				category = parts[0]
				scenario = strings.Join(parts[1:len(parts)-1], "_")
			}
		}

		key := name
		seen[key] = append(
			seen[key], BenchmarkResult{
				Name:       name,
				Framework:  framework,
				Category:   category,
				Scenario:   scenario,
				Iterations: iterations,
				NsPerOp:    nsPerOp,
				BytesPerOp: bytesPerOp,
				AllocsOp:   allocsOp,
			},
		)
	}

	for _, runs := range seen {
		if len(runs) == 0 {
			continue
		}

		var totalNs float64
		var totalBytes, totalAllocs int64
		for _, r := range runs {
			totalNs += r.NsPerOp
			totalBytes += r.BytesPerOp
			totalAllocs += r.AllocsOp
		}
		count := float64(len(runs))

		avg := runs[0]
		avg.NsPerOp = totalNs / count
		avg.BytesPerOp = int64(float64(totalBytes) / count)
		avg.AllocsOp = int64(float64(totalAllocs) / count)
		results = append(results, avg)
	}

	return results
}

func groupByCategory(results []BenchmarkResult) []CategoryResults {
	groups := make(map[string][]BenchmarkResult)
	for _, r := range results {
		key := r.Category + "_" + r.Scenario
		groups[key] = append(groups[key], r)
	}

	var ordered []CategoryResults
	categoryOrder := []string{
		"Provide_Simple", "Provide_Chain",
		"Invoke_Singleton", "Invoke_Chain", "Invoke_Request",
		"Named_10",
		"Lifecycle_10", "Lifecycle_50",
		"LifecycleWithWork_10", "LifecycleWithWork_50",
	}

	for _, catKey := range categoryOrder {
		if results, ok := groups[catKey]; ok {
			sort.Slice(
				results, func(i, j int) bool {
					return results[i].NsPerOp < results[j].NsPerOp
				},
			)
			ordered = append(
				ordered, CategoryResults{
					Category: catKey,
					Results:  results,
				},
			)
		}
	}

	for key, results := range groups {
		if !slices.Contains(categoryOrder, key) {
			sort.Slice(
				results, func(i, j int) bool {
					return results[i].NsPerOp < results[j].NsPerOp
				},
			)
			ordered = append(
				ordered, CategoryResults{
					Category: key,
					Results:  results,
				},
			)
		}
	}

	return ordered
}

func printCategory(cat CategoryResults) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(formatCategoryTitle(cat.Category))
	t.AppendHeader(table.Row{"Framework", "Time/op", "Bytes/op", "Allocs/op", "Relative"})
	t.SetColumnConfigs(
		[]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
		},
	)

	if len(cat.Results) == 0 {
		t.AppendRow(table.Row{"No results"})
		t.Render()
		fmt.Println()
		return
	}

	fastest := cat.Results[0].NsPerOp
	for i, r := range cat.Results {
		relative := "fastest"
		if i > 0 && fastest > 0 {
			relative = fmt.Sprintf("%.1fx slower", r.NsPerOp/fastest)
		}

		t.AppendRow(
			table.Row{
				colorize(r.Framework),
				formatNs(r.NsPerOp),
				fmt.Sprintf("%d B", r.BytesPerOp),
				r.AllocsOp,
				relative,
			},
		)
	}

	t.Render()
	fmt.Println()
}

func colorize(framework string) string {
	if colors, ok := frameworkColors[framework]; ok {
		return colors.Sprint(framework)
	}
	return framework
}

func formatCategoryTitle(cat string) string {
	if title, ok := categoryTitles[cat]; ok {
		return title
	}
	return strings.ReplaceAll(cat, "_", " ")
}

func formatNs(ns float64) string {
	if ns >= 1_000_000 {
		return fmt.Sprintf("%.2f ms", ns/1_000_000)
	}
	if ns >= 1_000 {
		return fmt.Sprintf("%.2f us", ns/1_000)
	}
	return fmt.Sprintf("%.0f ns", ns)
}

func printSummary(groups []CategoryResults) {
	wins := make(map[string]int)
	for _, cat := range groups {
		if len(cat.Results) > 0 {
			wins[cat.Results[0].Framework]++
		}
	}

	type frameworkWins struct {
		name string
		wins int
	}

	var sorted []frameworkWins
	for name, count := range wins {
		sorted = append(sorted, frameworkWins{name, count})
	}
	sort.Slice(
		sorted, func(i, j int) bool {
			return sorted[i].wins > sorted[j].wins
		},
	)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Summary")
	t.AppendHeader(table.Row{"#", "Framework", "Wins"})

	total := len(groups)
	for i, fw := range sorted {
		t.AppendRow(table.Row{i + 1, colorize(fw.name), fmt.Sprintf("%d/%d", fw.wins, total)})
	}
	t.Render()

	fmt.Println()
	fmt.Println(text.Bold.Sprint("Frameworks compared:"))
	fmt.Printf("  %s     - This library (github.com/danpasecinic/dijay)\n", colorize("Dijay"))
	fmt.Printf("  %s - Generics-based DI (github.com/samber/do)\n", frameworkColors["Do"].Sprint("samber/do"))
	fmt.Printf("  %s  - Reflection-based DI (go.uber.org/dig)\n", frameworkColors["Dig"].Sprint("uber/dig"))
	fmt.Printf("  %s   - Full application framework (go.uber.org/fx)\n", frameworkColors["Fx"].Sprint("uber/fx"))
	fmt.Println()
}

func exportJSON(results []BenchmarkResult) {
	output := struct {
		Benchmarks []BenchmarkResult `json:"benchmarks"`
	}{
		Benchmarks: results,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	_ = os.WriteFile("benchmark_results.json", data, 0644)
	fmt.Println(text.Faint.Sprint("Results exported to benchmark_results.json"))
}
