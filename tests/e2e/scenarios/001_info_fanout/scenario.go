package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ### Start - fixed configs (no change)
const (
	requestsTotalMetric = "app_http_requests_total"
	callerHeader        = "X-Scenario-Caller"
)

// ### End - fixed configs

type infoResponse struct {
	Hostname string              `json:"hostname"`
	IP       string              `json:"ip"`
	Headers  map[string][]string `json:"headers"`
}

// main runs the e2e scenario: 001_info_fanout
//
// This scenario fans concurrent GET /info calls out to a running instance and
// checks that every caller sees its own request reflected back, then confirms the
// request counter on GET /metrics grew by exactly the number of calls made.
//
// What it tests:
//   - GET /info under concurrency: one hostname for all callers, each response
//     carrying the caller's own headers
//   - GET /metrics text exposition parsing
//   - Exactly one counter increment per completed request
//
// Expected results:
//   - All calls return 200
//   - A single distinct hostname across responses
//   - No response echoes another caller's header
//   - app_http_requests_total{method="GET",route="/info",status_code="200"} grows by the call count
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:3000") // Base URL of the running service
	calls := getEnvInt("CALLS", 100)                       // Number of /info calls
	parallel := getEnvInt("PARALLEL", 20)                  // Number of concurrent callers

	fmt.Println("Starting e2e scenario: 001_info_fanout")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("CALLS: %d\n", calls)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Println()

	before, err := scrapeInfoCounter(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to scrape metrics before run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Counter before run: %v\n", before)

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	hostnames := make(map[string]int)
	var mismatched int64

	for i := 0; i < calls; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(i int) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			caller := fmt.Sprintf("caller-%04d", i)
			resp, err := callInfo(baseURL, caller)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("call %d: %w", i, err))
				return
			}
			hostnames[resp.Hostname]++
			if got := resp.Headers[callerHeader]; len(got) != 1 || got[0] != caller {
				atomic.AddInt64(&mismatched, 1)
			}
		}(i)
	}

	wg.Wait()

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	after, err := scrapeInfoCounter(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to scrape metrics after run: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Calls: %d\n", calls)
	fmt.Printf("Distinct hostnames: %d %v\n", len(hostnames), hostnames)
	fmt.Printf("Mismatched headers: %d\n", atomic.LoadInt64(&mismatched))
	fmt.Printf("Counter delta: %v\n", after-before)

	failed := false
	if len(hostnames) != 1 {
		fmt.Fprintf(os.Stderr, "ERROR: expected one hostname, got %d\n", len(hostnames))
		failed = true
	}
	if atomic.LoadInt64(&mismatched) != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d responses echoed another caller's headers\n", mismatched)
		failed = true
	}
	if after-before != float64(calls) {
		fmt.Fprintf(os.Stderr, "ERROR: counter grew by %v, expected %d\n", after-before, calls)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func callInfo(baseURL, caller string) (*infoResponse, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(callerHeader, caller)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// scrapeInfoCounter returns the request counter for successful GET /info calls,
// or 0 when no such call has been observed yet.
func scrapeInfoCounter(baseURL string) (float64, error) {
	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse metrics: %w", err)
	}

	family, ok := families[requestsTotalMetric]
	if !ok {
		return 0, nil
	}
	for _, m := range family.GetMetric() {
		if hasLabels(m, map[string]string{"method": http.MethodGet, "route": "/info", "status_code": "200"}) {
			return m.GetCounter().GetValue(), nil
		}
	}
	return 0, nil
}

func hasLabels(m *dto.Metric, want map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
