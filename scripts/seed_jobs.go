// seed_jobs.go — standalone script to seed sample weight jobs via the blend API.
//
// Usage:
//
//	go run scripts/seed_jobs.go -api http://localhost:8700 -count 5
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
)

type jobRequest struct {
	Group          string    `json:"group,omitempty"`
	Coordinate     string    `json:"coordinate"`
	Method         string    `json:"method,omitempty"`
	RawWeights     []float64 `json:"raw_weights"`
	ExpectedValues []float64 `json:"expected_values,omitempty"`
	ActualValues   []float64 `json:"actual_values"`
}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "blend API base URL")
	count := flag.Int("count", 5, "number of jobs to create")
	dryRun := flag.Bool("dry-run", false, "print jobs without posting")
	flag.Parse()

	base := 1484002800.0 // 2017-01-09 23:00 UTC
	for i := 0; i < *count; i++ {
		members := 3 + rand.Intn(4)
		expected := make([]float64, members)
		raw := make([]float64, members)
		for j := range expected {
			expected[j] = base + float64(j)*3600
			raw[j] = 1 + rand.Float64()*9
		}
		// Drop one member occasionally so redistribution has work to do.
		actual := expected
		if members > 3 && i%2 == 1 {
			actual = expected[1:]
		}

		method := "evenly"
		if i%3 == 0 {
			method = "proportional"
		}
		job := jobRequest{
			Group:          fmt.Sprintf("seed-group-%d", i),
			Coordinate:     "time",
			Method:         method,
			RawWeights:     raw,
			ExpectedValues: expected,
			ActualValues:   actual,
		}

		if *dryRun {
			out, _ := json.MarshalIndent(job, "", "  ")
			fmt.Println(string(out))
			continue
		}

		body, err := json.Marshal(job)
		if err != nil {
			log.Fatalf("marshal job: %v", err)
		}
		resp, err := http.Post(*apiURL+"/api/v1/jobs", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("post job: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			log.Fatalf("unexpected status %d", resp.StatusCode)
		}
		resp.Body.Close()
		fmt.Printf("created job %d (%s, %d members)\n", i, method, members)
	}
}
