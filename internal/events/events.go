package events

import "time"

type WeightsComputedEvent struct {
	JobID         string    `json:"job_id"`
	Group         string    `json:"group,omitempty"`
	Coordinate    string    `json:"coordinate"`
	Method        string    `json:"method"`
	ExpectedCount int       `json:"expected_count"`
	PresentCount  int       `json:"present_count"`
	Weights       []float64 `json:"weights"`
	Timestamp     time.Time `json:"timestamp"`
}

type WeightsFailedEvent struct {
	JobID      string    `json:"job_id"`
	Group      string    `json:"group,omitempty"`
	Coordinate string    `json:"coordinate"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}
