package store

import (
	"testing"
)

func TestJobStatusValues(t *testing.T) {
	statuses := []JobStatus{StatusPending, StatusCompleted, StatusFailed}
	expected := []string{"pending", "completed", "failed"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestJobFilterDefaults(t *testing.T) {
	f := JobFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Status != nil {
		t.Error("expected nil status filter")
	}
	if f.Group != "" {
		t.Error("expected empty group filter")
	}
}
