package main

import (
	"sync"
	"time"

	"github.com/example/ingress-observer/internal/report"
)

const defaultMaxReports = 100

// storedReport wraps a received report with its arrival timestamp.
type storedReport struct {
	Timestamp time.Time     `json:"timestamp"`
	Report    report.Report `json:"report"`
}

// reportStore retains the most recent reports in a fixed-capacity ring,
// trimming the oldest on overflow.
type reportStore struct {
	mu       sync.Mutex
	capacity int
	reports  []storedReport
}

func newReportStore(capacity int) *reportStore {
	if capacity <= 0 {
		capacity = defaultMaxReports
	}
	return &reportStore{capacity: capacity}
}

// Add pushes a report into the ring, trimming old entries.
func (s *reportStore) Add(r storedReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	if len(s.reports) > s.capacity {
		trim := len(s.reports) - s.capacity
		s.reports = s.reports[trim:]
	}
}

// List returns the retained reports, newest first.
func (s *reportStore) List() []storedReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storedReport, len(s.reports))
	for i, r := range s.reports {
		out[len(s.reports)-1-i] = r
	}
	return out
}

// Len returns the number of retained reports.
func (s *reportStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}
