package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/ingress-observer/internal/report"
)

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var rep report.Report
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&rep); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid report payload: " + err.Error()})
		return
	}
	s.store.Add(storedReport{
		Timestamp: time.Now().UTC(),
		Report:    rep,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "received",
		"report_count": s.store.Len(),
	})
}

func (s *server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reports": s.store.List(),
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"report_count": s.store.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
