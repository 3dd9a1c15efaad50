package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, maxReports int) *server {
	t.Helper()
	srv, err := newServer(serverConfig{ListenAddr: ":0", MaxReports: maxReports})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	return srv
}

func (s *server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

func TestReceiveReportAndHealth(t *testing.T) {
	srv := newTestServer(t, 10)

	payload := `{"cluster":"local-minikube","ingresses":[{"namespace":"ns1","name":"ing1","host":"a.example.com"}]}`
	rr := srv.do(t, http.MethodPost, "/report", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("post report: got status %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Status      string `json:"status"`
		ReportCount int    `json:"report_count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "received" || resp.ReportCount != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}

	rr = srv.do(t, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health: got status %d", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"report_count": 1`) {
		t.Fatalf("expected report_count 1 in health body, got %s", body)
	}
}

func TestReceiveMalformedReportIsRejected(t *testing.T) {
	srv := newTestServer(t, 10)
	rr := srv.do(t, http.MethodPost, "/report", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rr.Code)
	}
	if srv.store.Len() != 0 {
		t.Fatalf("malformed report must not be stored")
	}
}

func TestReceiveReportRejectsNonPost(t *testing.T) {
	srv := newTestServer(t, 10)
	rr := srv.do(t, http.MethodGet, "/report", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRingEvictionVisibleInListing(t *testing.T) {
	srv := newTestServer(t, 2)
	for i := 1; i <= 3; i++ {
		payload := fmt.Sprintf(`{"cluster":"cluster-%d","ingresses":[]}`, i)
		if rr := srv.do(t, http.MethodPost, "/report", payload); rr.Code != http.StatusOK {
			t.Fatalf("post %d: got status %d", i, rr.Code)
		}
	}

	rr := srv.do(t, http.MethodGet, "/api/reports", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("api/reports: got status %d", rr.Code)
	}
	var resp struct {
		Reports []storedReport `json:"reports"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(resp.Reports) != 2 {
		t.Fatalf("expected 2 retained reports, got %d", len(resp.Reports))
	}
	if resp.Reports[0].Report.Cluster != "cluster-3" || resp.Reports[1].Report.Cluster != "cluster-2" {
		t.Fatalf("expected newest-first [cluster-3 cluster-2], got [%s %s]",
			resp.Reports[0].Report.Cluster, resp.Reports[1].Report.Cluster)
	}

	html := srv.do(t, http.MethodGet, "/", "")
	if html.Code != http.StatusOK {
		t.Fatalf("index: got status %d", html.Code)
	}
	body := html.Body.String()
	if strings.Contains(body, "cluster-1") {
		t.Fatalf("evicted report still rendered")
	}
	if !strings.Contains(body, "cluster-2") || !strings.Contains(body, "cluster-3") {
		t.Fatalf("retained reports missing from listing: %s", body)
	}
}

func TestIndexRendersEmptyState(t *testing.T) {
	srv := newTestServer(t, 10)
	rr := srv.do(t, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("index: got status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No reports received yet.") {
		t.Fatalf("expected empty-state message, got %s", rr.Body.String())
	}
}
