// File: internal/report/sender.go
// Brief: Internal report package implementation for 'sender'.

// sender.go posts serialized reports to the collector endpoint.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DeliveryTimeout bounds a single report POST.
const DeliveryTimeout = 10 * time.Second

// Sender delivers reports over HTTP.
type Sender struct {
	endpoint string
	client   *http.Client
}

// NewSender returns a sender targeting the given endpoint URL.
func NewSender(endpoint string) *Sender {
	return &Sender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DeliveryTimeout},
	}
}

// Send POSTs the report as JSON. A non-2xx response counts as a delivery
// failure; retrying is left to the next report cycle.
func (s *Sender) Send(ctx context.Context, rep Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post report: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("report endpoint returned %s", resp.Status)
	}
	return nil
}
