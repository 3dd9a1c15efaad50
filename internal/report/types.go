// File: internal/report/types.go
// Brief: Internal report package implementation for 'types'.

// Package report assembles and delivers the periodic ingress summary sent to
// the collector endpoint.
package report

import (
	"context"
	"time"
)

// Certificate summarizes the TLS secret referenced by an ingress. Expires is
// a derived placeholder, not parsed from the certificate itself.
type Certificate struct {
	Name    string    `json:"name"`
	Expires time.Time `json:"expires"`
}

// Entry is one (ingress, host) pair in a report. An ingress with N hosts
// produces N entries sharing the same certificate.
type Entry struct {
	Namespace   string       `json:"namespace"`
	Name        string       `json:"name"`
	Host        string       `json:"host"`
	Certificate *Certificate `json:"certificate,omitempty"`
}

// Report is the wire format POSTed to the collector.
type Report struct {
	Cluster   string  `json:"cluster"`
	Ingresses []Entry `json:"ingresses"`
}

// CertificateResolver derives a certificate descriptor for a named TLS
// secret. Implementations return nil when no usable certificate exists; they
// never fail the surrounding report build.
type CertificateResolver interface {
	Resolve(ctx context.Context, namespace, secretName string) *Certificate
}
