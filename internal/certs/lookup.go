// File: internal/certs/lookup.go
// Brief: Internal certs package implementation for 'lookup'.

// Package certs resolves TLS secrets referenced by ingresses into
// certificate descriptors. Lookups are best-effort: every failure mode
// degrades to "no certificate" so a single bad secret never drops a report.
package certs

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/example/ingress-observer/internal/report"
)

const (
	tlsCertKey = "tls.crt"
	caCertKey  = "ca.crt"

	// stubValidity is the assumed lifetime of any TLS-shaped secret.
	// TODO: parse the NotAfter field of tls.crt instead of assuming 90 days.
	stubValidity = 90 * 24 * time.Hour

	lookupTimeout = 10 * time.Second
)

// SecretResolver reads TLS secrets through the Kubernetes API and implements
// report.CertificateResolver.
type SecretResolver struct {
	client  kubernetes.Interface
	log     logr.Logger
	now     func() time.Time
	timeout time.Duration
}

// NewSecretResolver returns a resolver backed by the given clientset.
func NewSecretResolver(client kubernetes.Interface, log logr.Logger) *SecretResolver {
	return &SecretResolver{
		client:  client,
		log:     log,
		now:     time.Now,
		timeout: lookupTimeout,
	}
}

// Resolve fetches the named secret and derives a descriptor from it. It
// returns nil when no TLS is configured, the secret is missing or not
// TLS-shaped, or the read fails; none of these abort the report build.
func (r *SecretResolver) Resolve(ctx context.Context, namespace, secretName string) *report.Certificate {
	if secretName == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	secret, err := r.client.CoreV1().Secrets(namespace).Get(ctx, secretName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			r.log.V(1).Info("secret not found", "namespace", namespace, "secret", secretName)
			return nil
		}
		r.log.Error(err, "reading secret failed", "namespace", namespace, "secret", secretName)
		return nil
	}

	if _, hasCert := secret.Data[tlsCertKey]; !hasCert {
		if _, hasCA := secret.Data[caCertKey]; !hasCA {
			r.log.V(1).Info("secret carries no certificate data", "namespace", namespace, "secret", secretName)
			return nil
		}
	}

	return &report.Certificate{
		Name:    secretName,
		Expires: r.now().UTC().Add(stubValidity),
	}
}
