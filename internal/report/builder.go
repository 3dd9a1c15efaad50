// File: internal/report/builder.go
// Brief: Internal report package implementation for 'builder'.

// builder.go flattens an index snapshot into report entries.
package report

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	networkingv1 "k8s.io/api/networking/v1"

	"github.com/example/ingress-observer/internal/index"
)

// Builder turns index snapshots into reports, enriching entries with
// certificate descriptors via the configured resolver.
type Builder struct {
	cluster  string
	resolver CertificateResolver
	log      logr.Logger
}

// NewBuilder returns a builder that stamps reports with the given cluster name.
func NewBuilder(cluster string, resolver CertificateResolver, log logr.Logger) *Builder {
	return &Builder{cluster: cluster, resolver: resolver, log: log}
}

// Build produces a report from the snapshot. Entry order follows map
// iteration and carries no guarantee. A fault while processing one ingress is
// logged and skips only that ingress.
func (b *Builder) Build(ctx context.Context, snapshot map[index.Key]*networkingv1.Ingress) Report {
	out := Report{Cluster: b.cluster, Ingresses: []Entry{}}
	for key, ing := range snapshot {
		out.Ingresses = append(out.Ingresses, b.buildEntries(ctx, key, ing)...)
	}
	return out
}

func (b *Builder) buildEntries(ctx context.Context, key index.Key, ing *networkingv1.Ingress) (entries []Entry) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(fmt.Errorf("panic: %v", r), "skipping ingress after processing fault", "ingress", key.String())
			entries = nil
		}
	}()

	hosts := extractHosts(ing)
	if len(hosts) == 0 {
		b.log.V(1).Info("skipping ingress without hosts", "ingress", key.String())
		return nil
	}

	var cert *Certificate
	if secretName := firstTLSSecretName(ing); secretName != "" {
		// One lookup per ingress; all of its hosts share the result.
		cert = b.resolver.Resolve(ctx, key.Namespace, secretName)
	}

	entries = make([]Entry, 0, len(hosts))
	for _, host := range hosts {
		entries = append(entries, Entry{
			Namespace:   key.Namespace,
			Name:        key.Name,
			Host:        host,
			Certificate: cert,
		})
	}
	return entries
}

// extractHosts returns the non-empty hosts of every routing rule, duplicates
// included.
func extractHosts(ing *networkingv1.Ingress) []string {
	var hosts []string
	for _, rule := range ing.Spec.Rules {
		if rule.Host != "" {
			hosts = append(hosts, rule.Host)
		}
	}
	return hosts
}

// firstTLSSecretName returns the secret reference of the first TLS block, if
// any. Further TLS blocks are ignored.
func firstTLSSecretName(ing *networkingv1.Ingress) string {
	if len(ing.Spec.TLS) > 0 {
		return ing.Spec.TLS[0].SecretName
	}
	return ""
}
