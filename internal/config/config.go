// File: internal/config/config.go
// Brief: Internal config package implementation for 'config'.

// Package config defines the flag plumbing and runtime options for the
// observer, translating Cobra/Viper flag values into a strongly typed struct
// consumed by the watch and report pipelines.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Options holds all CLI configuration used by the observer.
type Options struct {
	ClusterName    string
	ReportEndpoint string
	ReportInterval time.Duration
	Namespaces     []string
	AllNamespaces  bool
	KubeConfigPath string
	Context        string
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		ClusterName:    "local-minikube",
		ReportEndpoint: "http://localhost:8080/report",
		ReportInterval: 45 * time.Second,
	}
}

// AddFlags binds configuration flags to the provided Cobra command.
func (o *Options) AddFlags(cmd *cobra.Command) {
	o.BindFlags(cmd.Flags())
}

// BindFlags attaches observer flags to an arbitrary FlagSet and returns the
// flag names for further customization.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.StringVar(&o.ClusterName, "cluster-name", o.ClusterName, "Cluster identifier stamped into every report")
	names = append(names, "cluster-name")
	fs.StringVar(&o.ReportEndpoint, "report-endpoint", o.ReportEndpoint, "URL reports are POSTed to")
	names = append(names, "report-endpoint")
	fs.DurationVar(&o.ReportInterval, "report-interval", o.ReportInterval, "Time between report deliveries")
	names = append(names, "report-interval")
	fs.StringSliceVarP(&o.Namespaces, "namespace", "n", nil, "Namespace to watch; repeat or use comma-separated values for multiple. Defaults to all namespaces.")
	names = append(names, "namespace")
	fs.BoolVarP(&o.AllNamespaces, "all-namespaces", "A", false, "Watch ingresses across all namespaces (overrides --namespace)")
	names = append(names, "all-namespaces")
	return names
}

// Validate ensures provided options are coherent.
func (o *Options) Validate() error {
	o.ClusterName = strings.TrimSpace(o.ClusterName)
	if o.ClusterName == "" {
		return fmt.Errorf("--cluster-name cannot be empty")
	}
	o.ReportEndpoint = strings.TrimSpace(o.ReportEndpoint)
	endpoint, err := url.Parse(o.ReportEndpoint)
	if err != nil {
		return fmt.Errorf("invalid --report-endpoint %q: %w", o.ReportEndpoint, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return fmt.Errorf("invalid --report-endpoint %q (expected an http or https URL)", o.ReportEndpoint)
	}
	if o.ReportInterval <= 0 {
		return fmt.Errorf("--report-interval must be positive")
	}
	if o.AllNamespaces && len(o.Namespaces) > 0 {
		return fmt.Errorf("cannot combine --all-namespaces with explicit --namespace")
	}
	cleaned := o.Namespaces[:0]
	for _, ns := range o.Namespaces {
		if trimmed := strings.TrimSpace(ns); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	o.Namespaces = cleaned
	return nil
}

// WatchNamespaces resolves the namespaces to watch. With no explicit
// selection the observer watches the whole cluster, matching its default
// deployment as a cluster-wide operator.
func (o *Options) WatchNamespaces() []string {
	if o.AllNamespaces || len(o.Namespaces) == 0 {
		return []string{metav1.NamespaceAll}
	}
	return o.Namespaces
}
