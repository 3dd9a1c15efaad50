// File: internal/kube/client.go
// Brief: Internal kube package implementation for 'client'.

// client.go constructs the Kubernetes clientset used by the observer.
package kube

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// Client bundles the Kubernetes client and the namespace resolved from the
// active context.
type Client struct {
	RESTConfig *rest.Config
	Clientset  kubernetes.Interface
	Namespace  string
}

// New builds a Kubernetes client honoring the provided kubeconfig path and
// context. When neither is set and the process runs inside a cluster, the
// in-cluster service account configuration wins.
func New(kubeconfigPath, contextName string) (*Client, error) {
	if kubeconfigPath == "" && contextName == "" {
		if restConfig, err := rest.InClusterConfig(); err == nil {
			return newFromRESTConfig(restConfig, "")
		}
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		expanded, err := homedir.Expand(kubeconfigPath)
		if err != nil {
			return nil, fmt.Errorf("expand kubeconfig path: %w", err)
		}
		loadingRules.Precedence = []string{filepath.Clean(expanded)}
	}

	overrides := &clientcmd.ConfigOverrides{ClusterInfo: api.Cluster{Server: ""}}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)
	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, fmt.Errorf("resolve default namespace: %w", err)
	}
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("build rest config: %w", err)
	}
	return newFromRESTConfig(restConfig, namespace)
}

func newFromRESTConfig(restConfig *rest.Config, namespace string) (*Client, error) {
	rest.SetDefaultWarningHandler(rest.NoWarnings{})

	// Aggressive defaults for snappy startup.
	restConfig.Timeout = 30 * time.Second
	restConfig.QPS = 50
	restConfig.Burst = 100

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create typed client: %w", err)
	}

	return &Client{
		RESTConfig: restConfig,
		Clientset:  clientset,
		Namespace:  namespace,
	}, nil
}
