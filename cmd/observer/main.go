// File: cmd/observer/main.go
// Brief: Ingress observer entrypoint.

// main.go bootstraps the observer: it builds the root Cobra command, binds
// environment overrides, and executes with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/example/ingress-observer/internal/buildinfo"
	"github.com/example/ingress-observer/internal/certs"
	"github.com/example/ingress-observer/internal/config"
	"github.com/example/ingress-observer/internal/index"
	"github.com/example/ingress-observer/internal/kube"
	"github.com/example/ingress-observer/internal/logging"
	"github.com/example/ingress-observer/internal/report"
	"github.com/example/ingress-observer/internal/reporter"
	"github.com/example/ingress-observer/internal/watch"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	var kubeconfigPath string
	var kubeContext string
	logLevel := "info"
	cmd := &cobra.Command{
		Use:           "observer",
		Short:         "Watches Ingress resources and reports them to a collector",
		Long:          "observer maintains a live index of Ingress resources and periodically POSTs a summarized report (hosts plus TLS certificate presence) to a configured endpoint.",
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.KubeConfigPath = kubeconfigPath
			opts.Context = kubeContext
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), opts, logLevel)
		},
	}
	cmd.PersistentFlags().StringVarP(&kubeconfigPath, "kubeconfig", "k", "", "Path to the kubeconfig file to use for API requests")
	cmd.PersistentFlags().StringVarP(&kubeContext, "context", "K", "", "Name of the kubeconfig context to use")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level for observer output (debug, info, warn, error)")
	opts.AddFlags(cmd)
	bindViper(cmd)
	return cmd
}

// bindViper lets OBSERVER_* environment variables stand in for unset flags,
// e.g. OBSERVER_CLUSTER_NAME for --cluster-name.
func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("OBSERVER")
	v.AutomaticEnv()

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func run(ctx context.Context, opts *config.Options, logLevel string) error {
	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	log.Info("ingress observer starting",
		"version", buildinfo.Version,
		"cluster", opts.ClusterName,
		"endpoint", opts.ReportEndpoint,
		"interval", opts.ReportInterval.String())

	client, err := kube.New(opts.KubeConfigPath, opts.Context)
	if err != nil {
		return err
	}

	// The index has exactly one owner; watcher and reporter both receive it
	// here and nowhere else.
	idx := index.New()
	resolver := certs.NewSecretResolver(client.Clientset, log.WithName("certs"))
	builder := report.NewBuilder(opts.ClusterName, resolver, log.WithName("report"))
	sender := report.NewSender(opts.ReportEndpoint)
	rep := reporter.New(idx, builder, sender, opts.ReportInterval, log.WithName("reporter"))

	g, ctx := errgroup.WithContext(ctx)
	watcher := watch.New(client.Clientset, idx, opts.WatchNamespaces(), log.WithName("watch"),
		watch.WithChangeNotifier(func() { rep.Trigger(ctx) }))
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error { return rep.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("ingress observer stopped")
	return nil
}
