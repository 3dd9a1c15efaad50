// File: internal/watch/watcher.go
// Brief: Internal watch package implementation for 'watcher'.

// Package watch subscribes to Ingress lifecycle events via shared informers
// and feeds them into the index. Event handlers log each create, update, and
// delete; reconnection and resync are the informer machinery's problem.
package watch

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8swatch "k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/example/ingress-observer/internal/index"
)

// Watcher wires informer callbacks into the shared index. The index is owned
// by the caller and handed in explicitly; the watcher never creates or
// discovers one on its own.
type Watcher struct {
	client     kubernetes.Interface
	idx        *index.Index
	namespaces []string
	log        logr.Logger
	onChange   func()
}

// Option configures optional Watcher behavior.
type Option func(*Watcher)

// WithChangeNotifier registers a callback invoked after every applied event.
// The reporter uses it as an event-driven trigger; its dedup guard absorbs
// the burst.
func WithChangeNotifier(fn func()) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.onChange = fn
		}
	}
}

// New returns a watcher over the given namespaces. An empty namespace list
// watches the whole cluster.
func New(client kubernetes.Interface, idx *index.Index, namespaces []string, log logr.Logger, opts ...Option) *Watcher {
	if len(namespaces) == 0 {
		namespaces = []string{metav1.NamespaceAll}
	}
	w := &Watcher{
		client:     client,
		idx:        idx,
		namespaces: namespaces,
		log:        log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the informers and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	informers := w.createInformers()
	if len(informers) == 0 {
		return fmt.Errorf("no informers could be configured")
	}

	for _, informer := range informers {
		informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
			AddFunc:    w.handleAdd,
			UpdateFunc: w.handleUpdate,
			DeleteFunc: w.handleDelete,
		})
		go informer.Run(ctx.Done())
	}

	synced := make([]cache.InformerSynced, 0, len(informers))
	for _, informer := range informers {
		synced = append(synced, informer.HasSynced)
	}
	if !cache.WaitForCacheSync(ctx.Done(), synced...) {
		return fmt.Errorf("failed to sync informers before context cancellation")
	}
	w.log.V(1).Info("informers synced", "namespaceCount", len(informers))

	<-ctx.Done()
	return ctx.Err()
}

func (w *Watcher) createInformers() []cache.SharedIndexInformer {
	informers := make([]cache.SharedIndexInformer, 0, len(w.namespaces))
	for _, ns := range w.namespaces {
		namespace := ns
		lw := &cache.ListWatch{
			ListFunc: func(options metav1.ListOptions) (runtime.Object, error) {
				return w.client.NetworkingV1().Ingresses(namespace).List(context.Background(), options)
			},
			WatchFunc: func(options metav1.ListOptions) (k8swatch.Interface, error) {
				return w.client.NetworkingV1().Ingresses(namespace).Watch(context.Background(), options)
			},
		}
		informer := cache.NewSharedIndexInformer(
			lw,
			&networkingv1.Ingress{},
			0,
			cache.Indexers{cache.NamespaceIndex: cache.MetaNamespaceIndexFunc},
		)
		informers = append(informers, informer)
		if namespace == metav1.NamespaceAll {
			break
		}
	}
	return informers
}

func (w *Watcher) handleAdd(obj interface{}) {
	ing, ok := obj.(*networkingv1.Ingress)
	if !ok {
		return
	}
	key := index.Key{Namespace: ing.Namespace, Name: ing.Name}
	w.log.Info("ingress created", "ingress", key.String())
	w.idx.Put(key, ing)
	w.notify()
}

func (w *Watcher) handleUpdate(_, newObj interface{}) {
	ing, ok := newObj.(*networkingv1.Ingress)
	if !ok {
		return
	}
	key := index.Key{Namespace: ing.Namespace, Name: ing.Name}
	w.log.Info("ingress updated", "ingress", key.String())
	w.idx.Put(key, ing)
	w.notify()
}

func (w *Watcher) handleDelete(obj interface{}) {
	ing, ok := obj.(*networkingv1.Ingress)
	if !ok {
		tombstone, cast := obj.(cache.DeletedFinalStateUnknown)
		if !cast {
			return
		}
		ing, ok = tombstone.Obj.(*networkingv1.Ingress)
		if !ok {
			return
		}
	}
	key := index.Key{Namespace: ing.Namespace, Name: ing.Name}
	w.log.Info("ingress deleted", "ingress", key.String())
	w.idx.Remove(key)
	w.notify()
}

func (w *Watcher) notify() {
	if w.onChange != nil {
		w.onChange()
	}
}
