// File: internal/index/index.go
// Brief: Internal index package implementation for 'index'.

// Package index provides a concurrent-safe in-memory store of the latest
// known body of each watched Ingress, keyed by namespace and name. Watch
// callbacks mutate it while the reporter reads point-in-time snapshots.
package index

import (
	"sync"

	networkingv1 "k8s.io/api/networking/v1"
)

// Key identifies one Ingress resource.
type Key struct {
	Namespace string
	Name      string
}

// String renders the key in the usual namespace/name form.
func (k Key) String() string {
	return k.Namespace + "/" + k.Name
}

// Index stores at most one Ingress body per key. All methods are safe for
// concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries map[Key]*networkingv1.Ingress
}

// New returns an empty index.
func New() *Index {
	return &Index{entries: make(map[Key]*networkingv1.Ingress)}
}

// Put stores the body for the given key, replacing any previous body
// wholesale.
func (i *Index) Put(key Key, ing *networkingv1.Ingress) {
	if ing == nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[key] = ing
}

// Remove drops the entry for the given key. No-op if absent.
func (i *Index) Remove(key Key) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.entries, key)
}

// Snapshot returns a copy of the current entry map. The copy is stable under
// concurrent Put/Remove; the Ingress pointers themselves are shared and
// treated as immutable once stored.
func (i *Index) Snapshot() map[Key]*networkingv1.Ingress {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[Key]*networkingv1.Ingress, len(i.entries))
	for k, v := range i.entries {
		out[k] = v
	}
	return out
}

// Len returns the number of stored entries.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}
