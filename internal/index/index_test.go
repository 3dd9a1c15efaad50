// File: internal/index/index_test.go
// Brief: Internal index package implementation for 'index'.

// index_test.go covers the concurrent store semantics the reporter relies on.
package index

import (
	"fmt"
	"sync"
	"testing"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func ingressFixture(namespace, name string) *networkingv1.Ingress {
	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
	}
}

func TestPutReplacesWholesale(t *testing.T) {
	idx := New()
	key := Key{Namespace: "ns1", Name: "ing1"}

	first := ingressFixture("ns1", "ing1")
	first.Spec.Rules = []networkingv1.IngressRule{{Host: "old.example.com"}}
	idx.Put(key, first)

	second := ingressFixture("ns1", "ing1")
	second.Spec.Rules = []networkingv1.IngressRule{{Host: "new.example.com"}}
	idx.Put(key, second)

	if idx.Len() != 1 {
		t.Fatalf("expected 1 entry after replacement, got %d", idx.Len())
	}
	snap := idx.Snapshot()
	if got := snap[key].Spec.Rules[0].Host; got != "new.example.com" {
		t.Fatalf("expected replaced body, got host %q", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	idx := New()
	key := Key{Namespace: "ns1", Name: "ing1"}
	idx.Put(key, ingressFixture("ns1", "ing1"))
	idx.Remove(key)
	idx.Remove(key)
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d entries", idx.Len())
	}
}

func TestSnapshotIsStableUnderMutation(t *testing.T) {
	idx := New()
	key := Key{Namespace: "ns1", Name: "ing1"}
	idx.Put(key, ingressFixture("ns1", "ing1"))

	snap := idx.Snapshot()
	idx.Remove(key)
	idx.Put(Key{Namespace: "ns2", Name: "ing2"}, ingressFixture("ns2", "ing2"))

	if len(snap) != 1 {
		t.Fatalf("snapshot changed under mutation: %d entries", len(snap))
	}
	if _, ok := snap[key]; !ok {
		t.Fatalf("snapshot lost original entry")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	idx := New()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				key := Key{Namespace: "ns", Name: fmt.Sprintf("ing-%d-%d", w, n%10)}
				idx.Put(key, ingressFixture(key.Namespace, key.Name))
				if n%3 == 0 {
					idx.Remove(key)
				}
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				for key, ing := range idx.Snapshot() {
					if ing == nil {
						t.Errorf("snapshot produced nil body for %s", key)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
