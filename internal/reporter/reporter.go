// File: internal/reporter/reporter.go
// Brief: Internal reporter package implementation for 'reporter'.

// Package reporter owns the periodic report schedule: it snapshots the
// index, builds a report, and hands delivery to a background goroutine so a
// slow collector never delays the next tick.
package reporter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/example/ingress-observer/internal/index"
	"github.com/example/ingress-observer/internal/report"
)

// DefaultInterval matches the operator's default reporting cadence.
const DefaultInterval = 45 * time.Second

// dedupEpsilon is the slack allowed when deciding whether a trigger arrives
// too soon after the previous build.
const dedupEpsilon = time.Second

// Deliverer sends a finished report to the collector.
type Deliverer interface {
	Send(ctx context.Context, rep report.Report) error
}

// Reporter drives build-and-deliver cycles off a ticker and off watch-event
// triggers, with a monotonic guard that admits at most one report per
// interval across both paths.
type Reporter struct {
	index    *index.Index
	builder  *report.Builder
	sender   Deliverer
	interval time.Duration
	log      logr.Logger

	mu        sync.Mutex
	lastBuild time.Time
}

// New returns a reporter with the given cadence. A non-positive interval
// falls back to DefaultInterval. The guard is primed at construction time so
// a watch event arriving before Run starts cannot force an immediate report.
func New(idx *index.Index, builder *report.Builder, sender Deliverer, interval time.Duration, log logr.Logger) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		index:     idx,
		builder:   builder,
		sender:    sender,
		interval:  interval,
		log:       log,
		lastBuild: time.Now(),
	}
}

// Run loops until ctx is cancelled. The guard is re-primed with the start
// time so the first report fires only after one full interval from here.
func (r *Reporter) Run(ctx context.Context) error {
	r.mu.Lock()
	r.lastBuild = time.Now()
	r.mu.Unlock()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Trigger(ctx)
		}
	}
}

// Trigger runs one report cycle unless the previous build was less than one
// interval ago. Watch handlers call it on every event; the guard turns the
// extra calls into no-ops. A fault inside the cycle is logged and absorbed so
// the schedule keeps running.
func (r *Reporter) Trigger(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error(fmt.Errorf("panic: %v", rec), "report cycle failed")
		}
	}()

	r.mu.Lock()
	elapsed := time.Since(r.lastBuild)
	if elapsed < r.interval-dedupEpsilon {
		r.mu.Unlock()
		r.log.V(1).Info("skipping report, too soon since last build", "elapsed", elapsed.String())
		return
	}
	r.lastBuild = time.Now()
	r.mu.Unlock()

	rep := r.builder.Build(ctx, r.index.Snapshot())
	r.log.Info("report built", "ingresses", len(rep.Ingresses))
	go r.deliver(ctx, rep)
}

func (r *Reporter) deliver(ctx context.Context, rep report.Report) {
	ctx, cancel := context.WithTimeout(ctx, report.DeliveryTimeout)
	defer cancel()
	if err := r.sender.Send(ctx, rep); err != nil {
		r.log.Error(err, "report delivery failed", "ingresses", len(rep.Ingresses))
		return
	}
	r.log.Info("report sent", "ingresses", len(rep.Ingresses))
}
