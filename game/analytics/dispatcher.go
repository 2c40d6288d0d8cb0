package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"
)

// Defaults applied by New where the config leaves a knob unset.
const (
	DefaultQueueDepth = 64
	DefaultTimeout    = 5 * time.Second
)

// Config carries the explicit dispatcher settings. An empty Endpoint
// disables delivery entirely: events are counted and discarded.
type Config struct {
	Endpoint   string
	QueueDepth int
	Timeout    time.Duration
	Logger     *log.Logger
}

// Stats is a point-in-time snapshot of the dispatcher counters.
type Stats struct {
	Submitted int64 `json:"submitted"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

// Dispatcher delivers events to an HTTP collector without ever making the
// caller wait. Submissions pass through a bounded queue consumed by a
// single background worker; a full queue evicts its oldest event. Each
// event gets at most one delivery attempt, with no retries.
type Dispatcher struct {
	endpoint string
	client   *http.Client
	queue    chan Event
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	closed atomic.Bool

	submitted atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// New starts a dispatcher. Its worker goroutine runs until Close.
func New(cfg Config) *Dispatcher {
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		queue:    make(chan Event, cfg.QueueDepth),
		logger:   cfg.Logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	if d.endpoint == "" {
		d.logger.Println("WARNING: analytics endpoint not configured, events will be discarded")
		close(d.done)
		return d
	}
	go d.run()
	return d
}

// Submit queues an event for delivery and returns immediately, regardless
// of queue pressure or collector health. A full queue evicts its oldest
// event; if another producer refills the slot first, the new event is the
// one dropped instead.
func (d *Dispatcher) Submit(ev Event) {
	d.submitted.Add(1)
	if d.endpoint == "" || d.closed.Load() {
		d.dropped.Add(1)
		return
	}

	select {
	case d.queue <- ev:
		return
	default:
	}

	select {
	case <-d.queue:
		d.dropped.Add(1)
	default:
	}
	select {
	case d.queue <- ev:
	default:
		d.dropped.Add(1)
	}
}

// run is the single delivery worker. On shutdown it drains whatever is
// still queued into the dropped counter so the stats add up.
func (d *Dispatcher) run() {
	defer close(d.done)
	for {
		select {
		case <-d.ctx.Done():
			for {
				select {
				case <-d.queue:
					d.dropped.Add(1)
				default:
					return
				}
			}
		case ev := <-d.queue:
			d.deliver(ev)
		}
	}
}

// deliver makes the one and only attempt for an event. The request context
// descends from the dispatcher's, so Close aborts an in-flight attempt.
func (d *Dispatcher) deliver(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		d.failed.Add(1)
		d.logger.Printf("analytics: marshal %s: %v", ev.Type, err)
		return
	}

	req, err := http.NewRequestWithContext(d.ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		d.failed.Add(1)
		d.logger.Printf("analytics: build request for %s: %v", ev.Type, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.failed.Add(1)
		d.logger.Printf("analytics: deliver %s: %v", ev.Type, err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		d.failed.Add(1)
		d.logger.Printf("analytics: deliver %s: status %d", ev.Type, resp.StatusCode)
		return
	}
	d.delivered.Add(1)
}

// Stats returns the current counter values.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Submitted: d.submitted.Load(),
		Delivered: d.delivered.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}

// Close stops the worker and abandons any in-flight delivery. Events still
// queued are counted as dropped; Submit calls after Close drop as well.
// Close is idempotent.
func (d *Dispatcher) Close() {
	if d.closed.Swap(true) {
		return
	}
	d.cancel()
	<-d.done
}
