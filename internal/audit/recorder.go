package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"breakpoint/pkg/requestcontext"
)

// Options configures a Recorder. The zero value is usable in tests.
type Options struct {
	// BufferSize bounds how many entries may be pending before new ones are
	// dropped instead of blocking request handling. Defaults to 256.
	BufferSize int
	// Echo additionally logs every entry at debug level for developer
	// visibility. Enabled outside production.
	Echo bool
	// Dropped counts entries discarded due to a saturated buffer.
	Dropped prometheus.Counter
	// Publisher, when set, receives a copy of every persisted entry.
	Publisher Publisher
}

// Recorder is the append-only audit writer. Record enqueues and returns
// immediately; a single worker goroutine owns the store, so append order is
// chronological order. Store failures are logged, never propagated.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	opts    Options
	inbox   chan Entry
	pending sync.WaitGroup
}

func NewRecorder(store Store, logger *slog.Logger, opts Options) *Recorder {
	if opts.BufferSize <= 0 {
		opts.BufferSize = 256
	}
	return &Recorder{
		store:  store,
		logger: logger,
		opts:   opts,
		inbox:  make(chan Entry, opts.BufferSize),
	}
}

// Record enqueues one entry stamped with the request-scoped time. It never
// blocks: when the buffer is full the entry is dropped, counted, and reported
// on the diagnostic logger.
func (r *Recorder) Record(ctx context.Context, action Action, details map[string]any) {
	e := Entry{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Details:   details,
	}

	if r.opts.Echo {
		r.logger.Debug("audit", "action", string(action), "details", details)
	}

	r.pending.Add(1)
	select {
	case r.inbox <- e:
	default:
		r.pending.Done()
		if r.opts.Dropped != nil {
			r.opts.Dropped.Inc()
		}
		r.logger.Warn("audit buffer full, entry dropped", "action", string(action))
	}
}

// Run consumes the inbox until ctx is cancelled, then drains whatever is
// still buffered before returning.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case e := <-r.inbox:
					r.write(e)
				default:
					return ctx.Err()
				}
			}
		case e := <-r.inbox:
			r.write(e)
		}
	}
}

// Flush blocks until every entry enqueued so far has been written.
func (r *Recorder) Flush() {
	r.pending.Wait()
}

func (r *Recorder) write(e Entry) {
	defer r.pending.Done()

	// The worker outlives request contexts; writes get their own.
	if err := r.store.Append(context.Background(), e); err != nil {
		r.logger.Error("audit append failed", "action", string(e.Action), "error", err)
	}
	if r.opts.Publisher != nil {
		r.opts.Publisher.Publish(context.Background(), e)
	}
}
