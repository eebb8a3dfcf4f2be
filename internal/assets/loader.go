package assets

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Job runs off the main thread. It must not touch GPU state.
type Job func(ctx context.Context) (any, error)

// Completion is the result of one Job, delivered back to the main thread.
type Completion struct {
	Key   string
	Value any
	Err   error

	ctx  context.Context
	done func(value any, err error)
}

// Loader runs jobs in goroutines and queues their results until the main
// loop drains them. Callbacks only ever run inside Drain.
type Loader struct {
	ch      chan Completion
	wg      sync.WaitGroup
	mu      sync.Mutex
	pending int
}

func NewLoader(buffer int) *Loader {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loader{ch: make(chan Completion, buffer)}
}

// Go starts job. done runs on the draining goroutine unless ctx was
// cancelled first, in which case the result is dropped. A cancelled job
// never blocks on a full queue. ctx must not be nil.
func (l *Loader) Go(ctx context.Context, key string, job Job, done func(value any, err error)) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		value, err := job(ctx)
		select {
		case l.ch <- Completion{Key: key, Value: value, Err: err, ctx: ctx, done: done}:
		case <-ctx.Done():
			// Nobody may be draining any more
			l.mu.Lock()
			l.pending--
			l.mu.Unlock()
			log.Printf("Assets: dropped %s (%v)", key, context.Cause(ctx))
		}
	}()
}

// Drain delivers every queued completion without blocking and returns how
// many callbacks ran.
func (l *Loader) Drain() int {
	n := 0
	for {
		select {
		case c := <-l.ch:
			l.mu.Lock()
			l.pending--
			l.mu.Unlock()

			if c.ctx != nil && c.ctx.Err() != nil {
				log.Printf("Assets: dropped %s (%v)", c.Key, context.Cause(c.ctx))
				continue
			}
			if c.Err != nil && errors.Is(c.Err, context.Canceled) {
				continue
			}
			if c.done != nil {
				c.done(c.Value, c.Err)
			}
			n++
		default:
			return n
		}
	}
}

// Pending counts jobs whose completion has not been drained yet.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait blocks until every started job has queued or dropped its completion.
func (l *Loader) Wait() {
	l.wg.Wait()
}
