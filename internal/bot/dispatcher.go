package bot

import (
	"comicbot/internal/bot/interfaces"
	"comicbot/internal/providers"
	"github.com/gammazero/workerpool"
	"runtime/debug"
	"sync"
)

// Dispatcher is a one-worker pool: every event, tick and timeout runs to completion before the next starts.
type Dispatcher struct {
	mu      sync.Mutex
	pool    *workerpool.WorkerPool
	stopped bool
	logger  providers.Logger
}

func NewDispatcher(logger providers.Logger) interfaces.DispatcherInterface {
	return &Dispatcher{
		pool:   workerpool.New(1),
		logger: logger,
	}
}

// Submit queues task. After Stop it is dropped.
func (d *Dispatcher) Submit(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		d.logger.Debugf(providers.TypeBot, "Dispatcher stopped, task dropped")
		return
	}
	d.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Errorf(providers.TypeBot, "Task panicked: %v\n%s", r, debug.Stack())
			}
		}()
		task()
	})
}

// Stop waits for queued tasks to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()
	d.pool.StopWait()
}
