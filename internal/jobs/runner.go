package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron"
)

// Job is one periodic unit of background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Runner fires registered jobs on fixed intervals. A job whose previous run
// is still going is skipped for that interval.
type Runner struct {
	cron *cron.Cron
	jobs []Job

	mu      sync.Mutex
	running map[string]bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{
		cron:    cron.New(),
		running: make(map[string]bool),
	}
}

func (r *Runner) Every(interval time.Duration, j Job) error {
	if interval < time.Second {
		return fmt.Errorf("job %s: interval %s is below one second", j.Name(), interval)
	}
	if err := r.cron.AddFunc("@every "+interval.String(), func() { r.run(j) }); err != nil {
		return fmt.Errorf("job %s: %w", j.Name(), err)
	}
	r.jobs = append(r.jobs, j)
	return nil
}

// Start runs every job once right away, then on its interval, until ctx is
// done or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	for _, j := range r.jobs {
		go r.run(j)
	}
	r.cron.Start()
}

// Stop halts the schedule and waits for runs in flight.
func (r *Runner) Stop() {
	r.cron.Stop()
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) run(j Job) {
	r.mu.Lock()
	if r.ctx == nil || r.ctx.Err() != nil || r.running[j.Name()] {
		r.mu.Unlock()
		return
	}
	r.running[j.Name()] = true
	r.wg.Add(1)
	ctx := r.ctx
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.running, j.Name())
		r.mu.Unlock()
		r.wg.Done()
	}()

	start := time.Now()
	if err := j.Run(ctx); err != nil {
		slog.Error("job failed", "job", j.Name(), "err", err)
		return
	}
	slog.Debug("job done", "job", j.Name(), "took", time.Since(start))
}
