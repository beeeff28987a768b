package tela

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/telaui/tela/internal/debug"
)

// defaultWorkerLimit bounds how many background tasks run at once.
const defaultWorkerLimit = 8

// Scheduler runs background work off the UI goroutine and marshals
// results back onto it. Every task is tied to a scope (a view or
// overlay id) with a validity token: if the scope is invalidated while
// the task runs (view switched, overlay dismissed), the result is
// dropped instead of being applied to state that no longer exists.
type Scheduler struct {
	queue func(func()) // marshals a closure onto the UI goroutine

	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	tokens map[string]uint64
}

// newScheduler creates a scheduler feeding results through queue.
func newScheduler(queue func(func()), workers int) *Scheduler {
	if workers <= 0 {
		workers = defaultWorkerLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	return &Scheduler{
		queue:  queue,
		group:  group,
		ctx:    ctx,
		cancel: cancel,
		tokens: make(map[string]uint64),
	}
}

// token returns the current validity token for a scope.
func (s *Scheduler) token(scope string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[scope]
}

// Invalidate drops the results of all in-flight tasks for the scope.
// Call when a view is torn down or an overlay dismissed.
func (s *Scheduler) Invalidate(scope string) {
	s.mu.Lock()
	s.tokens[scope]++
	s.mu.Unlock()
}

// Go runs work on the background pool. The closure it returns is
// applied on the UI goroutine, but only if the scope's validity token
// is unchanged. Returning nil skips the apply step. work receives a
// context cancelled on shutdown and should honor it for long calls.
func (s *Scheduler) Go(scope string, work func(ctx context.Context) func()) {
	token := s.token(scope)

	s.group.Go(func() error {
		apply := work(s.ctx)
		if apply == nil {
			return nil
		}
		if s.ctx.Err() != nil {
			return nil
		}

		s.queue(func() {
			if s.token(scope) != token {
				debug.Log("scheduler: dropping stale result for scope %q", scope)
				return
			}
			apply()
		})
		return nil
	})
}

// Shutdown cancels in-flight tasks and waits for them to finish.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	return s.group.Wait()
}
