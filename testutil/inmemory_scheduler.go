package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/greyskit/subtest/domain/scheduledjob"
	"github.com/greyskit/subtest/types"
)

// InMemoryScheduler implements scheduledjob.Scheduler by recording jobs
// instead of executing them, so tests can assert on what was scheduled
type InMemoryScheduler struct {
	mu   sync.RWMutex
	jobs []*scheduledjob.ScheduledJob
}

func NewInMemoryScheduler() *InMemoryScheduler {
	return &InMemoryScheduler{}
}

func (s *InMemoryScheduler) ScheduleSingle(ctx context.Context, runAt time.Time, hook types.JobHook, payload types.Metadata) error {
	if err := hook.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, scheduledjob.New(ctx, hook, runAt, payload))
	return nil
}

func (s *InMemoryScheduler) UnscheduleAll(ctx context.Context, hook types.JobHook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if job.Hook != hook {
			kept = append(kept, job)
		}
	}
	s.jobs = kept
	return nil
}

// ScheduledJobs returns a snapshot of the pending jobs for a hook
func (s *InMemoryScheduler) ScheduledJobs(hook types.JobHook) []*scheduledjob.ScheduledJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*scheduledjob.ScheduledJob
	for _, job := range s.jobs {
		if job.Hook == hook {
			out = append(out, job)
		}
	}
	return out
}

// PendingCount returns the total number of pending jobs across all hooks
func (s *InMemoryScheduler) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Clear drops every pending job
func (s *InMemoryScheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = nil
}
