package scheduledjob

import (
	"context"
	"time"

	"github.com/greyskit/subtest/types"
)

// ScheduledJob is a one-shot job keyed by hook name
type ScheduledJob struct {
	ID      string         `db:"id" json:"id"`
	Hook    types.JobHook  `db:"hook" json:"hook"`
	RunAt   time.Time      `db:"run_at" json:"run_at"`
	Payload types.Metadata `json:"payload,omitempty"`

	types.BaseModel
}

// New returns a job record with a generated ID
func New(ctx context.Context, hook types.JobHook, runAt time.Time, payload types.Metadata) *ScheduledJob {
	return &ScheduledJob{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCHEDULED_JOB),
		Hook:      hook,
		RunAt:     runAt,
		Payload:   payload,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// Scheduler is the optional job-scheduling capability. A nil Scheduler in
// service params means the capability is absent and scheduling degrades to
// a no-op.
type Scheduler interface {
	// ScheduleSingle enqueues a one-shot job for the hook at the timestamp
	ScheduleSingle(ctx context.Context, runAt time.Time, hook types.JobHook, payload types.Metadata) error

	// UnscheduleAll removes every pending job for the hook
	UnscheduleAll(ctx context.Context, hook types.JobHook) error
}
