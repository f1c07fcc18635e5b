package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/talent"
	"github.com/talentwire/scout/internal/util"
)

// DefaultInterval is the cadence between status checks.
const DefaultInterval = 3 * time.Second

// StatusClient is the slice of the backend API the poller needs.
type StatusClient interface {
	GetTaskStatus(taskID string) (*talent.TaskStatusResponse, error)
}

// Update is one observed status transition. Err is set when the status check
// itself failed (transport), which is distinct from the task reaching
// FAILURE: the former means the task state is unknown.
type Update struct {
	TaskID string
	Status talent.TaskStatus
	// Detail is the backend-reported error for a failed task.
	Detail string
	Err    error
}

// Poller watches ingestion tasks until they reach a terminal state. Each
// watched task owns its own loop; tasks never share state.
type Poller struct {
	client   StatusClient
	interval time.Duration
	logger   *zap.Logger
}

func New(client StatusClient, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// Task is a handle on one running poll loop.
type Task struct {
	ID string

	updates chan Update
	cancel  context.CancelFunc
}

// Updates streams status transitions. The channel is closed once the task is
// terminal, the poll loop failed, or the task was stopped.
func (t *Task) Updates() <-chan Update {
	return t.updates
}

// Stop suppresses scheduling of further status checks. An in-flight request
// is left to complete and its result is dropped. Safe to call more than once.
func (t *Task) Stop() {
	t.cancel()
}

// Start begins polling the given task. The loop issues one status request per
// interval; SUCCESS and FAILURE end it, every other status keeps it going.
func (p *Poller) Start(ctx context.Context, taskID string) *Task {
	ctx, cancel := context.WithCancel(ctx)

	task := &Task{
		ID:      taskID,
		updates: make(chan Update, 1),
		cancel:  cancel,
	}

	go p.loop(ctx, task)

	return task
}

func (p *Poller) loop(ctx context.Context, task *Task) {
	defer close(task.updates)

	for {
		if err := util.WaitFor(ctx, p.interval); err != nil {
			p.logger.Debug("polling stopped", zap.String("task_id", task.ID))
			return
		}

		status, err := p.client.GetTaskStatus(task.ID)
		if err != nil {
			p.logger.Warn("task status check failed",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			task.send(ctx, Update{TaskID: task.ID, Err: err})
			return
		}

		p.logger.Debug("task status",
			zap.String("task_id", task.ID),
			zap.String("status", string(status.Status)),
		)

		task.send(ctx, Update{
			TaskID: task.ID,
			Status: status.Status,
			Detail: status.Error,
		})

		if status.Status.IsTerminal() {
			return
		}
	}
}

func (t *Task) send(ctx context.Context, update Update) {
	select {
	case t.updates <- update:
	case <-ctx.Done():
	}
}
