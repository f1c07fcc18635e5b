package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/talent"
)

// scriptedClient replays a fixed sequence of status answers.
type scriptedClient struct {
	statuses []talent.TaskStatus
	errAt    int // 1-based poll index that fails; 0 disables
	errValue error

	calls int
}

func (c *scriptedClient) GetTaskStatus(taskID string) (*talent.TaskStatusResponse, error) {
	c.calls++

	if c.errAt != 0 && c.calls >= c.errAt {
		return nil, c.errValue
	}

	idx := c.calls - 1
	if idx >= len(c.statuses) {
		idx = len(c.statuses) - 1
	}

	resp := &talent.TaskStatusResponse{TaskID: taskID, Status: c.statuses[idx]}
	if resp.Status == talent.TaskFailure {
		resp.Error = "unsupported file format"
	}

	return resp, nil
}

func collect(t *testing.T, task *Task) []Update {
	t.Helper()

	var updates []Update
	timeout := time.After(5 * time.Second)

	for {
		select {
		case update, ok := <-task.Updates():
			if !ok {
				return updates
			}
			updates = append(updates, update)
		case <-timeout:
			t.Fatal("poller did not finish in time")
		}
	}
}

func TestPollingStopsAtSuccess(t *testing.T) {
	client := &scriptedClient{
		statuses: []talent.TaskStatus{talent.TaskPending, talent.TaskStarted, talent.TaskStarted, talent.TaskSuccess},
	}
	poller := New(client, time.Millisecond, zap.NewNop())

	task := poller.Start(context.Background(), "T1")
	updates := collect(t, task)

	require.Equal(t, 4, client.calls, "no poll may happen after the terminal status")
	require.Len(t, updates, 4)
	require.Equal(t, talent.TaskPending, updates[0].Status)
	require.Equal(t, talent.TaskSuccess, updates[3].Status)

	// Give a would-be fifth tick a chance to fire.
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 4, client.calls)
}

func TestPendingThenSuccessTransitions(t *testing.T) {
	client := &scriptedClient{
		statuses: []talent.TaskStatus{talent.TaskPending, talent.TaskPending, talent.TaskPending, talent.TaskSuccess},
	}
	poller := New(client, time.Millisecond, zap.NewNop())

	updates := collect(t, poller.Start(context.Background(), "T1"))

	require.Len(t, updates, 4)
	for _, update := range updates[:3] {
		require.Equal(t, talent.TaskPending, update.Status)
		require.NoError(t, update.Err)
	}
	require.Equal(t, talent.TaskSuccess, updates[3].Status)
	require.Equal(t, 4, client.calls)
}

func TestTaskFailureIsTerminal(t *testing.T) {
	client := &scriptedClient{
		statuses: []talent.TaskStatus{talent.TaskStarted, talent.TaskFailure},
	}
	poller := New(client, time.Millisecond, zap.NewNop())

	updates := collect(t, poller.Start(context.Background(), "T1"))

	require.Equal(t, 2, client.calls)
	last := updates[len(updates)-1]
	require.Equal(t, talent.TaskFailure, last.Status)
	require.Equal(t, "unsupported file format", last.Detail)
	require.NoError(t, last.Err, "a failed task is a normal terminal outcome, not a polling error")
}

func TestTransportErrorStopsPolling(t *testing.T) {
	transportErr := errors.New("connection reset")
	client := &scriptedClient{
		statuses: []talent.TaskStatus{talent.TaskPending},
		errAt:    2,
		errValue: transportErr,
	}
	poller := New(client, time.Millisecond, zap.NewNop())

	updates := collect(t, poller.Start(context.Background(), "T1"))

	require.Equal(t, 2, client.calls)
	last := updates[len(updates)-1]
	require.ErrorIs(t, last.Err, transportErr)
	require.NotEqual(t, talent.TaskFailure, last.Status, "polling failure must stay distinct from task failure")
}

func TestStopSuppressesFurtherPolls(t *testing.T) {
	client := &scriptedClient{
		statuses: []talent.TaskStatus{talent.TaskPending},
	}
	// Long interval: the first tick has not fired yet when Stop is called.
	poller := New(client, time.Hour, zap.NewNop())

	task := poller.Start(context.Background(), "T1")
	task.Stop()

	updates := collect(t, task)

	require.Empty(t, updates)
	require.Equal(t, 0, client.calls)

	// Stop is idempotent.
	task.Stop()
}

func TestRetryStatusKeepsPolling(t *testing.T) {
	client := &scriptedClient{
		statuses: []talent.TaskStatus{talent.TaskRetry, talent.TaskStarted, talent.TaskSuccess},
	}
	poller := New(client, time.Millisecond, zap.NewNop())

	updates := collect(t, poller.Start(context.Background(), "T1"))

	require.Equal(t, 3, client.calls)
	require.Equal(t, talent.TaskRetry, updates[0].Status)
}
