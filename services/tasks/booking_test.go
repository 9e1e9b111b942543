package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"calmwave/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	r.opts = append(r.opts, opts)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func TestNewBookingReminderTask(t *testing.T) {
	fireAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	payload := models.PushPayload{UserID: "u1", BookingID: "b1", Title: "Reminder", Body: "Session in 1h"}

	task, opts, err := NewBookingReminderTask(payload, fireAt)
	require.NoError(t, err)
	assert.Equal(t, TypeBookingReminder, task.Type())

	var got models.PushPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, payload, got)

	var hasProcessAt, hasTaskID bool
	for _, o := range opts {
		switch o.Type() {
		case asynq.ProcessAtOpt:
			hasProcessAt = true
			assert.Equal(t, fireAt, o.Value())
		case asynq.TaskIDOpt:
			hasTaskID = true
			assert.Equal(t, "reminder:b1", o.Value())
		}
	}
	assert.True(t, hasProcessAt)
	assert.True(t, hasTaskID)
}

func TestDispatcher(t *testing.T) {
	q := &recordingEnqueuer{}
	d := NewDispatcher(q)

	require.NoError(t, d.NotifyStatus(context.Background(), models.PushPayload{UserID: "u1"}))
	require.NoError(t, d.ScheduleReminder(context.Background(), models.PushPayload{UserID: "u1", BookingID: "b1"}, time.Now().Add(time.Hour)))
	require.Len(t, q.tasks, 2)
	assert.Equal(t, TypeBookingStatus, q.tasks[0].Type())
	assert.Equal(t, TypeBookingReminder, q.tasks[1].Type())
}

func TestDispatcherIgnoresDuplicateReminder(t *testing.T) {
	d := NewDispatcher(&recordingEnqueuer{err: asynq.ErrTaskIDConflict})
	assert.NoError(t, d.ScheduleReminder(context.Background(), models.PushPayload{BookingID: "b1"}, time.Now()))

	d = NewDispatcher(&recordingEnqueuer{err: errors.New("redis down")})
	assert.Error(t, d.NotifyStatus(context.Background(), models.PushPayload{}))
}
