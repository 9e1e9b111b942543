package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"calmwave/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingStatus   = "booking:status"
	TypeBookingReminder = "booking:reminder"
)

// NewBookingStatusTask builds the push sent when a therapist changes a booking status.
func NewBookingStatusTask(payload models.PushPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return asynq.NewTask(TypeBookingStatus, b), opts, nil
}

// NewBookingReminderTask builds a reminder processed at fireAt. One reminder per booking.
func NewBookingReminderTask(payload models.PushPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
		asynq.TaskID("reminder:" + payload.BookingID),
	}
	return asynq.NewTask(TypeBookingReminder, b), opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher turns booking events into queued push tasks.
type Dispatcher struct {
	client Enqueuer
}

func NewDispatcher(client Enqueuer) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) NotifyStatus(ctx context.Context, payload models.PushPayload) error {
	task, opts, err := NewBookingStatusTask(payload)
	if err != nil {
		return fmt.Errorf("build status task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue status task: %w", err)
	}
	return nil
}

// ScheduleReminder enqueues a reminder. A reminder already queued for the booking is kept.
func (d *Dispatcher) ScheduleReminder(ctx context.Context, payload models.PushPayload, fireAt time.Time) error {
	task, opts, err := NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue reminder task: %w", err)
	}
	return nil
}
