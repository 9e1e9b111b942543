package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"calmwave/config"
	"calmwave/models"
	"calmwave/services/notification"
	"calmwave/services/tasks"
	"calmwave/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt returns the asynq connection for the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux wires the push task handlers.
func NewMux(notifSvc notification.NotificationService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingStatus, handlePushTask(notifSvc))
	mux.HandleFunc(tasks.TypeBookingReminder, handlePushTask(notifSvc))
	return mux
}

// InitNotificationWorker starts the asynq server in the background. Call Shutdown on the result when stopping.
func InitNotificationWorker(notifSvc notification.NotificationService) (*asynq.Server, error) {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar().Named("asynq"),
		},
	)
	if err := srv.Start(NewMux(notifSvc)); err != nil {
		return nil, fmt.Errorf("start notification worker: %w", err)
	}
	utils.GetLogger().Info("notification worker started")
	return srv, nil
}

func handlePushTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("push task: invalid payload", zap.String("type", task.Type()), zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		data := map[string]string{"type": task.Type()}
		if p.BookingID != "" {
			data["bookingId"] = p.BookingID
		}
		for k, v := range p.Data {
			data[k] = v
		}

		if err := notifSvc.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			utils.GetLogger().Warn("push task failed",
				zap.String("type", task.Type()), zap.String("userID", p.UserID), zap.Error(err))
			return err
		}
		return nil
	}
}
