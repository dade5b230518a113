package worker

import (
	"context"
	"sync"

	"wedding-gateway/internal/notify"
	"wedding-gateway/internal/queue"
	"wedding-gateway/pkg/logger"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	Start(ctx context.Context) error
	// Wait blocks until the delivery loop has exited after ctx cancellation.
	Wait()
}

type NotificationWorkerImpl struct {
	notifier notify.Notifier
	queue    queue.NotificationQueue
	wg       sync.WaitGroup
}

func NewNotificationWorker(notifier notify.Notifier, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		log := logger.WithComponent("worker")
		for msg := range msgs {
			// one attempt per notification; failures are logged and dropped
			receipt, err := w.notifier.SendUploadNotification(ctx, *msg.Data)
			if err != nil {
				log.Warn("upload notification not delivered",
					zap.String("notification_id", msg.Data.ID),
					zap.Error(err),
				)
			} else {
				log.Info("upload notification delivered",
					zap.String("notification_id", msg.Data.ID),
					zap.String("relay_message", receipt.Message),
				)
			}
			msg.Ack()
		}
	}()
	return nil
}

func (w *NotificationWorkerImpl) Wait() {
	w.wg.Wait()
}
