package queue

import (
	"context"
	"errors"

	"wedding-gateway/internal/model"
)

var ErrQueueFull = errors.New("notification queue full")

type Delivery struct {
	Data *model.UploadNotification
	Ack  func()
}

type NotificationQueue interface {
	// Publish never waits for a consumer; a full queue is an error the caller may ignore.
	Publish(ctx context.Context, n *model.UploadNotification) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type NotificationQueueImpl struct {
	ch chan *model.UploadNotification
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	return &NotificationQueueImpl{
		ch: make(chan *model.UploadNotification, bufferSize),
	}
}

func (q *NotificationQueueImpl) Publish(ctx context.Context, n *model.UploadNotification) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.ch <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *NotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-q.ch:
				select {
				case out <- Delivery{Data: n, Ack: func() {}}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
