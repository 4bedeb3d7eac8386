package queue

import (
	"context"
	"runway-tickets/internal/model"
)

type Delivery struct {
	Data *model.TicketIssued
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	// 發送開票通知到隊列
	Publish(ctx context.Context, notification *model.TicketIssued) error
	// 訂閱開票通知
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type MemoryNotificationQueue struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.TicketIssued
}

func NewMemoryNotificationQueue(bufferSize int) NotificationQueue {
	return &MemoryNotificationQueue{
		ch: make(chan *model.TicketIssued, bufferSize),
	}
}

func (q *MemoryNotificationQueue) Publish(ctx context.Context, notification *model.TicketIssued) error {
	select {
	case q.ch <- notification:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryNotificationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case notification := <-q.ch:
				// 包裝成 Delivery 格式給 Worker
				d := Delivery{
					Data: notification,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							select {
							case q.ch <- notification:
							default:
							}
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// NoopNotificationQueue 關閉通知時使用，Publish 直接丟棄
type NoopNotificationQueue struct{}

func (NoopNotificationQueue) Publish(context.Context, *model.TicketIssued) error { return nil }

func (NoopNotificationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out, nil
}
