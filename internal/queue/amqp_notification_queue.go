package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"runway-tickets/internal/model"
	"runway-tickets/pkg/logger"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const AMQPQueueName = "tickets.issued"

// AMQPNotificationQueue 透過 RabbitMQ durable queue 傳遞開票通知
type AMQPNotificationQueue struct {
	conn      *amqp.Connection
	queueName string

	mu sync.Mutex
	ch *amqp.Channel
}

func NewAMQPNotificationQueue(url string) (*AMQPNotificationQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// durable queue，broker 重啟後訊息仍在
	if _, err := ch.QueueDeclare(AMQPQueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPNotificationQueue{
		conn:      conn,
		queueName: AMQPQueueName,
		ch:        ch,
	}, nil
}

func (q *AMQPNotificationQueue) Publish(ctx context.Context, notification *model.TicketIssued) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    notification.TicketID.String(),
		Body:         body,
	}

	// amqp.Channel 不可併發使用
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.PublishWithContext(ctx, "", q.queueName, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Subscribe 使用獨立 channel 消費；手動 ack
func (q *AMQPNotificationQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	ch, err := q.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open consumer channel: %w", err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	msgs, err := ch.Consume(q.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consume: %w", err)
	}

	out := make(chan Delivery)
	go func() {
		defer close(out)
		defer func() { _ = ch.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				d, ok := q.newDelivery(msg)
				if !ok {
					continue
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

func (q *AMQPNotificationQueue) newDelivery(msg amqp.Delivery) (Delivery, bool) {
	var notification model.TicketIssued
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		logger.WithComponent("mq").Warn("unmarshal notification failed", zap.String("message_id", msg.MessageId), zap.Error(err))
		// 無法解析的訊息不重送
		_ = msg.Nack(false, false)
		return Delivery{}, false
	}
	return Delivery{
		Data: &notification,
		Ack: func() {
			if err := msg.Ack(false); err != nil {
				logger.WithComponent("mq").Error("ack failed", zap.String("message_id", msg.MessageId), zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if err := msg.Nack(false, requeue); err != nil {
				logger.WithComponent("mq").Error("nack failed", zap.String("message_id", msg.MessageId), zap.Error(err))
			}
		},
	}, true
}

func (q *AMQPNotificationQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.Close(); err != nil && !q.conn.IsClosed() {
		logger.WithComponent("mq").Warn("close channel failed", zap.Error(err))
	}
	return q.conn.Close()
}
