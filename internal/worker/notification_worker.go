package worker

import (
	"context"
	"runway-tickets/internal/metrics"
	"runway-tickets/internal/model"
	"runway-tickets/internal/queue"
	"runway-tickets/pkg/logger"

	"go.uber.org/zap"
)

// Sender 送出購票確認；實際寄信不在此服務範圍
type Sender interface {
	SendTicketConfirmation(ctx context.Context, notification *model.TicketIssued) error
}

// LogSender 只把確認資訊寫進 log
type LogSender struct{}

func (LogSender) SendTicketConfirmation(ctx context.Context, n *model.TicketIssued) error {
	logger.WithComponent("notifier").Info("ticket confirmation",
		zap.String("ticket_id", n.TicketID.String()),
		zap.String("show_id", n.ShowID.String()),
		zap.String("customer_email", n.CustomerEmail),
		zap.Int("quantity", n.Quantity),
		zap.String("qr_code", n.QRCode),
	)
	return nil
}

type NotificationWorker interface {
	// 消費開票通知，ctx 取消或隊列關閉時返回
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	sender Sender
	queue  queue.NotificationQueue
}

func NewNotificationWorker(sender Sender, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		sender: sender,
		queue:  queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")
	for msg := range msgs {
		if err := w.sender.SendTicketConfirmation(ctx, msg.Data); err != nil {
			// 留給隊列稍後重送
			log.Warn("send ticket confirmation failed", zap.String("ticket_id", msg.Data.TicketID.String()), zap.Error(err))
			metrics.NotificationsSent.WithLabelValues("failed").Inc()
			msg.Nack(true)
			continue
		}
		metrics.NotificationsSent.WithLabelValues("sent").Inc()
		msg.Ack()
	}
	return nil
}
