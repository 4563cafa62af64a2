package sms

import (
	"context"
	"sync"
	"time"

	"staffing-backend/internal/metrics"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"

	"golang.org/x/time/rate"
)

// LogStore persists one row per attempt.
type LogStore interface {
	Create(ctx context.Context, l *models.SMSLog) error
}

// Message is one outgoing text.
type Message struct {
	OrderID string
	StaffID string
	Phone   string
	Type    string
	Text    string
}

// Dispatcher paces sends through a token bucket and logs every attempt.
type Dispatcher struct {
	provider Provider
	limiter  *rate.Limiter
	logs     LogStore
	log      logger.Logger
	wg       sync.WaitGroup
}

// NewDispatcher allows perSecond messages per second. logs may be nil.
func NewDispatcher(provider Provider, perSecond float64, logs LogStore, log logger.Logger) *Dispatcher {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &Dispatcher{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
		logs:     logs,
		log:      log,
	}
}

// Send waits for the limiter, then delivers one message.
func (d *Dispatcher) Send(ctx context.Context, m Message) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}

	entry := &models.SMSLog{
		OrderID:     m.OrderID,
		StaffID:     m.StaffID,
		Phone:       m.Phone,
		MessageType: m.Type,
		Message:     m.Text,
		Status:      models.SMSStatusSent,
		Cost:        d.provider.Cost(),
	}

	ref, err := d.provider.Send(ctx, m.Phone, m.Text)
	if err != nil {
		entry.Status = models.SMSStatusFailed
		entry.ErrorMessage = err.Error()
		entry.Cost = 0
		d.log.Warn("sms send failed", "phone", m.Phone, "order_id", m.OrderID, "error", err)
	}
	entry.ReferenceID = ref
	metrics.SMSMessagesTotal.WithLabelValues(entry.Status).Inc()
	d.record(entry)
	return err
}

// SendBatch sends each message in order and summarises the result. A cancelled
// context marks the remaining messages as failed.
func (d *Dispatcher) SendBatch(ctx context.Context, msgs []Message) models.SMSSummary {
	var summary models.SMSSummary
	for _, m := range msgs {
		if err := d.Send(ctx, m); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, models.SMSFailure{
				StaffID: m.StaffID,
				Phone:   m.Phone,
				Error:   err.Error(),
			})
			continue
		}
		summary.Sent++
	}
	return summary
}

// record writes the log row in the background so slow storage never delays delivery.
func (d *Dispatcher) record(entry *models.SMSLog) {
	if d.logs == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.logs.Create(ctx, entry); err != nil {
			d.log.InternalError("failed to write sms log", err, "phone", entry.Phone)
		}
	}()
}

// Wait blocks until pending log writes finish. Called on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
