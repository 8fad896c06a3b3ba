package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/rabbitmq/amqp091-go"
)

// ReportCompletedKey is the routing key of the report summary event
const ReportCompletedKey = "analytics.report.completed"

// Publisher is the part of *amqp091.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// PublishRecorder observes publish attempts.
type PublishRecorder interface {
	ObservePublish(exchange string, err error)
}

type ReportProducer struct {
	ch       Publisher
	exchange string
	recorder PublishRecorder
}

func NewReportProducer(ch Publisher, exchange string, recorder PublishRecorder) *ReportProducer {
	return &ReportProducer{
		ch:       ch,
		exchange: exchange,
		recorder: recorder,
	}
}

// PublishReport publishes the summary of a finished run.
func (p *ReportProducer) PublishReport(ctx context.Context, msg models.ReportSummaryMessage) (err error) {
	const op = "ReportProducer.PublishReport"
	ctx = wrap.WithAction(ctx, types.ActionReportPublish)

	defer func() {
		if p.recorder != nil {
			p.recorder.ObservePublish(p.exchange, err)
		}
	}()

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	if err = p.ch.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		ReportCompletedKey, // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.RunID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	return nil
}
