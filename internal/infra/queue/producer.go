package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

// ReportPayload carries only the record id; the consumer loads the
// current state of the valuation before sending, so a resend after an
// edit always reflects the persisted record.
type ReportPayload struct {
	ValuationID string `json:"valuation_id"`
}

// Producer publishes report jobs. It satisfies the usecase's
// NotificationDispatcher, turning "send a report" into a durable
// message handoff.
type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) DispatchReport(ctx context.Context, v *entity.Valuation) error {
	return p.PublishReport(ctx, ReportPayload{ValuationID: v.ID})
}

func (p *Producer) PublishReport(ctx context.Context, payload ReportPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish report job: %w", err)
	}
	return nil
}
