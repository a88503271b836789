package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/http/middleware"
	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

// Worker consumes report jobs and delivers them through the direct
// dispatcher. It is the only place the queue path touches SMTP.
type Worker struct {
	Channel    *amqp.Channel
	Valuations entity.ValuationRepositoryInterface
	Dispatcher usecase.NotificationDispatcher
}

func NewWorker(ch *amqp.Channel, valuations entity.ValuationRepositoryInterface, dispatcher usecase.NotificationDispatcher) *Worker {
	return &Worker{
		Channel:    ch,
		Valuations: valuations,
		Dispatcher: dispatcher,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("register report consumer: %s", err)
	}

	log.Printf("report worker waiting on queue %q", queueName)

	for d := range msgs {
		var payload ReportPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			log.Printf("report job has invalid JSON, dropping: %s", err)
			// Malformed message. Reject without requeue so it dead-letters.
			d.Nack(false, false)
			continue
		}

		if err := w.process(context.Background(), payload); err != nil {
			log.Printf("report job for %s failed: %s", payload.ValuationID, err)
			middleware.RecordReportDispatchError("queue")
			d.Nack(false, false)
			continue
		}

		log.Printf("report sent for %s", payload.ValuationID)
		d.Ack(false)
	}
}

func (w *Worker) process(ctx context.Context, payload ReportPayload) error {
	v, err := w.Valuations.FindByID(ctx, payload.ValuationID)
	if errors.Is(err, entity.ErrNotFound) {
		// Record deleted between publish and consume. Nothing to send.
		log.Printf("report job for %s: record gone, skipping", payload.ValuationID)
		return nil
	}
	if err != nil {
		return err
	}
	return w.Dispatcher.DispatchReport(ctx, v)
}
