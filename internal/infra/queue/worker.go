package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// LeadNotifier avisa a equipe comercial sobre um lead novo (email, etc).
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead entity.Lead) error
}

var ErrMalformedEvent = errors.New("malformed lead event")

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
	Logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Notifier: notifier, Logger: logger}
}

// Start consome a fila até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info("worker aguardando na fila", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal de consumo fechado")
			}
			if err := w.Process(ctx, d.Body); err != nil {
				w.Logger.Error("falha ao processar evento", zap.Error(err))
				// sem requeue: a mensagem vai para a DLQ
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

// Process decodes one delivery body and notifies on lead.created. Other event
// types are acknowledged without side effects.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var event LeadEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if event.Type != EventLeadCreated {
		w.Logger.Debug("evento ignorado", zap.String("type", event.Type), zap.Int64("lead_id", event.LeadID))
		return nil
	}
	if event.Lead == nil {
		return fmt.Errorf("%w: lead ausente no evento %s", ErrMalformedEvent, event.ID)
	}

	if err := w.Notifier.NotifyNewLead(ctx, *event.Lead); err != nil {
		return fmt.Errorf("erro ao notificar lead %d: %w", event.LeadID, err)
	}

	w.Logger.Info("notificação de lead enviada", zap.Int64("lead_id", event.LeadID))
	return nil
}
