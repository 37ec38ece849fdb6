package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// Tipos de evento; também são as routing keys.
const (
	EventLeadCreated = "lead.created"
	EventLeadUpdated = "lead.updated"
	EventLeadDeleted = "lead.deleted"
)

type LeadEvent struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	LeadID     int64        `json:"lead_id"`
	Lead       *entity.Lead `json:"lead,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewLeadEvent monta o evento; deleções carregam só o id.
func NewLeadEvent(eventType string, lead entity.Lead) LeadEvent {
	event := LeadEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		LeadID:     lead.ID,
		OccurredAt: time.Now().UTC(),
	}
	if eventType != EventLeadDeleted {
		event.Lead = &lead
	}
	return event
}

// Publisher is the subset of *amqp.Channel used by the producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		event.Type, // routing key
		false,      // Mandatory
		false,      // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
