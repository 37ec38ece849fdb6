package usecase

import (
	"context"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/queue"
)

type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
}
