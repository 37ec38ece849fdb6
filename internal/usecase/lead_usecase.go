package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/analytics"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/queue"
)

// LeadUseCase orquestra validação, store e publicação de eventos.
type LeadUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Publisher LeadEventPublisher
	Logger    *zap.Logger
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, publisher LeadEventPublisher, logger *zap.Logger) *LeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadUseCase{Repo: repo, Publisher: publisher, Logger: logger}
}

// List returns every lead in insertion order.
func (uc *LeadUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, databaseError("erro ao buscar leads", err)
	}
	return leads, nil
}

// Search returns the leads matching term. A blank term yields an empty
// result, never the full list.
func (uc *LeadUseCase) Search(ctx context.Context, term string) ([]entity.Lead, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entity.Lead{}, nil
	}
	leads, err := uc.Repo.Search(ctx, term)
	if err != nil {
		return nil, databaseError("erro na busca de leads", err)
	}
	return leads, nil
}

// Page serves the paginated table. Unlike Search, a blank term lists all leads.
func (uc *LeadUseCase) Page(ctx context.Context, term string, page, perPage int) (*LeadPageOutput, error) {
	var (
		leads []entity.Lead
		err   error
	)
	if strings.TrimSpace(term) == "" {
		leads, err = uc.List(ctx)
	} else {
		leads, err = uc.Search(ctx, term)
	}
	if err != nil {
		return nil, err
	}

	data, info := analytics.Paginate(leads, perPage, page)
	return &LeadPageOutput{Data: data, PageInfo: info}, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, id int64) (*LeadDetailsOutput, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, databaseError("erro ao buscar lead", err)
	}

	clean, tracking := entity.ParseTrackingData(lead.Message)
	return &LeadDetailsOutput{Lead: *lead, CleanMessage: clean, Tracking: tracking}, nil
}

func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	lead, err := ValidateLead(input.lead())
	if err != nil {
		return nil, err
	}

	taken, err := uc.Repo.EmailExists(ctx, lead.Email, 0)
	if err != nil {
		return nil, databaseError("erro ao validar email", err)
	}
	if taken {
		return nil, DuplicateEmailError()
	}

	// o store garante a unicidade de novo, de forma atômica
	if err := uc.Repo.Create(ctx, &lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, DuplicateEmailError()
		}
		return nil, databaseError("erro ao criar lead", err)
	}

	uc.Logger.Info("lead criado", zap.Int64("lead_id", lead.ID))
	uc.publish(ctx, queue.EventLeadCreated, lead)
	return &lead, nil
}

// Update merges patch over the stored lead and validates the result. ID and
// createdAt are pinned by the store.
func (uc *LeadUseCase) Update(ctx context.Context, id int64, patch entity.LeadPatch) (*entity.Lead, error) {
	updated, err := uc.Repo.Update(ctx, id, func(current entity.Lead) (entity.Lead, error) {
		return ValidateLead(patch.ApplyTo(current))
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound), IsValidationError(err):
			return nil, err
		case errors.Is(err, entity.ErrEmailAlreadyExists):
			return nil, DuplicateEmailError()
		default:
			return nil, databaseError("erro ao atualizar lead", err)
		}
	}

	uc.publish(ctx, queue.EventLeadUpdated, *updated)
	return updated, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return databaseError("erro ao deletar lead", err)
	}

	uc.publish(ctx, queue.EventLeadDeleted, entity.Lead{ID: id})
	return nil
}

// CheckEmail validates an address for the landing-page form before submit.
// excludeID lets the edit modal ignore the lead being edited.
func (uc *LeadUseCase) CheckEmail(ctx context.Context, email string, excludeID int64) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Reason: ReasonRequired, Message: "O campo 'email' é obrigatório"}
	}
	if !emailPattern.MatchString(email) {
		return ValidationError{Field: "email", Reason: ReasonInvalidFormat, Message: msgInvalidEmail}
	}

	taken, err := uc.Repo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return databaseError("erro ao validar duplicidade", err)
	}
	if taken {
		return DuplicateEmailError()
	}
	return nil
}

// publish não falha a requisição: o lead já foi gravado.
func (uc *LeadUseCase) publish(ctx context.Context, eventType string, lead entity.Lead) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishLeadEvent(ctx, queue.NewLeadEvent(eventType, lead)); err != nil {
		uc.Logger.Warn("lead gravado, mas falha ao publicar evento",
			zap.String("event", eventType),
			zap.Int64("lead_id", lead.ID),
			zap.Error(err),
		)
	}
}
