package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// DefaultOperator é a identidade gravada em lastUpdatedBy enquanto não há
// atribuição por usuário.
const DefaultOperator = "alexandre mendes"

type LayoutConfigUseCase struct {
	Repo     entity.LayoutConfigRepositoryInterface
	Operator string
	Now      func() time.Time
}

func NewLayoutConfigUseCase(repo entity.LayoutConfigRepositoryInterface, operator string) *LayoutConfigUseCase {
	if operator == "" {
		operator = DefaultOperator
	}
	return &LayoutConfigUseCase{Repo: repo, Operator: operator, Now: time.Now}
}

func (uc *LayoutConfigUseCase) Get(ctx context.Context) (entity.LayoutConfig, error) {
	cfg, err := uc.Repo.Get(ctx)
	if err != nil {
		return entity.LayoutConfig{}, &TechnicalError{Code: "LAYOUT_CONFIG_ERROR", Message: "Erro ao obter configuração", Err: err}
	}
	return cfg, nil
}

// Patch selects theme value. Values outside {1,2,3} fail with
// entity.ErrInvalidLayoutValue and leave the stored config unchanged.
func (uc *LayoutConfigUseCase) Patch(ctx context.Context, value int) (entity.LayoutConfig, error) {
	if !entity.ValidLayoutValue(value) {
		return entity.LayoutConfig{}, entity.ErrInvalidLayoutValue
	}

	cfg, err := uc.Repo.Update(ctx, func(current entity.LayoutConfig) (entity.LayoutConfig, error) {
		current.Value = value
		current.LastUpdatedBy = uc.Operator
		current.UpdatedAt = entity.NextUpdatedAt(current.UpdatedAt, uc.Now())
		return current, nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrInvalidLayoutValue) {
			return entity.LayoutConfig{}, err
		}
		return entity.LayoutConfig{}, &TechnicalError{Code: "LAYOUT_CONFIG_ERROR", Message: "Erro ao atualizar configuração", Err: err}
	}
	return cfg, nil
}
