package entity

import (
	"context"
	"time"
)

// LayoutConfig guarda o tema selecionado da landing page (singleton).
type LayoutConfig struct {
	ID            int64     `json:"id"`
	Value         int       `json:"value"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidLayoutValue reports whether v is one of the three available themes.
func ValidLayoutValue(v int) bool {
	return v >= 1 && v <= 3
}

// DefaultLayoutConfig é o registro inicial quando o store está vazio.
func DefaultLayoutConfig(operator string, now time.Time) LayoutConfig {
	return LayoutConfig{
		ID:            1,
		Value:         2,
		LastUpdatedBy: operator,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

type LayoutConfigRepositoryInterface interface {
	Get(ctx context.Context) (LayoutConfig, error)
	// Update aplica apply atomicamente; erro em apply mantém o registro intacto.
	Update(ctx context.Context, apply func(current LayoutConfig) (LayoutConfig, error)) (LayoutConfig, error)
}
