package database

import (
	"context"
	"sync"
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// MemoryLayoutConfigRepository guarda o singleton de layout em processo.
type MemoryLayoutConfigRepository struct {
	mu       sync.Mutex
	config   *entity.LayoutConfig
	Operator string
	Now      func() time.Time
}

func NewMemoryLayoutConfigRepository(operator string) *MemoryLayoutConfigRepository {
	return &MemoryLayoutConfigRepository{Operator: operator, Now: time.Now}
}

func (r *MemoryLayoutConfigRepository) Get(_ context.Context) (entity.LayoutConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current(), nil
}

func (r *MemoryLayoutConfigRepository) Update(_ context.Context, apply func(entity.LayoutConfig) (entity.LayoutConfig, error)) (entity.LayoutConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := apply(r.current())
	if err != nil {
		return entity.LayoutConfig{}, err
	}
	r.config = &next
	return next, nil
}

// current cria o registro padrão no primeiro acesso.
func (r *MemoryLayoutConfigRepository) current() entity.LayoutConfig {
	if r.config == nil {
		cfg := entity.DefaultLayoutConfig(r.Operator, r.Now().UTC())
		r.config = &cfg
	}
	return *r.config
}
