package database

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// MemoryLeadRepository é o store em processo usado sem DATABASE_URL.
// Cada operação roda inteira sob o mutex.
type MemoryLeadRepository struct {
	mu     sync.RWMutex
	leads  []entity.Lead
	lastID int64
	Now    func() time.Time
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{Now: time.Now}
}

func (r *MemoryLeadRepository) Create(_ context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entity.EmailTaken(r.leads, lead.Email, 0) {
		return entity.ErrEmailAlreadyExists
	}

	now := r.Now().UTC()
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	lead.ID = id
	lead.CreatedAt = now
	lead.UpdatedAt = now
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *MemoryLeadRepository) Update(_ context.Context, id int64, apply func(entity.Lead) (entity.Lead, error)) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, &entity.NotFoundError{ID: id}
	}
	current := r.leads[i]

	next, err := apply(current)
	if err != nil {
		return nil, err
	}
	if entity.EmailTaken(r.leads, next.Email, id) {
		return nil, entity.ErrEmailAlreadyExists
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = entity.NextUpdatedAt(current.UpdatedAt, r.Now())
	r.leads[i] = next
	return &next, nil
}

func (r *MemoryLeadRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return &entity.NotFoundError{ID: id}
	}
	r.leads = append(r.leads[:i], r.leads[i+1:]...)
	return nil
}

func (r *MemoryLeadRepository) FindByID(_ context.Context, id int64) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, &entity.NotFoundError{ID: id}
	}
	lead := r.leads[i]
	return &lead, nil
}

func (r *MemoryLeadRepository) FindAll(_ context.Context) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

func (r *MemoryLeadRepository) Search(_ context.Context, term string) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.Lead{}
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return out, nil
	}
	for _, l := range r.leads {
		if matches(l, needle) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *MemoryLeadRepository) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return entity.EmailTaken(r.leads, email, excludeID), nil
}

func (r *MemoryLeadRepository) indexOf(id int64) int {
	for i, l := range r.leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func matches(l entity.Lead, needle string) bool {
	for _, field := range []string{l.Name, l.Email, l.Phone, l.Position} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
