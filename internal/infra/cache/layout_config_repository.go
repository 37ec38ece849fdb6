package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

const (
	LayoutConfigKey = "layout-config"
	maxTxRetries    = 5
)

var ErrTooManyConflicts = errors.New("layout config: too many concurrent updates")

// LayoutConfigRepository guarda o singleton de layout como JSON no Redis.
type LayoutConfigRepository struct {
	Client   *redis.Client
	Key      string
	Operator string
	Now      func() time.Time
}

func NewLayoutConfigRepository(client *redis.Client, operator string) *LayoutConfigRepository {
	return &LayoutConfigRepository{
		Client:   client,
		Key:      LayoutConfigKey,
		Operator: operator,
		Now:      time.Now,
	}
}

func (r *LayoutConfigRepository) Get(ctx context.Context) (entity.LayoutConfig, error) {
	cfg, found, err := r.load(ctx, r.Client)
	if err != nil || found {
		return cfg, err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return entity.LayoutConfig{}, err
	}
	// outro processo pode ter criado o registro antes
	created, err := r.Client.SetNX(ctx, r.Key, data, 0).Result()
	if err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("erro ao gravar configuração padrão: %w", err)
	}
	if !created {
		cfg, _, err = r.load(ctx, r.Client)
	}
	return cfg, err
}

// Update lê, aplica e grava sob WATCH; conflitos são repetidos.
func (r *LayoutConfigRepository) Update(ctx context.Context, apply func(entity.LayoutConfig) (entity.LayoutConfig, error)) (entity.LayoutConfig, error) {
	var result entity.LayoutConfig

	txf := func(tx *redis.Tx) error {
		current, _, err := r.load(ctx, tx)
		if err != nil {
			return err
		}

		next, err := apply(current)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.Key, data, 0)
			return nil
		})
		if err == nil {
			result = next
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.Client.Watch(ctx, txf, r.Key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return entity.LayoutConfig{}, err
	}
	return entity.LayoutConfig{}, ErrTooManyConflicts
}

// load devolve o registro padrão (found=false) quando a chave não existe.
func (r *LayoutConfigRepository) load(ctx context.Context, c redis.Cmdable) (entity.LayoutConfig, bool, error) {
	data, err := c.Get(ctx, r.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.DefaultLayoutConfig(r.Operator, r.Now().UTC()), false, nil
	}
	if err != nil {
		return entity.LayoutConfig{}, false, fmt.Errorf("erro ao ler configuração: %w", err)
	}

	var cfg entity.LayoutConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return entity.LayoutConfig{}, false, fmt.Errorf("configuração corrompida: %w", err)
	}
	return cfg, true, nil
}
