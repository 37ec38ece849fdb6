package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

const leadColumns = `id, name, email, phone, position, birth_date, message,
	fbclid, gclid, utm_source, utm_medium, utm_campaign, utm_term, utm_content,
	created_at, updated_at`

type LeadRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db, Now: time.Now}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone, position, birth_date, message,
			fbclid, gclid, utm_source, utm_medium, utm_campaign, utm_term, utm_content,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	now := r.Now().UTC()
	err := r.DB.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Position,
		lead.BirthDate,
		lead.Message,
		lead.FBCLID,
		lead.GCLID,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
		lead.UTMTerm,
		lead.UTMContent,
		now,
		now,
	).Scan(&lead.ID)
	if err != nil {
		return mapError(err)
	}

	lead.CreatedAt = now
	lead.UpdatedAt = now
	return nil
}

// Update trava a linha (FOR UPDATE), aplica apply e grava na mesma transação.
func (r *LeadRepository) Update(ctx context.Context, id int64, apply func(entity.Lead) (entity.Lead, error)) (*entity.Lead, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id)
	current, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &entity.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}

	next, err := apply(*current)
	if err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = entity.NextUpdatedAt(current.UpdatedAt, r.Now())

	_, err = tx.ExecContext(ctx, `
		UPDATE leads SET name = $1, email = $2, phone = $3, position = $4,
			birth_date = $5, message = $6, fbclid = $7, gclid = $8,
			utm_source = $9, utm_medium = $10, utm_campaign = $11,
			utm_term = $12, utm_content = $13, updated_at = $14
		WHERE id = $15
	`,
		next.Name,
		next.Email,
		next.Phone,
		next.Position,
		next.BirthDate,
		next.Message,
		next.FBCLID,
		next.GCLID,
		next.UTMSource,
		next.UTMMedium,
		next.UTMCampaign,
		next.UTMTerm,
		next.UTMContent,
		next.UpdatedAt,
		id,
	)
	if err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapError(err)
	}
	return &next, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &entity.NotFoundError{ID: id}
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &entity.NotFoundError{ID: id}
	}
	return lead, err
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectLeads(rows)
}

func (r *LeadRepository) Search(ctx context.Context, term string) ([]entity.Lead, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE name ILIKE $1 ESCAPE '\' OR email ILIKE $1 ESCAPE '\'
			OR phone ILIKE $1 ESCAPE '\' OR position ILIKE $1 ESCAPE '\'
		ORDER BY id
	`, pattern)
	if err != nil {
		return nil, err
	}
	return collectLeads(rows)
}

func (r *LeadRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM leads WHERE lower(email) = lower($1) AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Position,
		&l.BirthDate,
		&l.Message,
		&l.FBCLID,
		&l.GCLID,
		&l.UTMSource,
		&l.UTMMedium,
		&l.UTMCampaign,
		&l.UTMTerm,
		&l.UTMContent,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLeads(rows *sql.Rows) ([]entity.Lead, error) {
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}

// mapError traduz a violação do índice único de email.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return entity.ErrEmailAlreadyExists
	}
	return fmt.Errorf("erro no banco: %w", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
