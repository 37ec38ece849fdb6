package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Attribution agrupa os parâmetros de rastreamento de marketing.
// Todos são opcionais e serializam como null quando ausentes.
type Attribution struct {
	FBCLID      *string `json:"fbclid"`
	GCLID       *string `json:"gclid"`
	UTMSource   *string `json:"utm_source"`
	UTMMedium   *string `json:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign"`
	UTMTerm     *string `json:"utm_term"`
	UTMContent  *string `json:"utm_content"`
}

// Lead é um contato capturado pelo formulário da landing page.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Position  string    `json:"position"`
	BirthDate string    `json:"birthDate"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Attribution
}

// HasTracking reports whether the lead carries any attribution signal
// (utm_source, gclid or fbclid).
func (l Lead) HasTracking() bool {
	return Present(l.UTMSource) || Present(l.GCLID) || Present(l.FBCLID)
}

// Tracking extrai o payload "Dados de tracking:{...}" embutido na mensagem.
func (l Lead) Tracking() *TrackingData {
	_, data := ParseTrackingData(l.Message)
	return data
}

// Present returns true for a non-nil, non-blank optional value.
func Present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// OptionalString distingue campo ausente, null explícito e valor.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// LeadPatch carries the fields of an update request. Nil / unset fields keep
// the stored value.
type LeadPatch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Position  *string `json:"position"`
	BirthDate *string `json:"birthDate"`
	Message   *string `json:"message"`

	FBCLID      OptionalString `json:"fbclid"`
	GCLID       OptionalString `json:"gclid"`
	UTMSource   OptionalString `json:"utm_source"`
	UTMMedium   OptionalString `json:"utm_medium"`
	UTMCampaign OptionalString `json:"utm_campaign"`
	UTMTerm     OptionalString `json:"utm_term"`
	UTMContent  OptionalString `json:"utm_content"`
}

// ApplyTo merges the patch over l. ID and CreatedAt are never touched.
func (p LeadPatch) ApplyTo(l Lead) Lead {
	setString(&l.Name, p.Name)
	setString(&l.Email, p.Email)
	setString(&l.Phone, p.Phone)
	setString(&l.Position, p.Position)
	setString(&l.BirthDate, p.BirthDate)
	setString(&l.Message, p.Message)

	setOptional(&l.FBCLID, p.FBCLID)
	setOptional(&l.GCLID, p.GCLID)
	setOptional(&l.UTMSource, p.UTMSource)
	setOptional(&l.UTMMedium, p.UTMMedium)
	setOptional(&l.UTMCampaign, p.UTMCampaign)
	setOptional(&l.UTMTerm, p.UTMTerm)
	setOptional(&l.UTMContent, p.UTMContent)
	return l
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setOptional(dst **string, v OptionalString) {
	if v.Set {
		*dst = v.Value
	}
}

// EmailTaken verifica a unicidade (case-insensitive) do email em um snapshot,
// ignorando o lead excludeID (0 = nenhum).
func EmailTaken(leads []Lead, email string, excludeID int64) bool {
	for _, l := range leads {
		if l.ID != excludeID && strings.EqualFold(l.Email, email) {
			return true
		}
	}
	return false
}

type LeadRepositoryInterface interface {
	// Create atribui ID e timestamps. Retorna ErrEmailAlreadyExists em conflito.
	Create(ctx context.Context, lead *Lead) error
	// Update aplica apply sobre o registro atual de forma atômica.
	Update(ctx context.Context, id int64, apply func(current Lead) (Lead, error)) (*Lead, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindAll(ctx context.Context) ([]Lead, error)
	Search(ctx context.Context, term string) ([]Lead, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}
