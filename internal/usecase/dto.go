package usecase

import (
	"github.com/alexandremendes381/l0gic-admin-panel/internal/analytics"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// CreateLeadInput é o corpo do POST /leads (sem id e timestamps).
type CreateLeadInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	BirthDate string `json:"birthDate"`
	Message   string `json:"message"`
	entity.Attribution
}

func (in CreateLeadInput) lead() entity.Lead {
	return entity.Lead{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Position:    in.Position,
		BirthDate:   in.BirthDate,
		Message:     in.Message,
		Attribution: in.Attribution,
	}
}

// LeadDetailsOutput acompanha o lead com o payload de tracking já extraído.
type LeadDetailsOutput struct {
	entity.Lead
	CleanMessage string               `json:"cleanMessage"`
	Tracking     *entity.TrackingData `json:"tracking"`
}

type LeadPageOutput struct {
	Data []entity.Lead `json:"data"`
	analytics.PageInfo
}

type ExportOutput struct {
	Filename    string
	ContentType string
	Body        []byte
}
