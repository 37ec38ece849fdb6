package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/analytics"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

const newLeadTemplate = `<h2>Novo lead recebido</h2>
<p><strong>Nome:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Telefone:</strong> {{.Phone}}</p>
<p><strong>Cargo:</strong> {{.Position}}</p>
<p><strong>Origem:</strong> {{.Source}}</p>
<p><strong>Recebido em:</strong> {{.CreatedAt}}</p>
{{if .Message}}<p><strong>Mensagem:</strong><br>{{.Message}}</p>{{end}}
`

var newLeadTmpl = template.Must(template.New("new_lead").Parse(newLeadTemplate))

func NewEmailSender(host string, port int, user, password, from string, to []string) *EmailSender {
	return &EmailSender{
		Dialer: gomail.NewDialer(host, port, user, password),
		From:   from,
		To:     to,
	}
}

// NotifyNewLead envia o resumo do lead para a equipe comercial.
func (s *EmailSender) NotifyNewLead(ctx context.Context, lead entity.Lead) error {
	if len(s.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := RenderNewLead(lead)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To...)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead: %s (%s)", lead.Name, lead.Position))
	m.SetBody("text/html", body)

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func RenderNewLead(lead entity.Lead) (string, error) {
	clean, _ := entity.ParseTrackingData(lead.Message)
	data := NewLeadEmailData{
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Position:  lead.Position,
		Message:   clean,
		Source:    analytics.SourceLabel(lead.UTMSource),
		CreatedAt: lead.CreatedAt.Format(time.DateTime),
	}

	var body bytes.Buffer
	if err := newLeadTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}
