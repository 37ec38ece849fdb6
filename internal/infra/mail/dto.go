package mail

import "gopkg.in/gomail.v2"

type NewLeadEmailData struct {
	Name      string
	Email     string
	Phone     string
	Position  string
	Message   string
	Source    string
	CreatedAt string
}

// Dialer é satisfeito por *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Dialer Dialer
	From   string
	To     []string
}
