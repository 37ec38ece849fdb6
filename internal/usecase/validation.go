package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

const (
	ReasonRequired      = "required"
	ReasonInvalidFormat = "invalid_format"
	ReasonDuplicate     = "duplicate"
)

const (
	msgInvalidEmail   = "Formato de email inválido"
	msgDuplicateEmail = "Email já está em uso"
)

type ValidationError struct {
	Field   string
	Reason  string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var leadValidate *validator.Validate

func init() {
	leadValidate = validator.New()
	err := leadValidate.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: registrar leademail: %v", err))
	}
}

// requiredLeadFields segue a ordem de checagem: name, email, phone, position.
type requiredLeadFields struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Phone    string `validate:"required"`
	Position string `validate:"required"`
}

var jsonFieldNames = map[string]string{
	"Name":     "name",
	"Email":    "email",
	"Phone":    "phone",
	"Position": "position",
}

// ValidateLead trims the required fields, checks presence (fail fast, in
// field order) and the email shape. It returns the normalized lead.
func ValidateLead(l entity.Lead) (entity.Lead, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Position = strings.TrimSpace(l.Position)

	fields := requiredLeadFields{Name: l.Name, Email: l.Email, Phone: l.Phone, Position: l.Position}
	if err := leadValidate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := jsonFieldNames[verrs[0].Field()]
			return l, ValidationError{
				Field:   field,
				Reason:  ReasonRequired,
				Message: fmt.Sprintf("O campo '%s' é obrigatório", field),
			}
		}
		return l, err
	}

	if err := leadValidate.Var(l.Email, "leademail"); err != nil {
		return l, ValidationError{Field: "email", Reason: ReasonInvalidFormat, Message: msgInvalidEmail}
	}

	return l, nil
}

// CheckEmailAvailable checks uniqueness against a snapshot of the store,
// ignoring excludeID (the lead being updated).
func CheckEmailAvailable(email string, excludeID int64, snapshot []entity.Lead) error {
	if entity.EmailTaken(snapshot, email, excludeID) {
		return DuplicateEmailError()
	}
	return nil
}

// DuplicateEmailError é o erro de validação para email repetido.
func DuplicateEmailError() ValidationError {
	return ValidationError{Field: "email", Reason: ReasonDuplicate, Message: msgDuplicateEmail}
}
