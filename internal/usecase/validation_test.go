package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

func validLead() entity.Lead {
	return entity.Lead{Name: "Ana", Email: "ana@x.com", Phone: "11999999999", Position: "CTO"}
}

func TestValidateLeadRequiredOrder(t *testing.T) {
	tests := []struct {
		name  string
		lead  entity.Lead
		field string
	}{
		{"all missing reports name", entity.Lead{}, "name"},
		{"blank name", entity.Lead{Name: "   ", Email: "a@x.com", Phone: "1", Position: "x"}, "name"},
		{"missing email", entity.Lead{Name: "A", Phone: "1", Position: "x"}, "email"},
		{"missing phone and position", entity.Lead{Name: "A", Email: "a@x.com"}, "phone"},
		{"missing position", entity.Lead{Name: "A", Email: "a@x.com", Phone: "1"}, "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateLead(tt.lead)

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, ReasonRequired, ve.Reason)
			assert.Equal(t, "O campo '"+tt.field+"' é obrigatório", ve.Message)
		})
	}
}

func TestValidateLeadEmailFormat(t *testing.T) {
	for _, email := range []string{"ana", "ana@x", "ana @x.com", "@x.com", "ana@.com x"} {
		l := validLead()
		l.Email = email

		_, err := ValidateLead(l)

		var ve ValidationError
		require.ErrorAs(t, err, &ve, email)
		assert.Equal(t, ReasonInvalidFormat, ve.Reason, email)
		assert.Equal(t, "Formato de email inválido", ve.Message)
	}
}

func TestLeadEmailTagRegistered(t *testing.T) {
	assert.NoError(t, leadValidate.Var("ana@x.com", "leademail"))
	assert.Error(t, leadValidate.Var("ana@x", "leademail"))
}

func TestValidateLeadTrims(t *testing.T) {
	l := validLead()
	l.Name = "  Ana  "
	l.Email = " ana@x.com "

	got, err := ValidateLead(l)

	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
}

func TestCheckEmailAvailable(t *testing.T) {
	snapshot := []entity.Lead{{ID: 1, Email: "ana@x.com"}, {ID: 2, Email: "bia@x.com"}}

	err := CheckEmailAvailable("ANA@X.COM", 0, snapshot)
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ReasonDuplicate, ve.Reason)
	assert.Equal(t, "Email já está em uso", ve.Message)

	assert.NoError(t, CheckEmailAvailable("ana@x.com", 1, snapshot))
	assert.NoError(t, CheckEmailAvailable("caio@x.com", 0, snapshot))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(DuplicateEmailError()))
	assert.False(t, IsValidationError(&TechnicalError{Message: "x"}))
	assert.True(t, IsTechnicalError(databaseError("x", assert.AnError)))
}
