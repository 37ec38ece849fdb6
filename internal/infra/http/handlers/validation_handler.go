package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/usecase"
)

// ValidationHandler atende o pré-check de email do formulário.
type ValidationHandler struct {
	UseCase *usecase.LeadUseCase
	Logger  *zap.Logger
}

func NewValidationHandler(uc *usecase.LeadUseCase, logger *zap.Logger) *ValidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationHandler{UseCase: uc, Logger: logger}
}

type checkEmailRequest struct {
	Email     string `json:"email"`
	ExcludeID int64  `json:"excludeId"`
}

type checkEmailResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// Handle (POST /leads/check-email)
func (h *ValidationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input checkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	err := h.UseCase.CheckEmail(r.Context(), input.Email, input.ExcludeID)

	var ve usecase.ValidationError
	if errors.As(err, &ve) && ve.Reason == usecase.ReasonDuplicate {
		writeJSON(w, http.StatusConflict, checkEmailResponse{Available: false, Message: ve.Message})
		return
	}
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, checkEmailResponse{Available: true})
}
