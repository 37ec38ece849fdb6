package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/usecase"
)

const msgInvalidLayoutValue = "Valor inválido. Deve ser 1, 2 ou 3"

type LayoutConfigHandler struct {
	UseCase *usecase.LayoutConfigUseCase
	Logger  *zap.Logger
}

func NewLayoutConfigHandler(uc *usecase.LayoutConfigUseCase, logger *zap.Logger) *LayoutConfigHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LayoutConfigHandler{UseCase: uc, Logger: logger}
}

type LayoutConfigResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *entity.LayoutConfig `json:"data,omitempty"`
}

// Get (GET /layout-config)
func (h *LayoutConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.UseCase.Get(r.Context())
	if err != nil {
		h.Logger.Error("erro ao obter configuração de layout", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, LayoutConfigResponse{Message: "Erro ao obter configuração"})
		return
	}
	writeJSON(w, http.StatusOK, LayoutConfigResponse{
		Success: true,
		Message: "Configuração de layout obtida com sucesso",
		Data:    &cfg,
	})
}

// Patch (PATCH /layout-config) aceita {"value": 2} ou {"value": "2"}.
func (h *LayoutConfigHandler) Patch(w http.ResponseWriter, r *http.Request) {
	value, ok := parseLayoutValue(r.Body)
	if !ok {
		writeJSON(w, http.StatusBadRequest, LayoutConfigResponse{Message: msgInvalidLayoutValue})
		return
	}

	cfg, err := h.UseCase.Patch(r.Context(), value)
	if errors.Is(err, entity.ErrInvalidLayoutValue) {
		writeJSON(w, http.StatusBadRequest, LayoutConfigResponse{Message: msgInvalidLayoutValue})
		return
	}
	if err != nil {
		h.Logger.Error("erro ao atualizar configuração de layout", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, LayoutConfigResponse{Message: "Erro ao atualizar configuração"})
		return
	}

	writeJSON(w, http.StatusOK, LayoutConfigResponse{
		Success: true,
		Message: "Configuração atualizada com sucesso",
		Data:    &cfg,
	})
}

// parseLayoutValue aceita número inteiro ou string numérica; o resto é inválido.
func parseLayoutValue(body io.Reader) (int, bool) {
	var input struct {
		Value json.Number `json:"value"`
	}
	if err := json.NewDecoder(body).Decode(&input); err != nil {
		return 0, false
	}
	n, err := input.Value.Int64()
	if err != nil {
		return 0, false
	}
	return int(n), true
}
