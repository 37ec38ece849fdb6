package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/usecase"
)

const (
	msgInternalError = "Erro interno do servidor"
	msgLeadNotFound  = "Lead não encontrado"
	msgInvalidJSON   = "JSON inválido"
	msgInvalidID     = "ID inválido"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeError traduz erros de use case em status HTTP. Falhas técnicas vão
// para o log e o cliente recebe só a mensagem genérica.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var ve usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErrorResponse(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, entity.ErrNotFound):
		writeErrorResponse(w, http.StatusNotFound, msgLeadNotFound)
	default:
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		}
		var te *usecase.TechnicalError
		if errors.As(err, &te) {
			fields = append(fields, zap.String("code", te.Code))
		}
		logger.Error("erro ao processar requisição", fields...)
		writeErrorResponse(w, http.StatusInternalServerError, msgInternalError)
	}
}
