package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/http/middleware"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/usecase"
)

const msgTooManyRequests = "Muitas requisições. Tente novamente em instantes."

type LeadHandler struct {
	UseCase     *usecase.LeadUseCase
	Logger      *zap.Logger
	rateLimiter *RateLimiter
}

func NewLeadHandler(uc *usecase.LeadUseCase, logger *zap.Logger, perMinute int) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{
		UseCase:     uc,
		Logger:      logger,
		rateLimiter: NewRateLimiter(perMinute),
	}
}

// List (GET /leads)
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.UseCase.List(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// Search (GET /leads/search?q=)
func (h *LeadHandler) Search(w http.ResponseWriter, r *http.Request) {
	leads, err := h.UseCase.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// Page (GET /leads/page?q=&page=&per_page=)
func (h *LeadHandler) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	out, err := h.UseCase.Page(r.Context(), q.Get("q"), page, perPage)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Get (GET /leads/{id})
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	out, err := h.UseCase.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Create (POST /leads) é o endpoint público do formulário, por isso o limite por IP.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, msgTooManyRequests)
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	lead, err := h.UseCase.Create(r.Context(), input)
	if err != nil {
		middleware.RecordLeadMutation("create", "error")
		writeError(w, r, h.Logger, err)
		return
	}

	middleware.RecordLeadMutation("create", "ok")
	writeJSON(w, http.StatusCreated, lead)
}

// Update (PUT /leads/{id})
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var patch entity.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	lead, err := h.UseCase.Update(r.Context(), id, patch)
	if err != nil {
		middleware.RecordLeadMutation("update", "error")
		writeError(w, r, h.Logger, err)
		return
	}

	middleware.RecordLeadMutation("update", "ok")
	writeJSON(w, http.StatusOK, lead)
}

// Delete (DELETE /leads/{id})
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	if err := h.UseCase.Delete(r.Context(), id); err != nil {
		middleware.RecordLeadMutation("delete", "error")
		writeError(w, r, h.Logger, err)
		return
	}

	middleware.RecordLeadMutation("delete", "ok")
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Lead deletado com sucesso"})
}

func leadID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}
