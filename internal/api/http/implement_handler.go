package http

import (
	"encoding/json"
	"net/http"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

// ImplementHandler serves the implement directory and the operator's
// attachment inventory endpoints.
type ImplementHandler struct {
	implements service.ImplementService
}

func NewImplementHandler(implements service.ImplementService) *ImplementHandler {
	return &ImplementHandler{implements: implements}
}

type implementRequest struct {
	Name                   string          `json:"name"`
	Brand                  string          `json:"brand"`
	Model                  string          `json:"model"`
	CompatibleVehicleTypes []string        `json:"compatible_vehicle_types"`
	WorkingWidth           string          `json:"working_width"`
	RateType               domain.RateType `json:"rate_type"`
	Rate                   float64         `json:"rate"`
}

func (h *ImplementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	implement, err := h.implements.GetImplement(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, implement)
}

func (h *ImplementHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req implementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidation("invalid request body: %v", err))
		return
	}

	implement := &domain.Implement{
		OperatorID:             GetUserIDFromContext(r.Context()),
		Name:                   req.Name,
		Brand:                  req.Brand,
		Model:                  req.Model,
		CompatibleVehicleTypes: req.CompatibleVehicleTypes,
		WorkingWidth:           req.WorkingWidth,
		RateType:               req.RateType,
		Rate:                   req.Rate,
	}
	if err := h.implements.AddImplement(r.Context(), implement); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, implement)
}

func (h *ImplementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req implementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidation("invalid request body: %v", err))
		return
	}

	implement := &domain.Implement{
		ID:                     id,
		OperatorID:             GetUserIDFromContext(r.Context()),
		Name:                   req.Name,
		Brand:                  req.Brand,
		Model:                  req.Model,
		CompatibleVehicleTypes: req.CompatibleVehicleTypes,
		WorkingWidth:           req.WorkingWidth,
		RateType:               req.RateType,
		Rate:                   req.Rate,
	}
	if err := h.implements.UpdateImplement(r.Context(), implement); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, implement)
}

func (h *ImplementHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.implements.DeactivateImplement(r.Context(), GetUserIDFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ImplementHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	implements, err := h.implements.ListMyImplements(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"implements": implements})
}
