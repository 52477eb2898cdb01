package http

import (
	"encoding/json"
	"net/http"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

// VehicleHandler serves the vehicle directory and the operator's fleet
// management endpoints.
type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type vehicleRequest struct {
	Type               domain.VehicleType `json:"type"`
	Brand              string             `json:"brand"`
	Model              string             `json:"model"`
	PowerCapacity      string             `json:"power_capacity"`
	FuelType           string             `json:"fuel_type"`
	RegistrationNumber string             `json:"registration_number"`
	RateType           domain.RateType    `json:"rate_type"`
	Rate               float64            `json:"rate"`
}

func (h *VehicleHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListAvailableVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidation("invalid request body: %v", err))
		return
	}

	vehicle := &domain.Vehicle{
		OperatorID:         GetUserIDFromContext(r.Context()),
		Type:               req.Type,
		Brand:              req.Brand,
		Model:              req.Model,
		PowerCapacity:      req.PowerCapacity,
		FuelType:           req.FuelType,
		RegistrationNumber: req.RegistrationNumber,
		RateType:           req.RateType,
		Rate:               req.Rate,
	}
	if err := h.vehicles.AddVehicle(r.Context(), vehicle); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidation("invalid request body: %v", err))
		return
	}

	vehicle := &domain.Vehicle{
		ID:                 id,
		OperatorID:         GetUserIDFromContext(r.Context()),
		Type:               req.Type,
		Brand:              req.Brand,
		Model:              req.Model,
		PowerCapacity:      req.PowerCapacity,
		FuelType:           req.FuelType,
		RegistrationNumber: req.RegistrationNumber,
		RateType:           req.RateType,
		Rate:               req.Rate,
	}
	if err := h.vehicles.UpdateVehicle(r.Context(), vehicle); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.vehicles.DeactivateVehicle(r.Context(), GetUserIDFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListMyVehicles(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}
