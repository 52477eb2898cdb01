package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

// BookingHandler serves the farmer-facing booking endpoints.
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation("invalid %s: %q", name, raw)
	}
	return int32(id), nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, domain.NewValidation("invalid request body: %v", err))
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), GetUserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), GetUserIDFromContext(r.Context()), bookingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListFarmerBookings(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req cancelRequest
	if r.Body != nil {
		// Reason is optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	booking, err := h.bookings.CancelByFarmer(r.Context(), GetUserIDFromContext(r.Context()), bookingID, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
