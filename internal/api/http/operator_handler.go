package http

import (
	"encoding/json"
	"net/http"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

// OperatorHandler serves the operator-facing booking lifecycle endpoints.
type OperatorHandler struct {
	bookings service.BookingService
}

func NewOperatorHandler(bookings service.BookingService) *OperatorHandler {
	return &OperatorHandler{bookings: bookings}
}

func (h *OperatorHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.bookings.ListPendingRequests(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *OperatorHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListOperatorBookings(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// transition runs one lifecycle action and writes the updated booking.
func (h *OperatorHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(operatorID, bookingID int32) (*domain.Booking, error),
) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	booking, err := fn(GetUserIDFromContext(r.Context()), bookingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *OperatorHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(operatorID, bookingID int32) (*domain.Booking, error) {
		return h.bookings.AcceptBooking(r.Context(), operatorID, bookingID)
	})
}

func (h *OperatorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	h.transition(w, r, func(operatorID, bookingID int32) (*domain.Booking, error) {
		return h.bookings.RejectBooking(r.Context(), operatorID, bookingID, req.Reason)
	})
}

func (h *OperatorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	h.transition(w, r, func(operatorID, bookingID int32) (*domain.Booking, error) {
		return h.bookings.CancelByOperator(r.Context(), operatorID, bookingID, req.Reason)
	})
}

func (h *OperatorHandler) EnRoute(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(operatorID, bookingID int32) (*domain.Booking, error) {
		return h.bookings.MarkEnRoute(r.Context(), operatorID, bookingID)
	})
}

func (h *OperatorHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(operatorID, bookingID int32) (*domain.Booking, error) {
		return h.bookings.StartWork(r.Context(), operatorID, bookingID)
	})
}

func (h *OperatorHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(operatorID, bookingID int32) (*domain.Booking, error) {
		return h.bookings.CompleteWork(r.Context(), operatorID, bookingID)
	})
}

func (h *OperatorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.bookings.Dashboard(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *OperatorHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.bookings.Earnings(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, earnings)
}
