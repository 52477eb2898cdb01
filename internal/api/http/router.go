package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/security"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

// RouterDeps bundles the services the API surface is built from.
type RouterDeps struct {
	Bookings      service.BookingService
	Vehicles      service.VehicleService
	Implements    service.ImplementService
	Notifications service.NotificationService
	Tokens        security.TokenManager
}

// NewRouter builds the full REST surface. Everything under /api/v1 requires a
// Bearer token except the equipment directory; /healthz is public.
func NewRouter(deps RouterDeps) *mux.Router {
	bookingHandler := NewBookingHandler(deps.Bookings)
	operatorHandler := NewOperatorHandler(deps.Bookings)
	vehicleHandler := NewVehicleHandler(deps.Vehicles)
	implementHandler := NewImplementHandler(deps.Implements)
	notificationHandler := NewNotificationHandler(deps.Notifications)

	root := mux.NewRouter()
	root.Use(requestIDMiddleware)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(deps.Tokens))

	// Equipment directory, visible to any authenticated user.
	api.HandleFunc("/vehicles", vehicleHandler.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/implements/{id:[0-9]+}", implementHandler.Get).Methods(http.MethodGet)

	// Notification inbox.
	api.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	// Booking details are visible to either party; the service enforces that.
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)

	// Farmer surface.
	farmer := api.NewRoute().Subrouter()
	farmer.Use(requireRole(domain.RoleFarmer))
	farmer.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	farmer.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	farmer.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)

	// Operator surface.
	operator := api.PathPrefix("/operator").Subrouter()
	operator.Use(requireRole(domain.RoleOperator))
	operator.HandleFunc("/requests", operatorHandler.ListRequests).Methods(http.MethodGet)
	operator.HandleFunc("/bookings", operatorHandler.ListBookings).Methods(http.MethodGet)
	operator.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	operator.HandleFunc("/bookings/{id:[0-9]+}/accept", operatorHandler.Accept).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/{id:[0-9]+}/reject", operatorHandler.Reject).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/{id:[0-9]+}/cancel", operatorHandler.Cancel).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/{id:[0-9]+}/enroute", operatorHandler.EnRoute).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/{id:[0-9]+}/start", operatorHandler.Start).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/{id:[0-9]+}/complete", operatorHandler.Complete).Methods(http.MethodPost)
	operator.HandleFunc("/dashboard", operatorHandler.Dashboard).Methods(http.MethodGet)
	operator.HandleFunc("/earnings", operatorHandler.Earnings).Methods(http.MethodGet)

	// Fleet management.
	operator.HandleFunc("/vehicles", vehicleHandler.Add).Methods(http.MethodPost)
	operator.HandleFunc("/vehicles", vehicleHandler.ListMine).Methods(http.MethodGet)
	operator.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)
	operator.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Deactivate).Methods(http.MethodDelete)
	operator.HandleFunc("/implements", implementHandler.Add).Methods(http.MethodPost)
	operator.HandleFunc("/implements", implementHandler.ListMine).Methods(http.MethodGet)
	operator.HandleFunc("/implements/{id:[0-9]+}", implementHandler.Update).Methods(http.MethodPut)
	operator.HandleFunc("/implements/{id:[0-9]+}", implementHandler.Deactivate).Methods(http.MethodDelete)

	return root
}
