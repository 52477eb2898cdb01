package service

import (
	"context"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
)

// CreateBookingInput is the farmer's booking request. The rate specification
// is snapshotted onto the booking; the computed total never changes after
// creation.
type CreateBookingInput struct {
	VehicleID     int32           `json:"vehicle_id"`
	ImplementIDs  []int32         `json:"implement_ids"`
	WorkType      domain.WorkType `json:"work_type"`
	BookingDate   string          `json:"booking_date"`
	RateType      domain.RateType `json:"rate_type"`
	Rate          float64         `json:"rate"`
	DurationHours float64         `json:"duration_hours,omitempty"`
	AreaAcres     float64         `json:"area_acres,omitempty"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, farmerID int32, in CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error)
	ListFarmerBookings(ctx context.Context, farmerID int32) ([]domain.Booking, error)
	ListOperatorBookings(ctx context.Context, operatorID int32) ([]domain.Booking, error)
	ListPendingRequests(ctx context.Context, operatorID int32) ([]domain.Booking, error)

	AcceptBooking(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error)
	RejectBooking(ctx context.Context, operatorID, bookingID int32, reason string) (*domain.Booking, error)
	CancelByOperator(ctx context.Context, operatorID, bookingID int32, reason string) (*domain.Booking, error)
	CancelByFarmer(ctx context.Context, farmerID, bookingID int32, reason string) (*domain.Booking, error)
	MarkEnRoute(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error)
	StartWork(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error)
	CompleteWork(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error)

	Dashboard(ctx context.Context, operatorID int32) (*domain.OperatorDashboard, error)
	Earnings(ctx context.Context, operatorID int32) (*domain.OperatorEarnings, error)

	// ExpireStaleRequests releases holds of REQUESTED bookings older than
	// ttlHours, returning how many were expired. Used by the cron runner.
	ExpireStaleRequests(ctx context.Context, ttlHours int) (int, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, v *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) error
	DeactivateVehicle(ctx context.Context, operatorID, id int32) error
	ListMyVehicles(ctx context.Context, operatorID int32) ([]domain.Vehicle, error)
	ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type ImplementService interface {
	AddImplement(ctx context.Context, im *domain.Implement) error
	GetImplement(ctx context.Context, id int32) (*domain.Implement, error)
	UpdateImplement(ctx context.Context, im *domain.Implement) error
	DeactivateImplement(ctx context.Context, operatorID, id int32) error
	ListMyImplements(ctx context.Context, operatorID int32) ([]domain.Implement, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, operatorEmail, farmerName, vehicleLabel string, totalAmount float64) error
	SendBookingAccepted(ctx context.Context, farmerEmail, operatorName, vehicleLabel string) error
	SendBookingRejected(ctx context.Context, farmerEmail, vehicleLabel, reason string) error
	SendBookingCancelled(ctx context.Context, farmerEmail, vehicleLabel, reason string) error
	SendBookingCompleted(ctx context.Context, farmerEmail, vehicleLabel string, totalAmount float64) error
}
