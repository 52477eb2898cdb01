package repository

import (
	"context"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Deactivate(ctx context.Context, id, operatorID int32) error
	ListByOperator(ctx context.Context, operatorID int32) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
}

type ImplementRepository interface {
	Create(ctx context.Context, im *domain.Implement) error
	GetByID(ctx context.Context, id int32) (*domain.Implement, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Implement, error)
	Update(ctx context.Context, im *domain.Implement) error
	Deactivate(ctx context.Context, id, operatorID int32) error
	ListByOperator(ctx context.Context, operatorID int32) ([]domain.Implement, error)
}

// ReservationRepository is the sole writer of vehicle and implement
// availability. Both operations are atomic over every touched row.
type ReservationRepository interface {
	// Reserve checks that the vehicle and every implement are available and
	// flips them to booked/attached in one transaction. On any conflict
	// nothing is mutated and the error names the first conflicting resource.
	Reserve(ctx context.Context, vehicleID int32, implementIDs []int32) error
	// Release returns the vehicle and implements to available, clearing the
	// implement back-references. Idempotent: already-released rows are a
	// no-op, which covers retries and duplicate terminal transitions.
	Release(ctx context.Context, vehicleID int32, implementIDs []int32) error
}

// TransitionUpdate carries the optional side effects a status transition
// writes alongside the new status. All of it is applied in one transaction;
// the resource release runs only when ReleaseResources is set.
type TransitionUpdate struct {
	Reason           string
	DeclineOperator  *int32
	SetStartTime     bool
	SetEndTime       bool
	MarkPaid         bool
	ReleaseResources bool
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// Transition moves a booking from one of the expected statuses to the
	// target status with an old-status guard, applying upd in the same
	// transaction. Returns domain.KindInvalidStateTransition when the guard
	// matches no row (stale or illegal request) and the booking exists.
	Transition(ctx context.Context, id int32, from []domain.BookingStatus, to domain.BookingStatus, upd TransitionUpdate) (*domain.Booking, error)
	ListByFarmer(ctx context.Context, farmerID int32) ([]domain.Booking, error)
	ListByOperator(ctx context.Context, operatorID int32) ([]domain.Booking, error)
	// ListPendingRequests returns REQUESTED bookings whose declined set does
	// not contain operatorID, newest first.
	ListPendingRequests(ctx context.Context, operatorID int32) ([]domain.Booking, error)
	// ListStaleRequests returns ids of REQUESTED bookings created more than
	// ttlHours ago, for reservation expiry.
	ListStaleRequests(ctx context.Context, ttlHours int) ([]int32, error)
	Dashboard(ctx context.Context, operatorID int32) (*domain.OperatorDashboard, error)
	Earnings(ctx context.Context, operatorID int32) (*domain.OperatorEarnings, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
