package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Transition(ctx context.Context, id int32, from []domain.BookingStatus, to domain.BookingStatus, upd repository.TransitionUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, id, from, to, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByFarmer(ctx context.Context, farmerID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, farmerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByOperator(ctx context.Context, operatorID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListPendingRequests(ctx context.Context, operatorID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListStaleRequests(ctx context.Context, ttlHours int) ([]int32, error) {
	args := m.Called(ctx, ttlHours)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockBookingRepo) Dashboard(ctx context.Context, operatorID int32) (*domain.OperatorDashboard, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatorDashboard), args.Error(1)
}
func (m *MockBookingRepo) Earnings(ctx context.Context, operatorID int32) (*domain.OperatorEarnings, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatorEarnings), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Deactivate(ctx context.Context, id, operatorID int32) error {
	args := m.Called(ctx, id, operatorID)
	return args.Error(0)
}
func (m *MockVehicleRepo) ListByOperator(ctx context.Context, operatorID int32) ([]domain.Vehicle, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockImplementRepo
type MockImplementRepo struct {
	mock.Mock
}

func (m *MockImplementRepo) Create(ctx context.Context, im *domain.Implement) error {
	args := m.Called(ctx, im)
	return args.Error(0)
}
func (m *MockImplementRepo) GetByID(ctx context.Context, id int32) (*domain.Implement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Implement), args.Error(1)
}
func (m *MockImplementRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Implement, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Implement), args.Error(1)
}
func (m *MockImplementRepo) Update(ctx context.Context, im *domain.Implement) error {
	args := m.Called(ctx, im)
	return args.Error(0)
}
func (m *MockImplementRepo) Deactivate(ctx context.Context, id, operatorID int32) error {
	args := m.Called(ctx, id, operatorID)
	return args.Error(0)
}
func (m *MockImplementRepo) ListByOperator(ctx context.Context, operatorID int32) ([]domain.Implement, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]domain.Implement), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Reserve(ctx context.Context, vehicleID int32, implementIDs []int32) error {
	args := m.Called(ctx, vehicleID, implementIDs)
	return args.Error(0)
}
func (m *MockReservationRepo) Release(ctx context.Context, vehicleID int32, implementIDs []int32) error {
	args := m.Called(ctx, vehicleID, implementIDs)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, operatorEmail, farmerName, vehicleLabel string, totalAmount float64) error {
	args := m.Called(ctx, operatorEmail, farmerName, vehicleLabel, totalAmount)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingAccepted(ctx context.Context, farmerEmail, operatorName, vehicleLabel string) error {
	args := m.Called(ctx, farmerEmail, operatorName, vehicleLabel)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejected(ctx context.Context, farmerEmail, vehicleLabel, reason string) error {
	args := m.Called(ctx, farmerEmail, vehicleLabel, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, farmerEmail, vehicleLabel, reason string) error {
	args := m.Called(ctx, farmerEmail, vehicleLabel, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCompleted(ctx context.Context, farmerEmail, vehicleLabel string, totalAmount float64) error {
	args := m.Called(ctx, farmerEmail, vehicleLabel, totalAmount)
	return args.Error(0)
}
