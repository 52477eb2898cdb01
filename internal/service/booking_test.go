package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/service"
)

type bookingMocks struct {
	bookingRepo     *MockBookingRepo
	vehicleRepo     *MockVehicleRepo
	implementRepo   *MockImplementRepo
	reservationRepo *MockReservationRepo
	userRepo        *MockUserRepo
	noteRepo        *MockNotificationRepo
	emailSvc        *MockEmailService
}

func newBookingService() (service.BookingService, *bookingMocks) {
	m := &bookingMocks{
		bookingRepo:     new(MockBookingRepo),
		vehicleRepo:     new(MockVehicleRepo),
		implementRepo:   new(MockImplementRepo),
		reservationRepo: new(MockReservationRepo),
		userRepo:        new(MockUserRepo),
		noteRepo:        new(MockNotificationRepo),
		emailSvc:        new(MockEmailService),
	}
	svc := service.NewBookingService(
		m.bookingRepo, m.vehicleRepo, m.implementRepo, m.reservationRepo,
		m.userRepo, m.noteRepo, m.emailSvc,
	)
	return svc, m
}

func availableTractor(id, operatorID int32) *domain.Vehicle {
	return &domain.Vehicle{
		ID:           id,
		OperatorID:   operatorID,
		Type:         domain.VehicleTypeTractor,
		Brand:        "Mahindra",
		RateType:     domain.RateTypePerHour,
		Rate:         500,
		Availability: domain.VehicleAvailable,
		IsActive:     true,
	}
}

func availablePlough(id int32) domain.Implement {
	return domain.Implement{
		ID:                     id,
		Name:                   "Reversible Plough",
		Availability:           domain.ImplementAvailable,
		CompatibleVehicleTypes: []string{"tractor"},
		IsActive:               true,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	farmerID := int32(1)

	input := service.CreateBookingInput{
		VehicleID:     2,
		ImplementIDs:  []int32{4},
		WorkType:      domain.WorkTypePloughing,
		BookingDate:   "2026-09-01",
		RateType:      domain.RateTypePerHour,
		Rate:          500,
		DurationHours: 3,
	}

	t.Run("Success snapshots rate and reserves resources", func(t *testing.T) {
		svc, m := newBookingService()

		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{availablePlough(4)}, nil)
		m.reservationRepo.On("Reserve", ctx, int32(2), []int32{4}).Return(nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		m.userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Name: "Operator", Email: "op@test.com"}, nil)
		m.userRepo.On("GetByID", ctx, farmerID).Return(&domain.User{ID: farmerID, Name: "Farmer", Email: "farmer@test.com"}, nil)
		m.emailSvc.On("SendBookingRequested", ctx, "op@test.com", "Farmer", mock.AnythingOfType("string"), 1500.0).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		b, err := svc.CreateBooking(ctx, farmerID, input)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRequested, b.Status)
		assert.Equal(t, domain.PaymentStatusPending, b.PaymentStatus)
		assert.Equal(t, int32(10), b.OperatorID)
		assert.Equal(t, 1500.0, b.TotalAmount)
		m.reservationRepo.AssertExpectations(t)
		m.bookingRepo.AssertExpectations(t)
	})

	t.Run("PerAcre pricing supports fractional acres", func(t *testing.T) {
		svc, m := newBookingService()

		perAcre := input
		perAcre.ImplementIDs = nil
		perAcre.RateType = domain.RateTypePerAcre
		perAcre.Rate = 300
		perAcre.DurationHours = 0
		perAcre.AreaAcres = 4

		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.reservationRepo.On("Reserve", ctx, int32(2), []int32(nil)).Return(nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		m.userRepo.On("GetByID", ctx, mock.AnythingOfType("int32")).Return(&domain.User{Email: "x@test.com"}, nil)
		m.emailSvc.On("SendBookingRequested", ctx, mock.Anything, mock.Anything, mock.Anything, 1200.0).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		b, err := svc.CreateBooking(ctx, farmerID, perAcre)
		assert.NoError(t, err)
		assert.Equal(t, 1200.0, b.TotalAmount)
	})

	t.Run("Unavailable vehicle fails before reserving", func(t *testing.T) {
		svc, m := newBookingService()

		v := availableTractor(2, 10)
		v.Availability = domain.VehicleBooked
		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(v, nil)

		_, err := svc.CreateBooking(ctx, farmerID, input)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindResourceUnavailable))
		m.reservationRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Attached implement fails before reserving", func(t *testing.T) {
		svc, m := newBookingService()

		im := availablePlough(4)
		im.Availability = domain.ImplementAttached
		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{im}, nil)

		_, err := svc.CreateBooking(ctx, farmerID, input)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindResourceUnavailable))
		assert.Contains(t, err.Error(), "implement 4")
		m.reservationRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Incompatible implement is a validation error", func(t *testing.T) {
		svc, m := newBookingService()

		im := availablePlough(4)
		im.CompatibleVehicleTypes = []string{"harvester"}
		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{im}, nil)

		_, err := svc.CreateBooking(ctx, farmerID, input)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("Missing implement is not found", func(t *testing.T) {
		svc, m := newBookingService()

		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{}, nil)

		_, err := svc.CreateBooking(ctx, farmerID, input)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("Lost reservation race surfaces the conflict", func(t *testing.T) {
		svc, m := newBookingService()

		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{availablePlough(4)}, nil)
		m.reservationRepo.On("Reserve", ctx, int32(2), []int32{4}).
			Return(domain.NewResourceUnavailable("vehicle 2", "vehicle no longer available"))

		_, err := svc.CreateBooking(ctx, farmerID, input)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindResourceUnavailable))
		m.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed insert releases the hold", func(t *testing.T) {
		svc, m := newBookingService()

		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{availablePlough(4)}, nil)
		m.reservationRepo.On("Reserve", ctx, int32(2), []int32{4}).Return(nil)
		m.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
			Return(domain.NewStorageFailure(assert.AnError))
		m.reservationRepo.On("Release", ctx, int32(2), []int32{4}).Return(nil)

		_, err := svc.CreateBooking(ctx, farmerID, input)
		assert.Error(t, err)
		m.reservationRepo.AssertCalled(t, "Release", ctx, int32(2), []int32{4})
	})

	t.Run("Unknown work type is rejected up front", func(t *testing.T) {
		svc, m := newBookingService()

		bad := input
		bad.WorkType = domain.WorkType("Mining")

		_, err := svc.CreateBooking(ctx, farmerID, bad)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
		m.vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Malformed booking date is rejected", func(t *testing.T) {
		svc, _ := newBookingService()

		bad := input
		bad.BookingDate = "01-09-2026"

		_, err := svc.CreateBooking(ctx, farmerID, bad)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("Duplicate implement ids are rejected", func(t *testing.T) {
		svc, _ := newBookingService()

		bad := input
		bad.ImplementIDs = []int32{4, 4}

		_, err := svc.CreateBooking(ctx, farmerID, bad)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func requestedBooking(id, farmerID, operatorID int32) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		FarmerID:     farmerID,
		OperatorID:   operatorID,
		VehicleID:    2,
		ImplementIDs: []int32{4},
		Status:       domain.BookingStatusRequested,
		TotalAmount:  1500,
	}
}

func TestBookingService_AcceptBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newBookingService()

		accepted := requestedBooking(5, 1, 10)
		accepted.Status = domain.BookingStatusAccepted

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)
		m.bookingRepo.On("Transition", ctx, int32(5),
			[]domain.BookingStatus{domain.BookingStatusRequested},
			domain.BookingStatusAccepted,
			repository.TransitionUpdate{}).Return(accepted, nil)

		m.userRepo.On("GetByID", ctx, mock.AnythingOfType("int32")).Return(&domain.User{Email: "x@test.com"}, nil)
		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.emailSvc.On("SendBookingAccepted", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		b, err := svc.AcceptBooking(ctx, 10, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusAccepted, b.Status)
	})

	t.Run("Wrong operator is unauthorized", func(t *testing.T) {
		svc, m := newBookingService()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)

		_, err := svc.AcceptBooking(ctx, 99, 5)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
		m.bookingRepo.AssertNotCalled(t, "Transition",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_RejectBooking(t *testing.T) {
	ctx := context.Background()
	svc, m := newBookingService()
	operatorID := int32(10)

	rejected := requestedBooking(5, 1, 10)
	rejected.Status = domain.BookingStatusRejected
	rejected.CancellationReason = "machine under repair"

	m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)
	m.bookingRepo.On("Transition", ctx, int32(5),
		[]domain.BookingStatus{domain.BookingStatusRequested},
		domain.BookingStatusRejected,
		repository.TransitionUpdate{
			Reason:           "machine under repair",
			DeclineOperator:  &operatorID,
			ReleaseResources: true,
		}).Return(rejected, nil)

	m.userRepo.On("GetByID", ctx, mock.AnythingOfType("int32")).Return(&domain.User{Email: "x@test.com"}, nil)
	m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
	m.emailSvc.On("SendBookingRejected", ctx, mock.Anything, mock.Anything, "machine under repair").Return(nil)
	m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	b, err := svc.RejectBooking(ctx, operatorID, 5, "machine under repair")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusRejected, b.Status)
	m.bookingRepo.AssertExpectations(t)
}

func TestBookingService_CancelByFarmer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success from REQUESTED", func(t *testing.T) {
		svc, m := newBookingService()

		cancelled := requestedBooking(5, 1, 10)
		cancelled.Status = domain.BookingStatusCancelledByFarmer

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)
		m.bookingRepo.On("Transition", ctx, int32(5),
			[]domain.BookingStatus{domain.BookingStatusRequested},
			domain.BookingStatusCancelledByFarmer,
			repository.TransitionUpdate{Reason: "changed plans", ReleaseResources: true}).
			Return(cancelled, nil)

		b, err := svc.CancelByFarmer(ctx, 1, 5, "changed plans")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelledByFarmer, b.Status)
	})

	t.Run("Another farmer's booking is unauthorized", func(t *testing.T) {
		svc, m := newBookingService()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)

		_, err := svc.CancelByFarmer(ctx, 2, 5, "")
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
		m.bookingRepo.AssertNotCalled(t, "Transition",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_CompleteWork(t *testing.T) {
	ctx := context.Background()
	svc, m := newBookingService()

	inProgress := requestedBooking(5, 1, 10)
	inProgress.Status = domain.BookingStatusInProgress
	completed := requestedBooking(5, 1, 10)
	completed.Status = domain.BookingStatusCompleted
	completed.PaymentStatus = domain.PaymentStatusPaid

	m.bookingRepo.On("GetByID", ctx, int32(5)).Return(inProgress, nil)
	m.bookingRepo.On("Transition", ctx, int32(5),
		[]domain.BookingStatus{domain.BookingStatusInProgress},
		domain.BookingStatusCompleted,
		repository.TransitionUpdate{SetEndTime: true, MarkPaid: true, ReleaseResources: true}).
		Return(completed, nil)

	m.userRepo.On("GetByID", ctx, mock.AnythingOfType("int32")).Return(&domain.User{Email: "x@test.com"}, nil)
	m.emailSvc.On("SendBookingCompleted", ctx, mock.Anything, mock.Anything, 1500.0).Return(nil)
	m.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	b, err := svc.CompleteWork(ctx, 10, 5)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, b.Status)
	assert.Equal(t, domain.PaymentStatusPaid, b.PaymentStatus)
	m.bookingRepo.AssertExpectations(t)
}

func TestBookingService_StartAndEnRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("MarkEnRoute", func(t *testing.T) {
		svc, m := newBookingService()

		accepted := requestedBooking(5, 1, 10)
		accepted.Status = domain.BookingStatusAccepted
		onTheWay := requestedBooking(5, 1, 10)
		onTheWay.Status = domain.BookingStatusOnTheWay

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(accepted, nil)
		m.bookingRepo.On("Transition", ctx, int32(5),
			[]domain.BookingStatus{domain.BookingStatusAccepted},
			domain.BookingStatusOnTheWay,
			repository.TransitionUpdate{}).Return(onTheWay, nil)

		b, err := svc.MarkEnRoute(ctx, 10, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusOnTheWay, b.Status)
	})

	t.Run("StartWork stamps the start time", func(t *testing.T) {
		svc, m := newBookingService()

		onTheWay := requestedBooking(5, 1, 10)
		onTheWay.Status = domain.BookingStatusOnTheWay
		inProgress := requestedBooking(5, 1, 10)
		inProgress.Status = domain.BookingStatusInProgress

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(onTheWay, nil)
		m.bookingRepo.On("Transition", ctx, int32(5),
			[]domain.BookingStatus{domain.BookingStatusOnTheWay},
			domain.BookingStatusInProgress,
			repository.TransitionUpdate{SetStartTime: true}).Return(inProgress, nil)

		b, err := svc.StartWork(ctx, 10, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusInProgress, b.Status)
	})
}

func TestBookingService_GetBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves related entities for a party", func(t *testing.T) {
		svc, m := newBookingService()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)
		m.vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableTractor(2, 10), nil)
		m.implementRepo.On("GetByIDs", ctx, []int32{4}).Return([]domain.Implement{availablePlough(4)}, nil)
		m.userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Name: "Farmer"}, nil)

		b, err := svc.GetBooking(ctx, 1, 5)
		assert.NoError(t, err)
		assert.NotNil(t, b.Vehicle)
		assert.Len(t, b.Implements, 1)
		assert.NotNil(t, b.Farmer)
	})

	t.Run("Third parties are rejected", func(t *testing.T) {
		svc, m := newBookingService()

		m.bookingRepo.On("GetByID", ctx, int32(5)).Return(requestedBooking(5, 1, 10), nil)

		_, err := svc.GetBooking(ctx, 77, 5)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	})
}

func TestBookingService_ExpireStaleRequests(t *testing.T) {
	ctx := context.Background()
	svc, m := newBookingService()

	expired := requestedBooking(3, 1, 10)
	expired.Status = domain.BookingStatusRejected

	m.bookingRepo.On("ListStaleRequests", ctx, 48).Return([]int32{3, 8}, nil)
	m.bookingRepo.On("Transition", ctx, int32(3),
		[]domain.BookingStatus{domain.BookingStatusRequested},
		domain.BookingStatusRejected,
		repository.TransitionUpdate{Reason: "request expired", ReleaseResources: true}).
		Return(expired, nil)
	// The second booking was accepted between the listing and the sweep.
	m.bookingRepo.On("Transition", ctx, int32(8),
		[]domain.BookingStatus{domain.BookingStatusRequested},
		domain.BookingStatusRejected,
		repository.TransitionUpdate{Reason: "request expired", ReleaseResources: true}).
		Return(nil, domain.NewInvalidTransition("booking 8 is ACCEPTED"))

	count, err := svc.ExpireStaleRequests(ctx, 48)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	m.bookingRepo.AssertExpectations(t)
}
