package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/logger"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/utils"
)

type bookingService struct {
	bookingRepo     repository.BookingRepository
	vehicleRepo     repository.VehicleRepository
	implementRepo   repository.ImplementRepository
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	noteRepo        repository.NotificationRepository
	emailSvc        EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	implementRepo repository.ImplementRepository,
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		vehicleRepo:     vehicleRepo,
		implementRepo:   implementRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		noteRepo:        noteRepo,
		emailSvc:        emailSvc,
	}
}

// CreateBooking validates the request, prices it, places the provisional hold
// and persists the booking as REQUESTED. Reservation and persistence form one
// logical unit: a failed insert releases the hold before the error returns.
func (s *bookingService) CreateBooking(ctx context.Context, farmerID int32, in CreateBookingInput) (*domain.Booking, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsActive {
		return nil, domain.NewNotFound(fmt.Sprintf("vehicle %d", in.VehicleID))
	}
	if vehicle.Availability != domain.VehicleAvailable {
		return nil, domain.NewResourceUnavailable(fmt.Sprintf("vehicle %d", vehicle.ID), "vehicle is %s", vehicle.Availability)
	}

	if err := s.checkImplements(ctx, vehicle, in.ImplementIDs); err != nil {
		return nil, err
	}

	total, err := utils.ComputeTotal(in.RateType, in.Rate, in.DurationHours, in.AreaAcres)
	if err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Reserve(ctx, vehicle.ID, in.ImplementIDs); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		FarmerID:      farmerID,
		OperatorID:    vehicle.OperatorID,
		VehicleID:     vehicle.ID,
		ImplementIDs:  in.ImplementIDs,
		WorkType:      in.WorkType,
		BookingDate:   in.BookingDate,
		RateType:      in.RateType,
		Rate:          in.Rate,
		DurationHours: in.DurationHours,
		AreaAcres:     in.AreaAcres,
		TotalAmount:   total,
		Status:        domain.BookingStatusRequested,
		PaymentStatus: domain.PaymentStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Compensating release: the hold must not outlive a failed insert.
		if relErr := s.reservationRepo.Release(ctx, vehicle.ID, in.ImplementIDs); relErr != nil {
			logger.Error("Compensating release failed after booking insert error",
				"vehicle_id", vehicle.ID, "error", relErr)
		}
		return nil, err
	}

	s.notifyOperator(ctx, booking, vehicle)
	return booking, nil
}

func validateCreateInput(in CreateBookingInput) error {
	if !domain.ValidWorkType(in.WorkType) {
		return domain.NewValidation("unrecognized work type %q", in.WorkType)
	}
	if !domain.ValidRateType(in.RateType) {
		return domain.NewValidation("unrecognized rate type %q", in.RateType)
	}
	if _, err := time.Parse("2006-01-02", in.BookingDate); err != nil {
		return domain.NewValidation("booking date must be yyyy-mm-dd, got %q", in.BookingDate)
	}
	seen := make(map[int32]bool, len(in.ImplementIDs))
	for _, id := range in.ImplementIDs {
		if id <= 0 {
			return domain.NewValidation("implement id must be positive, got %d", id)
		}
		if seen[id] {
			return domain.NewValidation("duplicate implement id %d", id)
		}
		seen[id] = true
	}
	return nil
}

// checkImplements pre-validates existence, availability and vehicle
// compatibility before any state is touched. The reservation transaction
// repeats the availability check under row locks; this pass exists to fail
// fast and to produce the richer validation errors.
func (s *bookingService) checkImplements(ctx context.Context, vehicle *domain.Vehicle, ids []int32) error {
	if len(ids) == 0 {
		return nil
	}
	implements, err := s.implementRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int32]*domain.Implement, len(implements))
	for i := range implements {
		byID[implements[i].ID] = &implements[i]
	}
	for _, id := range ids {
		im, ok := byID[id]
		if !ok || !im.IsActive {
			return domain.NewNotFound(fmt.Sprintf("implement %d", id))
		}
		if im.Availability != domain.ImplementAvailable {
			return domain.NewResourceUnavailable(fmt.Sprintf("implement %d", id), "implement is %s", im.Availability)
		}
		if !im.CompatibleWith(vehicle.Type) {
			return domain.NewValidation("implement %d does not attach to a %s", id, vehicle.Type)
		}
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.FarmerID != userID && b.OperatorID != userID {
		return nil, domain.NewUnauthorized("booking %d does not involve user %d", bookingID, userID)
	}

	if b.Vehicle, err = s.vehicleRepo.GetByID(ctx, b.VehicleID); err != nil {
		return nil, err
	}
	if len(b.ImplementIDs) > 0 {
		if b.Implements, err = s.implementRepo.GetByIDs(ctx, b.ImplementIDs); err != nil {
			return nil, err
		}
	}
	if b.Farmer, err = s.userRepo.GetByID(ctx, b.FarmerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookingService) ListFarmerBookings(ctx context.Context, farmerID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListByFarmer(ctx, farmerID)
}

func (s *bookingService) ListOperatorBookings(ctx context.Context, operatorID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListByOperator(ctx, operatorID)
}

func (s *bookingService) ListPendingRequests(ctx context.Context, operatorID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListPendingRequests(ctx, operatorID)
}

// operatorBooking loads a booking and enforces the ownership guard every
// post-creation operator transition requires.
func (s *bookingService) operatorBooking(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OperatorID != operatorID {
		return nil, domain.NewUnauthorized("booking %d is not assigned to operator %d", bookingID, operatorID)
	}
	return b, nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	if _, err := s.operatorBooking(ctx, operatorID, bookingID); err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusRequested},
		domain.BookingStatusAccepted,
		repository.TransitionUpdate{})
	if err != nil {
		return nil, err
	}
	s.notifyFarmer(ctx, b, "Booking Accepted", "Your booking request was accepted", "BOOKING_ACCEPTED")
	return b, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, operatorID, bookingID int32, reason string) (*domain.Booking, error) {
	if _, err := s.operatorBooking(ctx, operatorID, bookingID); err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusRequested},
		domain.BookingStatusRejected,
		repository.TransitionUpdate{
			Reason:           reason,
			DeclineOperator:  &operatorID,
			ReleaseResources: true,
		})
	if err != nil {
		return nil, err
	}
	s.notifyFarmer(ctx, b, "Booking Rejected", "Your booking request was rejected", "BOOKING_REJECTED")
	return b, nil
}

func (s *bookingService) CancelByOperator(ctx context.Context, operatorID, bookingID int32, reason string) (*domain.Booking, error) {
	if _, err := s.operatorBooking(ctx, operatorID, bookingID); err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusAccepted, domain.BookingStatusOnTheWay},
		domain.BookingStatusCancelledByOperator,
		repository.TransitionUpdate{
			Reason:           reason,
			ReleaseResources: true,
		})
	if err != nil {
		return nil, err
	}
	s.notifyFarmer(ctx, b, "Booking Cancelled", "The operator cancelled your booking", "BOOKING_CANCELLED")
	return b, nil
}

func (s *bookingService) CancelByFarmer(ctx context.Context, farmerID, bookingID int32, reason string) (*domain.Booking, error) {
	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.FarmerID != farmerID {
		return nil, domain.NewUnauthorized("booking %d does not belong to farmer %d", bookingID, farmerID)
	}
	return s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusRequested},
		domain.BookingStatusCancelledByFarmer,
		repository.TransitionUpdate{
			Reason:           reason,
			ReleaseResources: true,
		})
}

func (s *bookingService) MarkEnRoute(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	if _, err := s.operatorBooking(ctx, operatorID, bookingID); err != nil {
		return nil, err
	}
	return s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusAccepted},
		domain.BookingStatusOnTheWay,
		repository.TransitionUpdate{})
}

func (s *bookingService) StartWork(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	if _, err := s.operatorBooking(ctx, operatorID, bookingID); err != nil {
		return nil, err
	}
	return s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusOnTheWay},
		domain.BookingStatusInProgress,
		repository.TransitionUpdate{SetStartTime: true})
}

func (s *bookingService) CompleteWork(ctx context.Context, operatorID, bookingID int32) (*domain.Booking, error) {
	if _, err := s.operatorBooking(ctx, operatorID, bookingID); err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.Transition(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusInProgress},
		domain.BookingStatusCompleted,
		repository.TransitionUpdate{
			SetEndTime:       true,
			MarkPaid:         true,
			ReleaseResources: true,
		})
	if err != nil {
		return nil, err
	}
	s.notifyFarmerCompleted(ctx, b)
	return b, nil
}

func (s *bookingService) Dashboard(ctx context.Context, operatorID int32) (*domain.OperatorDashboard, error) {
	return s.bookingRepo.Dashboard(ctx, operatorID)
}

func (s *bookingService) Earnings(ctx context.Context, operatorID int32) (*domain.OperatorEarnings, error) {
	return s.bookingRepo.Earnings(ctx, operatorID)
}

// ExpireStaleRequests moves REQUESTED bookings older than ttlHours to
// REJECTED and releases their holds, through the same guarded transition as
// an operator reject, so a racing accept always wins or loses cleanly.
func (s *bookingService) ExpireStaleRequests(ctx context.Context, ttlHours int) (int, error) {
	ids, err := s.bookingRepo.ListStaleRequests(ctx, ttlHours)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		_, err := s.bookingRepo.Transition(ctx, id,
			[]domain.BookingStatus{domain.BookingStatusRequested},
			domain.BookingStatusRejected,
			repository.TransitionUpdate{
				Reason:           "request expired",
				ReleaseResources: true,
			})
		if err != nil {
			if domain.IsKind(err, domain.KindInvalidStateTransition) {
				// Someone accepted or cancelled between the listing and now.
				continue
			}
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// Notification failures never fail the booking operation; they are logged
// and dropped.

func (s *bookingService) notifyOperator(ctx context.Context, b *domain.Booking, vehicle *domain.Vehicle) {
	operator, opErr := s.userRepo.GetByID(ctx, b.OperatorID)
	farmer, fmErr := s.userRepo.GetByID(ctx, b.FarmerID)
	if opErr != nil || fmErr != nil {
		logger.Warn("Skipping booking-request notification", "booking_id", b.ID)
		return
	}

	label := fmt.Sprintf("%s %s", vehicle.Brand, vehicle.Type)
	if err := s.emailSvc.SendBookingRequested(ctx, operator.Email, farmer.Name, label, b.TotalAmount); err != nil {
		logger.Warn("Booking-request email failed", "booking_id", b.ID, "error", err)
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  b.OperatorID,
		Title:   "New Booking Request",
		Message: fmt.Sprintf("%s requested %s for %s on %s", farmer.Name, label, b.WorkType, b.BookingDate),
		Attributes: map[string]string{
			"type":       "BOOKING_REQUEST",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	})
}

func (s *bookingService) notifyFarmer(ctx context.Context, b *domain.Booking, title, message, eventType string) {
	farmer, err := s.userRepo.GetByID(ctx, b.FarmerID)
	if err != nil {
		logger.Warn("Skipping farmer notification", "booking_id", b.ID, "error", err)
		return
	}

	vehicle, _ := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	label := fmt.Sprintf("vehicle %d", b.VehicleID)
	if vehicle != nil {
		label = fmt.Sprintf("%s %s", vehicle.Brand, vehicle.Type)
	}

	var emailErr error
	switch eventType {
	case "BOOKING_ACCEPTED":
		operator, _ := s.userRepo.GetByID(ctx, b.OperatorID)
		operatorName := ""
		if operator != nil {
			operatorName = operator.Name
		}
		emailErr = s.emailSvc.SendBookingAccepted(ctx, farmer.Email, operatorName, label)
	case "BOOKING_REJECTED":
		emailErr = s.emailSvc.SendBookingRejected(ctx, farmer.Email, label, b.CancellationReason)
	case "BOOKING_CANCELLED":
		emailErr = s.emailSvc.SendBookingCancelled(ctx, farmer.Email, label, b.CancellationReason)
	}
	if emailErr != nil {
		logger.Warn("Farmer email failed", "booking_id", b.ID, "event", eventType, "error", emailErr)
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  b.FarmerID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       eventType,
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	})
}

func (s *bookingService) notifyFarmerCompleted(ctx context.Context, b *domain.Booking) {
	farmer, err := s.userRepo.GetByID(ctx, b.FarmerID)
	if err != nil {
		logger.Warn("Skipping completion notification", "booking_id", b.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendBookingCompleted(ctx, farmer.Email, fmt.Sprintf("vehicle %d", b.VehicleID), b.TotalAmount); err != nil {
		logger.Warn("Completion email failed", "booking_id", b.ID, "error", err)
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  b.FarmerID,
		Title:   "Work Completed",
		Message: fmt.Sprintf("Your booking %d was completed, total ₹%.2f", b.ID, b.TotalAmount),
		Attributes: map[string]string{
			"type":       "BOOKING_COMPLETED",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	})
}
