package service

import (
	"context"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if !domain.ValidVehicleType(v.Type) {
		return domain.NewValidation("unrecognized vehicle type %q", v.Type)
	}
	if !domain.ValidRateType(v.RateType) {
		return domain.NewValidation("unrecognized rate type %q", v.RateType)
	}
	if v.Brand == "" {
		return domain.NewValidation("brand is required")
	}
	if v.Rate <= 0 {
		return domain.NewValidation("rate must be positive, got %v", v.Rate)
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, v *domain.Vehicle) error {
	if !domain.ValidRateType(v.RateType) {
		return domain.NewValidation("unrecognized rate type %q", v.RateType)
	}
	if v.Rate <= 0 {
		return domain.NewValidation("rate must be positive, got %v", v.Rate)
	}
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) DeactivateVehicle(ctx context.Context, operatorID, id int32) error {
	// A vehicle holding a live reservation cannot be withdrawn from under it.
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.Availability == domain.VehicleBooked {
		return domain.NewResourceUnavailable("vehicle", "vehicle has an active booking")
	}
	return s.vehicleRepo.Deactivate(ctx, id, operatorID)
}

func (s *vehicleService) ListMyVehicles(ctx context.Context, operatorID int32) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByOperator(ctx, operatorID)
}

func (s *vehicleService) ListAvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListAvailable(ctx)
}
