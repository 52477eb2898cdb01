package service

import (
	"context"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

type implementService struct {
	implementRepo repository.ImplementRepository
}

func NewImplementService(implementRepo repository.ImplementRepository) ImplementService {
	return &implementService{implementRepo: implementRepo}
}

func (s *implementService) AddImplement(ctx context.Context, im *domain.Implement) error {
	if im.Name == "" {
		return domain.NewValidation("implement name is required")
	}
	if im.Brand == "" {
		return domain.NewValidation("brand is required")
	}
	if !domain.ValidRateType(im.RateType) {
		return domain.NewValidation("unrecognized rate type %q", im.RateType)
	}
	if im.Rate <= 0 {
		return domain.NewValidation("rate must be positive, got %v", im.Rate)
	}
	for _, vt := range im.CompatibleVehicleTypes {
		if !domain.ValidVehicleType(domain.VehicleType(vt)) {
			return domain.NewValidation("unrecognized compatible vehicle type %q", vt)
		}
	}
	return s.implementRepo.Create(ctx, im)
}

func (s *implementService) GetImplement(ctx context.Context, id int32) (*domain.Implement, error) {
	return s.implementRepo.GetByID(ctx, id)
}

func (s *implementService) UpdateImplement(ctx context.Context, im *domain.Implement) error {
	if !domain.ValidRateType(im.RateType) {
		return domain.NewValidation("unrecognized rate type %q", im.RateType)
	}
	if im.Rate <= 0 {
		return domain.NewValidation("rate must be positive, got %v", im.Rate)
	}
	return s.implementRepo.Update(ctx, im)
}

func (s *implementService) DeactivateImplement(ctx context.Context, operatorID, id int32) error {
	im, err := s.implementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if im.Availability == domain.ImplementAttached {
		return domain.NewResourceUnavailable("implement", "implement is attached to a booked vehicle")
	}
	return s.implementRepo.Deactivate(ctx, id, operatorID)
}

func (s *implementService) ListMyImplements(ctx context.Context, operatorID int32) ([]domain.Implement, error) {
	return s.implementRepo.ListByOperator(ctx, operatorID)
}
