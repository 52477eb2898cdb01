package utils

import (
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
)

// ComputeTotal turns a rate specification into the booking's total amount.
//
//	PerHour → rate * durationHours
//	PerAcre → rate * areaAcres
//	Fixed   → rate
//
// The magnitude a rate type depends on must be positive; Fixed ignores both.
// Pure function, no rounding: rates and magnitudes are rupee amounts and
// fractional acres/hours are legitimate.
func ComputeTotal(rateType domain.RateType, rate, durationHours, areaAcres float64) (float64, error) {
	if rate <= 0 {
		return 0, domain.NewValidation("rate must be positive, got %v", rate)
	}

	switch rateType {
	case domain.RateTypePerHour:
		if durationHours <= 0 {
			return 0, domain.NewValidation("PerHour rate requires a positive duration, got %v", durationHours)
		}
		return rate * durationHours, nil
	case domain.RateTypePerAcre:
		if areaAcres <= 0 {
			return 0, domain.NewValidation("PerAcre rate requires a positive area, got %v", areaAcres)
		}
		return rate * areaAcres, nil
	case domain.RateTypeFixed:
		return rate, nil
	default:
		return 0, domain.NewValidation("unknown rate type %q", rateType)
	}
}
