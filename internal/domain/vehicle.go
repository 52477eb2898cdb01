package domain

import "time"

type VehicleAvailability string

const (
	VehicleAvailable   VehicleAvailability = "available"
	VehicleBooked      VehicleAvailability = "booked"
	VehicleMaintenance VehicleAvailability = "maintenance"
)

type VehicleType string

const (
	VehicleTypeTractor   VehicleType = "tractor"
	VehicleTypeHarvester VehicleType = "harvester"
	VehicleTypeThresher  VehicleType = "thresher"
	VehicleTypeBaler     VehicleType = "baler"
	VehicleTypeOther     VehicleType = "other"
)

func ValidVehicleType(t VehicleType) bool {
	switch t {
	case VehicleTypeTractor, VehicleTypeHarvester, VehicleTypeThresher,
		VehicleTypeBaler, VehicleTypeOther:
		return true
	}
	return false
}

// Vehicle is a primary rentable machine. Availability is mutated only by the
// reservation transactions in the postgres package; listing fields are
// mutated by operator onboarding. Vehicles are deactivated, never deleted.
type Vehicle struct {
	ID                 int32               `json:"id"`
	OperatorID         int32               `json:"operator_id"`
	Type               VehicleType         `json:"type"`
	Brand              string              `json:"brand"`
	Model              string              `json:"model,omitempty"`
	PowerCapacity      string              `json:"power_capacity,omitempty"`
	FuelType           string              `json:"fuel_type,omitempty"`
	RegistrationNumber string              `json:"registration_number,omitempty"`
	RateType           RateType            `json:"rate_type"`
	Rate               float64             `json:"rate"`
	Availability       VehicleAvailability `json:"availability"`
	IsActive           bool                `json:"is_active"`
	CreatedOn          time.Time           `json:"created_on"`
	UpdatedOn          time.Time           `json:"updated_on"`
}
