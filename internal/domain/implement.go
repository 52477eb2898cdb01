package domain

import "time"

type ImplementAvailability string

const (
	ImplementAvailable   ImplementAvailability = "available"
	ImplementAttached    ImplementAvailability = "attached"
	ImplementMaintenance ImplementAvailability = "maintenance"
)

// Implement is a detachable attachment (plough, seeder, sprayer) that can be
// reserved together with a compatible vehicle. Invariant: availability
// "attached" implies AttachedVehicleID points at a vehicle currently booked;
// "available" implies AttachedVehicleID is nil.
type Implement struct {
	ID                     int32                 `json:"id"`
	OperatorID             int32                 `json:"operator_id"`
	Name                   string                `json:"name"`
	Brand                  string                `json:"brand"`
	Model                  string                `json:"model,omitempty"`
	CompatibleVehicleTypes []string              `json:"compatible_vehicle_types"`
	WorkingWidth           string                `json:"working_width,omitempty"`
	RateType               RateType              `json:"rate_type"`
	Rate                   float64               `json:"rate"`
	Availability           ImplementAvailability `json:"availability"`
	AttachedVehicleID      *int32                `json:"attached_vehicle_id,omitempty"`
	IsActive               bool                  `json:"is_active"`
	CreatedOn              time.Time             `json:"created_on"`
	UpdatedOn              time.Time             `json:"updated_on"`
}

// CompatibleWith reports whether the implement attaches to vehicles of the
// given type. An empty compatibility list means the implement fits anything.
func (i *Implement) CompatibleWith(t VehicleType) bool {
	if len(i.CompatibleVehicleTypes) == 0 {
		return true
	}
	for _, vt := range i.CompatibleVehicleTypes {
		if VehicleType(vt) == t {
			return true
		}
	}
	return false
}
