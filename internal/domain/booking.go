package domain

import "time"

type BookingStatus string

const (
	BookingStatusRequested           BookingStatus = "REQUESTED"
	BookingStatusAccepted            BookingStatus = "ACCEPTED"
	BookingStatusRejected            BookingStatus = "REJECTED"
	BookingStatusOnTheWay            BookingStatus = "ON_THE_WAY"
	BookingStatusInProgress          BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted           BookingStatus = "COMPLETED"
	BookingStatusCancelledByOperator BookingStatus = "CANCELLED_BY_OPERATOR"
	BookingStatusCancelledByFarmer   BookingStatus = "CANCELLED_BY_FARMER"
)

// Terminal reports whether no further transition is possible from s.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCompleted,
		BookingStatusCancelledByOperator, BookingStatusCancelledByFarmer:
		return true
	}
	return false
}

// bookingTransitions is the full transition table. A (from, to) pair absent
// here is illegal regardless of the acting party.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusRequested: {
		BookingStatusAccepted,
		BookingStatusRejected,
		BookingStatusCancelledByFarmer,
	},
	BookingStatusAccepted: {
		BookingStatusOnTheWay,
		BookingStatusCancelledByOperator,
	},
	BookingStatusOnTheWay: {
		BookingStatusInProgress,
		BookingStatusCancelledByOperator,
	},
	BookingStatusInProgress: {
		BookingStatusCompleted,
	},
}

// CanTransition reports whether the state machine permits moving a booking
// from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type WorkType string

const (
	WorkTypePloughing   WorkType = "Ploughing"
	WorkTypeCultivation WorkType = "Cultivation"
	WorkTypeSowing      WorkType = "Sowing"
	WorkTypeHarvesting  WorkType = "Harvesting"
	WorkTypeSpraying    WorkType = "Spraying"
	WorkTypeTransport   WorkType = "Transport"
	WorkTypeOther       WorkType = "Other"
)

func ValidWorkType(w WorkType) bool {
	switch w {
	case WorkTypePloughing, WorkTypeCultivation, WorkTypeSowing,
		WorkTypeHarvesting, WorkTypeSpraying, WorkTypeTransport, WorkTypeOther:
		return true
	}
	return false
}

type RateType string

const (
	RateTypePerHour RateType = "PerHour"
	RateTypePerAcre RateType = "PerAcre"
	RateTypeFixed   RateType = "Fixed"
)

func ValidRateType(r RateType) bool {
	switch r {
	case RateTypePerHour, RateTypePerAcre, RateTypeFixed:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type Booking struct {
	ID           int32    `json:"id"`
	FarmerID     int32    `json:"farmer_id"`
	OperatorID   int32    `json:"operator_id"`
	VehicleID    int32    `json:"vehicle_id"`
	ImplementIDs []int32  `json:"implement_ids"`
	WorkType     WorkType `json:"work_type"`
	BookingDate  string   `json:"booking_date"`
	// Rate snapshot fields — captured from the request at creation time.
	// TotalAmount is computed once and never recalculated, even if the
	// operator's listed rates change later.
	RateType           RateType      `json:"rate_type"`
	Rate               float64       `json:"rate"`
	DurationHours      float64       `json:"duration_hours,omitempty"`
	AreaAcres          float64       `json:"area_acres,omitempty"`
	TotalAmount        float64       `json:"total_amount"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	DeclinedBy         []int32       `json:"declined_by,omitempty"`
	StartTime          *time.Time    `json:"start_time,omitempty"`
	EndTime            *time.Time    `json:"end_time,omitempty"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`

	// Populated when fetching booking details
	Farmer     *User       `json:"farmer,omitempty"`
	Vehicle    *Vehicle    `json:"vehicle,omitempty"`
	Implements []Implement `json:"implements,omitempty"`
}

// DeclinedByOperator reports whether the operator already rejected this
// booking request.
func (b *Booking) DeclinedByOperator(operatorID int32) bool {
	for _, id := range b.DeclinedBy {
		if id == operatorID {
			return true
		}
	}
	return false
}

// OperatorDashboard is the aggregate view backing the operator home screen.
type OperatorDashboard struct {
	TotalBookings     int32 `json:"total_bookings"`
	CompletedBookings int32 `json:"completed_bookings"`
}

// OperatorEarnings is the sum of totalAmount over COMPLETED bookings.
type OperatorEarnings struct {
	TotalEarnings float64 `json:"total_earnings"`
}
