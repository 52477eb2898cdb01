package postgres

import (
	"database/sql"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.ImplementRepository
	repository.ReservationRepository
	repository.BookingRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		ImplementRepository:    NewImplementRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		BookingRepository:      NewBookingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
