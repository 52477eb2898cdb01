package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// Reserve locks the vehicle row first and the implement rows in id order, so
// two concurrent reservations touching the same resources always acquire
// locks in the same sequence. The availability check and the state flip
// commit together; the loser of a race sees the winner's committed state and
// fails on the check.
func (r *reservationRepository) Reserve(ctx context.Context, vehicleID int32, implementIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	defer tx.Rollback()

	var avail string
	err = tx.QueryRowContext(ctx,
		`SELECT availability FROM vehicles WHERE id = $1 AND is_active FOR UPDATE`,
		vehicleID).Scan(&avail)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound(fmt.Sprintf("vehicle %d", vehicleID))
	}
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if avail != string(domain.VehicleAvailable) {
		return domain.NewResourceUnavailable(fmt.Sprintf("vehicle %d", vehicleID), "vehicle is %s", avail)
	}

	if len(implementIDs) > 0 {
		if err := checkImplementsAvailable(ctx, tx, implementIDs); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE implements
			    SET availability = 'attached', attached_vehicle_id = $1, updated_on = NOW()
			  WHERE id = ANY($2) AND availability = 'available'`,
			vehicleID, pq.Array(implementIDs))
		if err != nil {
			return domain.NewStorageFailure(err)
		}
		if n, _ := res.RowsAffected(); n != int64(len(implementIDs)) {
			// Rows are locked, so this means the caller passed duplicates.
			return domain.NewValidation("implement list contains duplicates")
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET availability = 'booked', updated_on = NOW()
		  WHERE id = $1 AND availability = 'available'`,
		vehicleID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return domain.NewResourceUnavailable(fmt.Sprintf("vehicle %d", vehicleID), "vehicle no longer available")
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageFailure(err)
	}
	return nil
}

// checkImplementsAvailable row-locks the requested implements and fails on
// the first one (in id order) that is missing or not available.
func checkImplementsAvailable(ctx context.Context, tx *sql.Tx, implementIDs []int32) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, availability FROM implements
		  WHERE id = ANY($1) AND is_active
		  ORDER BY id
		    FOR UPDATE`,
		pq.Array(implementIDs))
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	defer rows.Close()

	found := make(map[int32]bool, len(implementIDs))
	for rows.Next() {
		var id int32
		var avail string
		if err := rows.Scan(&id, &avail); err != nil {
			return domain.NewStorageFailure(err)
		}
		if avail != string(domain.ImplementAvailable) {
			return domain.NewResourceUnavailable(fmt.Sprintf("implement %d", id), "implement is %s", avail)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return domain.NewStorageFailure(err)
	}

	for _, id := range implementIDs {
		if !found[id] {
			return domain.NewNotFound(fmt.Sprintf("implement %d", id))
		}
	}
	return nil
}

func (r *reservationRepository) Release(ctx context.Context, vehicleID int32, implementIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	defer tx.Rollback()

	if err := releaseResources(ctx, tx, vehicleID, implementIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageFailure(err)
	}
	return nil
}

// releaseResources returns a booking's hold. It is deliberately unguarded by
// row counts: releasing an already-available resource is a no-op, which makes
// retries and duplicate terminal transitions safe. Shared with the booking
// repository so terminal status changes and their release commit atomically.
func releaseResources(ctx context.Context, tx *sql.Tx, vehicleID int32, implementIDs []int32) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET availability = 'available', updated_on = NOW()
		  WHERE id = $1 AND availability = 'booked'`,
		vehicleID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}

	if len(implementIDs) > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE implements
			    SET availability = 'available', attached_vehicle_id = NULL, updated_on = NOW()
			  WHERE id = ANY($1) AND availability = 'attached'`,
			pq.Array(implementIDs))
		if err != nil {
			return domain.NewStorageFailure(err)
		}
	}
	return nil
}
