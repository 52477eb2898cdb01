package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

const bookingColumns = `id, farmer_id, operator_id, vehicle_id, implement_ids, work_type, booking_date,
	rate_type, rate, duration_hours, area_acres, total_amount, status, payment_status,
	cancellation_reason, declined_by, start_time, end_time, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (farmer_id, operator_id, vehicle_id, implement_ids, work_type, booking_date,
	              rate_type, rate, duration_hours, area_acres, total_amount, status, payment_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		b.FarmerID, b.OperatorID, b.VehicleID, pq.Array(b.ImplementIDs), b.WorkType, b.BookingDate,
		b.RateType, b.Rate, b.DurationHours, b.AreaAcres, b.TotalAmount, b.Status, b.PaymentStatus,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(fmt.Sprintf("booking %d", id))
	}
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return b, nil
}

// Transition applies the old-status guard and every side effect of a status
// change in a single transaction. Racing transitions against the same booking
// are linearized on the status column: the second, stale request matches no
// row and surfaces as an invalid transition instead of overwriting the first.
func (r *bookingRepository) Transition(ctx context.Context, id int32, from []domain.BookingStatus, to domain.BookingStatus, upd repository.TransitionUpdate) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	defer tx.Rollback()

	sets := []string{"status = $1", "updated_on = NOW()"}
	args := []interface{}{string(to)}
	argIdx := 2

	if upd.Reason != "" {
		sets = append(sets, fmt.Sprintf("cancellation_reason = $%d", argIdx))
		args = append(args, upd.Reason)
		argIdx++
	}
	if upd.DeclineOperator != nil {
		sets = append(sets, fmt.Sprintf("declined_by = array_append(declined_by, $%d)", argIdx))
		args = append(args, *upd.DeclineOperator)
		argIdx++
	}
	if upd.SetStartTime {
		sets = append(sets, "start_time = NOW()")
	}
	if upd.SetEndTime {
		sets = append(sets, "end_time = NOW()")
	}
	if upd.MarkPaid {
		sets = append(sets, "payment_status = 'PAID'")
	}

	froms := make([]string, len(from))
	for i, s := range from {
		froms[i] = string(s)
	}

	query := fmt.Sprintf(`UPDATE bookings SET %s WHERE id = $%d AND status = ANY($%d) RETURNING %s`,
		strings.Join(sets, ", "), argIdx, argIdx+1, bookingColumns)
	args = append(args, id, pq.Array(froms))

	b, err := scanBooking(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Guard matched nothing: either the booking is gone or it is in a
		// state the transition does not permit. Distinguish for the caller.
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, domain.NewInvalidTransition("booking %d is %s, cannot move to %s", id, current.Status, to)
	}
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}

	if upd.ReleaseResources {
		if err := releaseResources(ctx, tx, b.VehicleID, b.ImplementIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return b, nil
}

func (r *bookingRepository) ListByFarmer(ctx context.Context, farmerID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE farmer_id = $1 ORDER BY created_on DESC`
	return r.queryBookings(ctx, query, farmerID)
}

func (r *bookingRepository) ListByOperator(ctx context.Context, operatorID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE operator_id = $1 ORDER BY created_on DESC`
	return r.queryBookings(ctx, query, operatorID)
}

func (r *bookingRepository) ListPendingRequests(ctx context.Context, operatorID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE operator_id = $1 AND status = 'REQUESTED' AND NOT ($1 = ANY(declined_by))
	           ORDER BY created_on DESC`
	return r.queryBookings(ctx, query, operatorID)
}

func (r *bookingRepository) ListStaleRequests(ctx context.Context, ttlHours int) ([]int32, error) {
	query := `SELECT id FROM bookings
	           WHERE status = 'REQUESTED' AND created_on < NOW() - make_interval(hours => $1)
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ttlHours)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, domain.NewStorageFailure(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return ids, nil
}

func (r *bookingRepository) Dashboard(ctx context.Context, operatorID int32) (*domain.OperatorDashboard, error) {
	query := `SELECT count(*), count(*) FILTER (WHERE status = 'COMPLETED')
	            FROM bookings WHERE operator_id = $1`
	d := &domain.OperatorDashboard{}
	if err := r.db.QueryRowContext(ctx, query, operatorID).Scan(&d.TotalBookings, &d.CompletedBookings); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return d, nil
}

func (r *bookingRepository) Earnings(ctx context.Context, operatorID int32) (*domain.OperatorEarnings, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0)
	            FROM bookings WHERE operator_id = $1 AND status = 'COMPLETED'`
	e := &domain.OperatorEarnings{}
	if err := r.db.QueryRowContext(ctx, query, operatorID).Scan(&e.TotalEarnings); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return e, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.NewStorageFailure(err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.FarmerID, &b.OperatorID, &b.VehicleID, pq.Array(&b.ImplementIDs), &b.WorkType, &b.BookingDate,
		&b.RateType, &b.Rate, &b.DurationHours, &b.AreaAcres, &b.TotalAmount, &b.Status, &b.PaymentStatus,
		&b.CancellationReason, pq.Array(&b.DeclinedBy), &b.StartTime, &b.EndTime, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
