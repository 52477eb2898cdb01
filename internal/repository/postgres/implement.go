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

const implementColumns = `id, operator_id, name, brand, model, compatible_vehicle_types,
	working_width, rate_type, rate, availability, attached_vehicle_id, is_active, created_on, updated_on`

type implementRepository struct {
	db *sql.DB
}

func NewImplementRepository(db *sql.DB) repository.ImplementRepository {
	return &implementRepository{db: db}
}

func (r *implementRepository) Create(ctx context.Context, im *domain.Implement) error {
	query := `INSERT INTO implements (operator_id, name, brand, model, compatible_vehicle_types,
	              working_width, rate_type, rate, availability, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'available', TRUE, NOW(), NOW())
	          RETURNING id, availability, is_active, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		im.OperatorID, im.Name, im.Brand, im.Model, pq.Array(im.CompatibleVehicleTypes),
		im.WorkingWidth, im.RateType, im.Rate,
	).Scan(&im.ID, &im.Availability, &im.IsActive, &im.CreatedOn, &im.UpdatedOn)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	return nil
}

func (r *implementRepository) GetByID(ctx context.Context, id int32) (*domain.Implement, error) {
	query := `SELECT ` + implementColumns + ` FROM implements WHERE id = $1`
	im, err := scanImplement(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(fmt.Sprintf("implement %d", id))
	}
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return im, nil
}

func (r *implementRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Implement, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + implementColumns + ` FROM implements WHERE id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	defer rows.Close()

	var implements []domain.Implement
	for rows.Next() {
		im, err := scanImplement(rows)
		if err != nil {
			return nil, domain.NewStorageFailure(err)
		}
		implements = append(implements, *im)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return implements, nil
}

// Update writes listing fields only; availability and the vehicle
// back-reference belong to the reservation transactions.
func (r *implementRepository) Update(ctx context.Context, im *domain.Implement) error {
	query := `UPDATE implements SET name = $1, brand = $2, model = $3, compatible_vehicle_types = $4,
	              working_width = $5, rate_type = $6, rate = $7, updated_on = NOW()
	          WHERE id = $8 AND operator_id = $9`
	res, err := r.db.ExecContext(ctx, query,
		im.Name, im.Brand, im.Model, pq.Array(im.CompatibleVehicleTypes),
		im.WorkingWidth, im.RateType, im.Rate, im.ID, im.OperatorID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound(fmt.Sprintf("implement %d", im.ID))
	}
	return nil
}

func (r *implementRepository) Deactivate(ctx context.Context, id, operatorID int32) error {
	query := `UPDATE implements SET is_active = FALSE, updated_on = NOW()
	          WHERE id = $1 AND operator_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, operatorID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound(fmt.Sprintf("implement %d", id))
	}
	return nil
}

func (r *implementRepository) ListByOperator(ctx context.Context, operatorID int32) ([]domain.Implement, error) {
	query := `SELECT ` + implementColumns + ` FROM implements
	           WHERE operator_id = $1 AND is_active ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, operatorID)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	defer rows.Close()

	var implements []domain.Implement
	for rows.Next() {
		im, err := scanImplement(rows)
		if err != nil {
			return nil, domain.NewStorageFailure(err)
		}
		implements = append(implements, *im)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return implements, nil
}

func scanImplement(row rowScanner) (*domain.Implement, error) {
	im := &domain.Implement{}
	err := row.Scan(
		&im.ID, &im.OperatorID, &im.Name, &im.Brand, &im.Model, pq.Array(&im.CompatibleVehicleTypes),
		&im.WorkingWidth, &im.RateType, &im.Rate, &im.Availability, &im.AttachedVehicleID,
		&im.IsActive, &im.CreatedOn, &im.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return im, nil
}
