package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

const vehicleColumns = `id, operator_id, type, brand, model, power_capacity, fuel_type,
	registration_number, rate_type, rate, availability, is_active, created_on, updated_on`

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (operator_id, type, brand, model, power_capacity, fuel_type,
	              registration_number, rate_type, rate, availability, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'available', TRUE, NOW(), NOW())
	          RETURNING id, availability, is_active, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		v.OperatorID, v.Type, v.Brand, v.Model, v.PowerCapacity, v.FuelType,
		v.RegistrationNumber, v.RateType, v.Rate,
	).Scan(&v.ID, &v.Availability, &v.IsActive, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v := &domain.Vehicle{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.OperatorID, &v.Type, &v.Brand, &v.Model, &v.PowerCapacity, &v.FuelType,
		&v.RegistrationNumber, &v.RateType, &v.Rate, &v.Availability, &v.IsActive, &v.CreatedOn, &v.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(fmt.Sprintf("vehicle %d", id))
	}
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return v, nil
}

// Update writes listing fields only. Availability belongs to the reservation
// transactions and is never touched here.
func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET brand = $1, model = $2, power_capacity = $3, fuel_type = $4,
	              registration_number = $5, rate_type = $6, rate = $7, updated_on = NOW()
	          WHERE id = $8 AND operator_id = $9`
	res, err := r.db.ExecContext(ctx, query,
		v.Brand, v.Model, v.PowerCapacity, v.FuelType,
		v.RegistrationNumber, v.RateType, v.Rate, v.ID, v.OperatorID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound(fmt.Sprintf("vehicle %d", v.ID))
	}
	return nil
}

func (r *vehicleRepository) Deactivate(ctx context.Context, id, operatorID int32) error {
	query := `UPDATE vehicles SET is_active = FALSE, updated_on = NOW()
	          WHERE id = $1 AND operator_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, operatorID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound(fmt.Sprintf("vehicle %d", id))
	}
	return nil
}

func (r *vehicleRepository) ListByOperator(ctx context.Context, operatorID int32) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
	           WHERE operator_id = $1 AND is_active ORDER BY created_on DESC`
	return r.queryVehicles(ctx, query, operatorID)
}

func (r *vehicleRepository) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
	           WHERE availability = 'available' AND is_active ORDER BY created_on DESC`
	return r.queryVehicles(ctx, query)
}

func (r *vehicleRepository) queryVehicles(ctx context.Context, query string, args ...interface{}) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID, &v.OperatorID, &v.Type, &v.Brand, &v.Model, &v.PowerCapacity, &v.FuelType,
			&v.RegistrationNumber, &v.RateType, &v.Rate, &v.Availability, &v.IsActive, &v.CreatedOn, &v.UpdatedOn,
		); err != nil {
			return nil, domain.NewStorageFailure(err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure(err)
	}
	return vehicles, nil
}
