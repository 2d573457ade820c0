package contractdetails

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const constraintOnePerReservation = "contract_details_reservation_id_key"

var detailsColumns = []string{
	"id",
	"reservation_id",
	"room_id",
	"student_id",
	"owner_id",
	"title",
	"description",
	"monthly_price",
	"deposit_amount",
	"payment_day",
	"start_date",
	"end_date",
	"included_services",
	"rules",
	"extra_conditions",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий условий договора
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория условий договора
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает условия договора
// Вторая запись для той же брони отклоняется уникальным ограничением (ErrContractDetailsAlreadyExist)
func (r *Repository) Create(ctx context.Context, details *domain.ContractDetails) (*domain.ContractDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contract_details").
		Columns(
			"reservation_id",
			"room_id",
			"student_id",
			"owner_id",
			"title",
			"description",
			"monthly_price",
			"deposit_amount",
			"payment_day",
			"start_date",
			"end_date",
			"included_services",
			"rules",
			"extra_conditions",
			"status",
		).
		Values(
			details.ReservationID,
			details.RoomID,
			details.StudentID,
			details.OwnerID,
			details.Title,
			details.Description,
			details.MonthlyPrice,
			details.DepositAmount,
			details.PaymentDay,
			details.StartDate,
			details.EndDate,
			details.IncludedServices,
			details.Rules,
			details.ExtraConditions,
			details.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&details.ID,
		&details.CreatedAt,
		&details.UpdatedAt,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err, constraintOnePerReservation) {
			return nil, ErrContractDetailsAlreadyExist
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return details, nil
}

// GetByID получает условия договора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ContractDetails, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReservationID получает условия договора брони
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.ContractDetails, error) {
	return r.getOne(ctx, "GetByReservationID", squirrel.Eq{"reservation_id": reservationID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.ContractDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("contract_details").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var d domain.ContractDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&d.ReservationID,
		&d.RoomID,
		&d.StudentID,
		&d.OwnerID,
		&d.Title,
		&d.Description,
		&d.MonthlyPrice,
		&d.DepositAmount,
		&d.PaymentDay,
		&d.StartDate,
		&d.EndDate,
		&d.IncludedServices,
		&d.Rules,
		&d.ExtraConditions,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractDetailsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan contract details: %w", ErrScanRow, op, err)
	}

	return &d, nil
}

// Update сохраняет редактируемые поля условий договора и обновляет updated_at
// Связи (reservation, room, student, owner) не меняются
func (r *Repository) Update(ctx context.Context, details *domain.ContractDetails) (*domain.ContractDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contract_details").
		Set("title", details.Title).
		Set("description", details.Description).
		Set("monthly_price", details.MonthlyPrice).
		Set("deposit_amount", details.DepositAmount).
		Set("payment_day", details.PaymentDay).
		Set("start_date", details.StartDate).
		Set("end_date", details.EndDate).
		Set("included_services", details.IncludedServices).
		Set("rules", details.Rules).
		Set("extra_conditions", details.ExtraConditions).
		Set("status", details.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": details.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&details.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractDetailsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return details, nil
}

// DeleteByReservationID удаляет условия договора брони
// Отсутствие записи не считается ошибкой
func (r *Repository) DeleteByReservationID(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("contract_details").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByReservationID - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}
