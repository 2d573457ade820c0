package contract

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

const constraintOnePerDetails = "contracts_details_id_key"

// Repository репозиторий сгенерированных договоров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория договоров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись о документе договора
// Не более одной записи на условия договора, повтор возвращает ErrContractAlreadyExists
func (r *Repository) Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contracts").
		Columns("reservation_id", "details_id", "document_url").
		Values(contract.ReservationID, contract.DetailsID, contract.DocumentURL).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&contract.ID, &contract.CreatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err, constraintOnePerDetails) {
			return nil, ErrContractAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return contract, nil
}

// GetByID получает договор по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByDetailsID получает договор, созданный по условиям договора
func (r *Repository) GetByDetailsID(ctx context.Context, detailsID int64) (*domain.Contract, error) {
	return r.getOne(ctx, "GetByDetailsID", squirrel.Eq{"details_id": detailsID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "reservation_id", "details_id", "document_url", "created_at").
		From("contracts").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	contract, err := scanContract(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan contract: %w", ErrScanRow, op, err)
	}

	return contract, nil
}

// List получает договоры, сначала новые
// Фильтры по владельцу и студенту применяются к связанным условиям договора
func (r *Repository) List(ctx context.Context, filter domain.ContractFilter) ([]*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"c.id",
		"c.reservation_id",
		"c.details_id",
		"c.document_url",
		"c.created_at",
	).
		From("contracts c").
		Join("contract_details d ON d.id = c.details_id")

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.owner_id": *filter.OwnerID})
	}

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.student_id": *filter.StudentID})
	}

	query, args, err := selectBuilder.OrderBy("c.created_at DESC", "c.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return contracts, nil
}

// UpdateDocumentURL сохраняет путь к документу договора
func (r *Repository) UpdateDocumentURL(ctx context.Context, id int64, documentURL string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("document_url", documentURL).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDocumentURL - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDocumentURL - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDocumentURL - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrContractNotFound
	}

	return nil
}

// Delete удаляет договор
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("contracts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrContractNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var contract domain.Contract
	err := row.Scan(
		&contract.ID,
		&contract.ReservationID,
		&contract.DetailsID,
		&contract.DocumentURL,
		&contract.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}
