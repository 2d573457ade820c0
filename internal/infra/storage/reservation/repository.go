package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerr"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const (
	constraintNoConfirmedOverlap  = "reservations_no_confirmed_overlap"
	constraintOneActivePerStudent = "reservations_one_active_per_student"
	constraintRoomForeignKey      = "reservations_room_id_fkey"
)

var reservationColumns = []string{
	"id",
	"room_id",
	"student_id",
	"start_date",
	"end_date",
	"status",
	"total_price",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_id",
			"student_id",
			"start_date",
			"end_date",
			"status",
		).
		Values(
			reservation.RoomID,
			reservation.StudentID,
			reservation.StartDate,
			reservation.EndDate,
			reservation.Status,
		).
		Suffix("RETURNING id, total_price").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.TotalPrice,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err, constraintOneActivePerStudent) {
			return nil, ErrActiveReservationExists
		}
		if pgerr.IsForeignKeyViolation(err, constraintRoomForeignKey) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// GetActiveByStudentID получает активное (PENDING или CONFIRMED) бронирование студента
// Возвращает ErrReservationNotFound, если активной брони нет
func (r *Repository) GetActiveByStudentID(ctx context.Context, studentID int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveReservationStatuses)}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStudentID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStudentID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// GetConfirmedOverlapping получает подтвержденные брони комнаты, пересекающиеся с [start, end)
// Пересечение проверяется тремя условиями:
// 1. начало нового периода внутри существующего
// 2. конец нового периода внутри существующего
// 3. новый период целиком содержит существующий
//
// excludeID позволяет исключить саму бронь при повторной проверке во время подтверждения.
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) GetConfirmedOverlapping(
	ctx context.Context,
	roomID int64,
	start, end time.Time,
	excludeID *int64,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": domain.ReservationConfirmed}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.LtOrEq{"start_date": start},
				squirrel.Gt{"end_date": start},
			},
			squirrel.And{
				squirrel.Lt{"start_date": end},
				squirrel.GtOrEq{"end_date": end},
			},
			squirrel.And{
				squirrel.GtOrEq{"start_date": start},
				squirrel.LtOrEq{"end_date": end},
			},
		}).
		OrderBy("start_date ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetConfirmedOverlapping - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedOverlapping - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsExclusionViolation(err, constraintNoConfirmedOverlap) {
			return ErrDatesOverlap
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListViews получает бронирования с данными владельца, студента, резиденции и комнаты
// Сортировка: сначала новые (id DESC)
//
// Примеры использования:
//
// 1. Все брони:
//    filter := domain.ReservationFilter{}
//
// 2. Брони студента:
//    filter := domain.ReservationFilter{StudentID: &studentID}
//
// 3. Брони в резиденциях владельца:
//    filter := domain.ReservationFilter{OwnerID: &ownerID}
//
// 4. Подтвержденные брони комнаты:
//    status := domain.ReservationConfirmed
//    filter := domain.ReservationFilter{RoomID: &roomID, Status: &status}
func (r *Repository) ListViews(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.room_id",
		"r.student_id",
		"r.start_date",
		"r.end_date",
		"r.status",
		"r.total_price",
		"owner.full_name",
		"student.full_name",
		"res.name",
		"res.address",
		"rm.price_per_month",
	).
		From("reservations r").
		LeftJoin("rooms rm ON rm.id = r.room_id").
		LeftJoin("residences res ON res.id = rm.residence_id").
		LeftJoin("users owner ON owner.id = res.owner_id").
		LeftJoin("users student ON student.id = r.student_id")

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	}

	// Фильтрация по комнате
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.room_id": *filter.RoomID})
	}

	// Фильтрация по студенту
	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.student_id": *filter.StudentID})
	}

	// Фильтрация по владельцу резиденции
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"res.owner_id": *filter.OwnerID})
	}

	query, args, err := selectBuilder.OrderBy("r.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	views := make([]*domain.ReservationView, 0)
	for rows.Next() {
		var view domain.ReservationView
		err := rows.Scan(
			&view.ID,
			&view.RoomID,
			&view.StudentID,
			&view.StartDate,
			&view.EndDate,
			&view.Status,
			&view.TotalPrice,
			&view.OwnerName,
			&view.StudentName,
			&view.ResidenceName,
			&view.ResidenceAddress,
			&view.RoomPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListViews - scan row: %w", ErrScanRow, err)
		}
		views = append(views, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListViews - rows error: %w", ErrScanRow, err)
	}

	return views, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует строку в бронирование (порядок колонок reservationColumns)
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.RoomID,
		&reservation.StudentID,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.Status,
		&reservation.TotalPrice,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
