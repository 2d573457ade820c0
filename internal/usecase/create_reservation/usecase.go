package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования в статусе PENDING
// Проверки комнаты, активной брони студента и пересечения дат выполняются
// в одной сериализуемой транзакции вместе с вставкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, role=%s, room=%d, start=%s, end=%s",
		req.Principal.UserID, req.Principal.Role, req.RoomID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Проверка роли
	if !req.Principal.HasRole(domain.RoleStudent, domain.RoleSuperAdmin) {
		uc.logger.Warn("CreateReservation: role %s is not allowed", req.Principal.Role)
		return nil, ErrForbidden
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 3. Студент всегда бронирует за себя
	studentID := req.StudentID
	if req.Principal.IsStudent() {
		studentID = &req.Principal.UserID
	}

	var result *domain.Reservation

	// 4. Выполняем проверки и вставку в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Комната должна существовать
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
				return ErrRoomNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
		}

		// 4.2. Не более одной активной брони на студента
		if studentID != nil {
			active, err := uc.reservationRepo.GetActiveByStudentID(txCtx, *studentID)
			if err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Error("CreateReservation: failed to get active reservation of student id=%d: %v", *studentID, err)
				return fmt.Errorf("%w: failed to get active reservation: %w", ErrInternal, err)
			}
			if active != nil {
				uc.logger.Warn("CreateReservation: student id=%d already has active reservation id=%d (%s)",
					*studentID, active.ID, active.Status)
				return ErrActiveReservationExists
			}
		}

		// 4.3. Период не должен пересекаться с подтвержденными бронями комнаты
		overlapping, err := uc.reservationRepo.GetConfirmedOverlapping(txCtx, req.RoomID, req.StartDate, req.EndDate, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to check overlapping reservations: %w", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: dates overlap with confirmed reservation id=%d", overlapping[0].ID)
			return ErrDatesOverlap
		}

		// 4.4. Комната должна быть доступна
		// Проверяется после пересечения: на период подтвержденной брони ответом будет конфликт
		if !room.IsAvailable {
			uc.logger.Warn("CreateReservation: room id=%d is not available", req.RoomID)
			return ErrRoomNotAvailable
		}

		// 4.5. Создаем бронь
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			RoomID:    req.RoomID,
			StudentID: studentID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Status:    domain.ReservationPending,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrActiveReservationExists) {
				uc.logger.Warn("CreateReservation: active reservation appeared concurrently")
				return ErrActiveReservationExists
			}
			if errors.Is(err, reservationRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d was deleted concurrently", req.RoomID)
				return ErrRoomNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateReservation: serialization failure for room id=%d: %v", req.RoomID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		RoomID:     result.RoomID,
		StudentID:  result.StudentID,
		StartDate:  result.StartDate,
		EndDate:    result.EndDate,
		Status:     string(result.Status),
		TotalPrice: result.TotalPrice,
	}, nil
}
