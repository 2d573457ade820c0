package confirm_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	detailsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contractdetails"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// UseCase use case для подтверждения брони
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	detailsRepo     ContractDetailsRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	detailsRepo ContractDetailsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		detailsRepo:     detailsRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute подтверждает бронь
// В одной сериализуемой транзакции: статус CONFIRMED, комната недоступна,
// условия договора создаются, если их еще нет.
// Повторное подтверждение CONFIRMED брони не создает вторых условий договора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReservation: user=%d, role=%s, reservation=%d",
		req.Principal.UserID, req.Principal.Role, req.ReservationID)

	// 1. Проверка роли
	if !req.Principal.HasRole(domain.RoleOwner, domain.RoleSuperAdmin) {
		uc.logger.Warn("ConfirmReservation: role %s is not allowed", req.Principal.Role)
		return nil, ErrForbidden
	}

	// 2. Валидация
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation_id must be positive", ErrInvalidInput)
	}

	var (
		result    *domain.Reservation
		detailsID int64
	)

	// 3. Переход и побочные эффекты в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Бронь (FOR UPDATE)
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ConfirmReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ConfirmReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 3.2. Комната с владельцем резиденции
		room, err := uc.roomRepo.GetByID(txCtx, reservation.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("ConfirmReservation: room id=%d not found", reservation.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("ConfirmReservation: failed to get room id=%d: %v", reservation.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
		}

		// 3.3. Подтверждать может только владелец резиденции или SUPERADMIN
		if !req.Principal.IsSuperAdmin() && !room.IsOwnedBy(req.Principal.UserID) {
			uc.logger.Warn("ConfirmReservation: user id=%d does not own room id=%d", req.Principal.UserID, room.ID)
			return ErrForbidden
		}

		if !reservation.CanBeConfirmed() {
			uc.logger.Warn("ConfirmReservation: reservation id=%d has status %s", reservation.ID, reservation.Status)
			return ErrInvalidTransition
		}

		// 3.4. Перевод в CONFIRMED с повторной проверкой пересечений
		if reservation.Status == domain.ReservationPending {
			overlapping, err := uc.reservationRepo.GetConfirmedOverlapping(
				txCtx, room.ID, reservation.StartDate, reservation.EndDate, &reservation.ID)
			if err != nil {
				uc.logger.Error("ConfirmReservation: failed to check overlapping reservations: %v", err)
				return fmt.Errorf("%w: failed to check overlapping reservations: %w", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				uc.logger.Warn("ConfirmReservation: reservation id=%d overlaps confirmed reservation id=%d",
					reservation.ID, overlapping[0].ID)
				return ErrDatesOverlap
			}

			if err := uc.reservationRepo.UpdateStatus(txCtx, reservation.ID, domain.ReservationConfirmed); err != nil {
				if errors.Is(err, reservationRepo.ErrDatesOverlap) {
					return ErrDatesOverlap
				}
				uc.logger.Error("ConfirmReservation: failed to update status: %v", err)
				return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
			}
			reservation.Status = domain.ReservationConfirmed
		}

		// 3.5. Комната больше не доступна для бронирования
		if err := uc.roomRepo.SetAvailability(txCtx, room.ID, false); err != nil {
			uc.logger.Error("ConfirmReservation: failed to mark room id=%d unavailable: %v", room.ID, err)
			return fmt.Errorf("%w: failed to update room availability: %w", ErrInternal, err)
		}

		// 3.6. Условия договора, если их еще нет
		id, err := uc.ensureContractDetails(txCtx, reservation, room)
		if err != nil {
			return err
		}

		result = reservation
		detailsID = id
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("ConfirmReservation: serialization failure for reservation id=%d: %v", req.ReservationID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("ConfirmReservation: reservation id=%d confirmed, contract details id=%d", result.ID, detailsID)

	return &Response{
		ID:                result.ID,
		RoomID:            result.RoomID,
		StudentID:         result.StudentID,
		StartDate:         result.StartDate,
		EndDate:           result.EndDate,
		Status:            string(result.Status),
		TotalPrice:        result.TotalPrice,
		ContractDetailsID: detailsID,
	}, nil
}

// ensureContractDetails возвращает ID существующих условий договора или создает черновик
func (uc *UseCase) ensureContractDetails(ctx context.Context, reservation *domain.Reservation, room *domain.Room) (int64, error) {
	existing, err := uc.detailsRepo.GetByReservationID(ctx, reservation.ID)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, detailsRepo.ErrContractDetailsNotFound) {
		uc.logger.Error("ConfirmReservation: failed to get contract details of reservation id=%d: %v", reservation.ID, err)
		return 0, fmt.Errorf("%w: failed to get contract details: %w", ErrInternal, err)
	}

	created, err := uc.detailsRepo.Create(ctx, newContractDetails(reservation, room))
	if err != nil {
		uc.logger.Error("ConfirmReservation: failed to create contract details: %v", err)
		return 0, fmt.Errorf("%w: failed to create contract details: %w", ErrInternal, err)
	}

	uc.logger.Info("ConfirmReservation: created contract details id=%d for reservation id=%d", created.ID, reservation.ID)
	return created.ID, nil
}
