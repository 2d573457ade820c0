package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Reject отклоняет бронь
// Доступно владельцу резиденции комнаты и SUPERADMIN.
// Разрешено из PENDING, повторное отклонение ничего не меняет
func (s *Service) Reject(ctx context.Context, reservationID int64, principal domain.Principal) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: reservation id=%d by user=%d, role=%s", reservationID, principal.UserID, principal.Role)

	if !principal.HasRole(domain.RoleOwner, domain.RoleSuperAdmin) {
		s.logger.Warn("Reject: role %s is not allowed", principal.Role)
		return nil, ErrAccessDenied
	}

	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Reject: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("Reject: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Reject - get reservation: %v", ErrInternal, err)
		}

		if err := s.checkRoomOwner(txCtx, "Reject", reservation.RoomID, principal); err != nil {
			return err
		}

		if !reservation.CanBeRejected() {
			s.logger.Warn("Reject: reservation id=%d has status %s", reservationID, reservation.Status)
			return ErrInvalidTransition
		}

		if reservation.Status == domain.ReservationPending {
			if err := s.reservationRepo.UpdateStatus(txCtx, reservation.ID, domain.ReservationRejected); err != nil {
				s.logger.Error("Reject: failed to update status of reservation id=%d: %v", reservationID, err)
				return fmt.Errorf("%w: Reject - update status: %v", ErrInternal, err)
			}
			reservation.Status = domain.ReservationRejected
		}

		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: reservation id=%d rejected", reservationID)
	return models.FromDomainReservation(result), nil
}

// List получает бронирования с учетом роли
// STUDENT видит только свои брони, OWNER и SUPERADMIN видят все по фильтрам
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*models.ReservationViewResponse, error) {
	s.logger.Info("List: user=%d, role=%s, status=%q, room=%d",
		req.Principal.UserID, req.Principal.Role, ptr.Deref(req.Status, ""), ptr.Deref(req.RoomID, 0))

	filter := domain.ReservationFilter{RoomID: req.RoomID}

	if req.Status != nil {
		status, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.Principal.IsStudent() {
		filter.StudentID = &req.Principal.UserID
	}

	return s.listViews(ctx, "List", filter)
}

// ListByStudent получает бронирования студента
// Студент может смотреть только свои брони, SUPERADMIN - любого студента
func (s *Service) ListByStudent(ctx context.Context, studentID int64, principal domain.Principal) ([]*models.ReservationViewResponse, error) {
	s.logger.Info("ListByStudent: student=%d by user=%d, role=%s", studentID, principal.UserID, principal.Role)

	allowed := principal.IsSuperAdmin() || (principal.IsStudent() && principal.UserID == studentID)
	if !allowed {
		s.logger.Warn("ListByStudent: access denied for user=%d to student=%d", principal.UserID, studentID)
		return nil, ErrAccessDenied
	}

	return s.listViews(ctx, "ListByStudent", domain.ReservationFilter{StudentID: &studentID})
}

// ListByOwner получает бронирования комнат в резиденциях владельца
// Владелец может смотреть только свои резиденции, SUPERADMIN - любого владельца
func (s *Service) ListByOwner(ctx context.Context, ownerID int64, principal domain.Principal) ([]*models.ReservationViewResponse, error) {
	s.logger.Info("ListByOwner: owner=%d by user=%d, role=%s", ownerID, principal.UserID, principal.Role)

	allowed := principal.IsSuperAdmin() || (principal.IsOwner() && principal.UserID == ownerID)
	if !allowed {
		s.logger.Warn("ListByOwner: access denied for user=%d to owner=%d", principal.UserID, ownerID)
		return nil, ErrAccessDenied
	}

	return s.listViews(ctx, "ListByOwner", domain.ReservationFilter{OwnerID: &ownerID})
}

func (s *Service) listViews(ctx context.Context, op string, filter domain.ReservationFilter) ([]*models.ReservationViewResponse, error) {
	views, err := s.reservationRepo.ListViews(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d reservations", op, len(views))
	return models.FromDomainReservationViews(views), nil
}

// checkRoomOwner проверяет, что пользователь владеет резиденцией комнаты (SUPERADMIN проходит всегда)
func (s *Service) checkRoomOwner(ctx context.Context, op string, roomID int64, principal domain.Principal) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("%s: room id=%d not found", op, roomID)
			return ErrRoomNotFound
		}
		s.logger.Error("%s: repository error for room id=%d: %v", op, roomID, err)
		return fmt.Errorf("%w: %s - get room: %v", ErrInternal, op, err)
	}

	if !principal.IsSuperAdmin() && !room.IsOwnedBy(principal.UserID) {
		s.logger.Warn("%s: user=%d does not own room id=%d", op, principal.UserID, roomID)
		return ErrAccessDenied
	}

	return nil
}
