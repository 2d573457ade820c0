package contractdetails

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	detailsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contractdetails"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails/models"
)

// Service сервис для работы с условиями договора
type Service struct {
	detailsRepo ContractDetailsRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса условий договора
func NewService(detailsRepo ContractDetailsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		detailsRepo: detailsRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает условия договора
// Доступно SUPERADMIN, владельцу и студенту из условий договора
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.ContractDetailsResponse, error) {
	s.logger.Info("GetByID: contract details id=%d for user=%d", id, principal.UserID)

	details, err := s.detailsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	if err := s.checkPartyAccess("GetByID", details, principal); err != nil {
		return nil, err
	}

	return models.FromDomainContractDetails(details), nil
}

// GetByReservationID получает условия договора брони
// Доступно SUPERADMIN, владельцу и студенту из условий договора
func (s *Service) GetByReservationID(ctx context.Context, reservationID int64, principal domain.Principal) (*models.ContractDetailsResponse, error) {
	s.logger.Info("GetByReservationID: reservation id=%d for user=%d", reservationID, principal.UserID)

	details, err := s.detailsRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		return nil, s.mapRepoError("GetByReservationID", reservationID, err)
	}

	if err := s.checkPartyAccess("GetByReservationID", details, principal); err != nil {
		return nil, err
	}

	return models.FromDomainContractDetails(details), nil
}

// Update частично обновляет условия договора
// Доступно SUPERADMIN и владельцу из условий договора.
// Меняются только переданные поля, статус задает вызывающий
func (s *Service) Update(ctx context.Context, id int64, principal domain.Principal, req *models.UpdateRequest) (*models.ContractDetailsResponse, error) {
	s.logger.Info("Update: contract details id=%d by user=%d, role=%s", id, principal.UserID, principal.Role)

	if !principal.HasRole(domain.RoleOwner, domain.RoleSuperAdmin) {
		s.logger.Warn("Update: role %s is not allowed", principal.Role)
		return nil, ErrAccessDenied
	}

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("Update: invalid request for contract details id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.ContractDetails

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		details, err := s.detailsRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}

		if !principal.IsSuperAdmin() && !details.IsOwner(principal.UserID) {
			s.logger.Warn("Update: user=%d is not the owner of contract details id=%d", principal.UserID, id)
			return ErrAccessDenied
		}

		patch.Apply(details)

		if err := validateDetails(details); err != nil {
			s.logger.Warn("Update: validation failed for contract details id=%d: %v", id, err)
			return err
		}

		updated, err := s.detailsRepo.Update(txCtx, details)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: contract details id=%d updated, status=%s", id, result.Status)
	return models.FromDomainContractDetails(result), nil
}

func (s *Service) checkPartyAccess(op string, details *domain.ContractDetails, principal domain.Principal) error {
	if principal.IsSuperAdmin() || details.IsParty(principal.UserID) {
		return nil
	}
	s.logger.Warn("%s: access denied for user=%d to contract details id=%d", op, principal.UserID, details.ID)
	return ErrAccessDenied
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, detailsRepo.ErrContractDetailsNotFound) {
		s.logger.Warn("%s: contract details not found: id=%d", op, id)
		return ErrContractDetailsNotFound
	}
	s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
