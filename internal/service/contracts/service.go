package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/filestore"
	contractRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contract"
	detailsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contractdetails"
	"github.com/m04kA/SMC-RentalService/internal/service/contracts/models"
)

const (
	documentContentType = "application/pdf"

	kindGenerate   = "generate"
	kindRegenerate = "regenerate"
)

// Service сервис документов договоров
type Service struct {
	contractRepo ContractRepository
	detailsRepo  ContractDetailsRepository
	renderer     DocumentRenderer
	store        DocumentStore
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса договоров
func NewService(
	contractRepo ContractRepository,
	detailsRepo ContractDetailsRepository,
	renderer DocumentRenderer,
	store DocumentStore,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		contractRepo: contractRepo,
		detailsRepo:  detailsRepo,
		renderer:     renderer,
		store:        store,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Generate создает документ договора по условиям договора
// Доступно SUPERADMIN и владельцу из условий договора.
// Не более одного договора на условия: повтор возвращает ErrContractAlreadyExists.
// Файл записывается до вставки строки, чтение терпимо к отсутствию файла
func (s *Service) Generate(ctx context.Context, detailsID int64, principal domain.Principal) (*models.ContractResponse, error) {
	s.logger.Info("Generate: contract details id=%d by user=%d, role=%s", detailsID, principal.UserID, principal.Role)

	if !principal.HasRole(domain.RoleOwner, domain.RoleSuperAdmin) {
		s.logger.Warn("Generate: role %s is not allowed", principal.Role)
		return nil, ErrAccessDenied
	}

	details, err := s.getDetails(ctx, "Generate", detailsID)
	if err != nil {
		return nil, err
	}

	if !principal.IsSuperAdmin() && !details.IsOwner(principal.UserID) {
		s.logger.Warn("Generate: user=%d is not the owner of contract details id=%d", principal.UserID, detailsID)
		return nil, ErrAccessDenied
	}

	// Договор по этим условиям уже создан
	existing, err := s.contractRepo.GetByDetailsID(ctx, detailsID)
	if err != nil && !errors.Is(err, contractRepo.ErrContractNotFound) {
		s.logger.Error("Generate: repository error for contract details id=%d: %v", detailsID, err)
		return nil, fmt.Errorf("%w: Generate - get contract: %v", ErrInternal, err)
	}
	if existing != nil {
		s.logger.Warn("Generate: contract id=%d already exists for contract details id=%d", existing.ID, detailsID)
		return nil, ErrContractAlreadyExists
	}

	filename := domain.DocumentFilename(details.ReservationID, details.ID)
	if err := s.renderToStore(ctx, "Generate", details, filename); err != nil {
		return nil, err
	}

	documentURL := domain.DocumentURL(filename)
	reservationID := details.ReservationID

	created, err := s.contractRepo.Create(ctx, &domain.Contract{
		ReservationID: &reservationID,
		DetailsID:     details.ID,
		DocumentURL:   &documentURL,
	})
	if err != nil {
		if errors.Is(err, contractRepo.ErrContractAlreadyExists) {
			s.logger.Warn("Generate: contract for contract details id=%d created concurrently", detailsID)
			return nil, ErrContractAlreadyExists
		}
		s.logger.Error("Generate: failed to create contract for contract details id=%d: %v", detailsID, err)
		return nil, fmt.Errorf("%w: Generate - create contract: %v", ErrInternal, err)
	}

	s.recordRendered(kindGenerate)
	s.logger.Info("Generate: contract id=%d generated, document=%s", created.ID, documentURL)
	return models.FromDomainContract(created), nil
}

// Regenerate перерисовывает документ по текущему состоянию условий договора
// Имя файла сохраняется (или выводится заново, если document_url пуст).
// SUPERADMIN может всегда, из сторон договора - только владелец
func (s *Service) Regenerate(ctx context.Context, contractID int64, principal domain.Principal) (*models.ContractResponse, error) {
	s.logger.Info("Regenerate: contract id=%d by user=%d, role=%s", contractID, principal.UserID, principal.Role)

	contract, err := s.getContract(ctx, "Regenerate", contractID)
	if err != nil {
		return nil, err
	}

	details, err := s.getDetails(ctx, "Regenerate", contract.DetailsID)
	if err != nil {
		return nil, err
	}

	if !principal.IsSuperAdmin() {
		if !details.IsParty(principal.UserID) {
			s.logger.Warn("Regenerate: user=%d is not related to contract id=%d", principal.UserID, contractID)
			return nil, ErrAccessDenied
		}
		if !details.IsOwner(principal.UserID) {
			s.logger.Warn("Regenerate: user=%d is not the owner of contract id=%d", principal.UserID, contractID)
			return nil, ErrOnlyOwnerCanRegenerate
		}
	}

	filename := contract.Filename()
	if filename == "" {
		filename = domain.DocumentFilename(details.ReservationID, details.ID)
	}

	if err := s.renderToStore(ctx, "Regenerate", details, filename); err != nil {
		return nil, err
	}

	documentURL := domain.DocumentURL(filename)
	if err := s.contractRepo.UpdateDocumentURL(ctx, contract.ID, documentURL); err != nil {
		if errors.Is(err, contractRepo.ErrContractNotFound) {
			s.logger.Warn("Regenerate: contract id=%d deleted concurrently", contractID)
			return nil, ErrContractNotFound
		}
		s.logger.Error("Regenerate: failed to update document url of contract id=%d: %v", contractID, err)
		return nil, fmt.Errorf("%w: Regenerate - update document url: %v", ErrInternal, err)
	}
	contract.DocumentURL = &documentURL

	s.recordRendered(kindRegenerate)
	s.logger.Info("Regenerate: contract id=%d regenerated, document=%s", contractID, documentURL)
	return models.FromDomainContract(contract), nil
}

// List получает договоры с учетом роли
// SUPERADMIN видит все, OWNER - где он владелец, STUDENT - где он студент
func (s *Service) List(ctx context.Context, principal domain.Principal) ([]*models.ContractResponse, error) {
	s.logger.Info("List: contracts for user=%d, role=%s", principal.UserID, principal.Role)

	var filter domain.ContractFilter
	switch {
	case principal.IsSuperAdmin():
	case principal.IsOwner():
		filter.OwnerID = &principal.UserID
	case principal.IsStudent():
		filter.StudentID = &principal.UserID
	default:
		s.logger.Warn("List: role %s is not allowed", principal.Role)
		return nil, ErrAccessDenied
	}

	contracts, err := s.contractRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d contracts for user=%d", len(contracts), principal.UserID)
	return models.FromDomainContractList(contracts), nil
}

// GetByID получает договор
// Доступно SUPERADMIN, владельцу и студенту из условий договора
func (s *Service) GetByID(ctx context.Context, contractID int64, principal domain.Principal) (*models.ContractResponse, error) {
	s.logger.Info("GetByID: contract id=%d for user=%d", contractID, principal.UserID)

	contract, err := s.getAccessible(ctx, "GetByID", contractID, principal)
	if err != nil {
		return nil, err
	}

	return models.FromDomainContract(contract), nil
}

// Download возвращает содержимое файла договора
// Отсутствующий или нечитаемый файл возвращает ErrDocumentNotFound без раскрытия путей
func (s *Service) Download(ctx context.Context, contractID int64, principal domain.Principal) (*models.Document, error) {
	s.logger.Info("Download: contract id=%d for user=%d", contractID, principal.UserID)

	contract, err := s.getAccessible(ctx, "Download", contractID, principal)
	if err != nil {
		return nil, err
	}

	filename := contract.Filename()
	if filename == "" {
		s.logger.Warn("Download: contract id=%d has no document", contractID)
		return nil, ErrDocumentNotFound
	}

	content, err := s.store.Read(ctx, filename)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			s.logger.Warn("Download: document of contract id=%d is missing in store", contractID)
			return nil, ErrDocumentNotFound
		}
		// Нечитаемый файл для клиента тоже отсутствует, путь остается только в логе
		if errors.Is(err, filestore.ErrRead) || errors.Is(err, filestore.ErrInvalidName) {
			s.logger.Error("Download: document of contract id=%d is unreadable: %v", contractID, err)
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("Download: failed to read document of contract id=%d: %v", contractID, err)
		return nil, fmt.Errorf("%w: Download - read document: %v", ErrInternal, err)
	}

	return &models.Document{
		Filename:    filename,
		ContentType: documentContentType,
		Content:     content,
	}, nil
}

// Delete удаляет договор и условия договора его брони
// Доступно только SUPERADMIN. Файл удаляется после фиксации транзакции,
// отсутствие файла ошибкой не считается
func (s *Service) Delete(ctx context.Context, contractID int64, principal domain.Principal) error {
	s.logger.Info("Delete: contract id=%d by user=%d, role=%s", contractID, principal.UserID, principal.Role)

	if !principal.IsSuperAdmin() {
		s.logger.Warn("Delete: role %s is not allowed", principal.Role)
		return ErrAccessDenied
	}

	var filename string

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		contract, err := s.getContract(txCtx, "Delete", contractID)
		if err != nil {
			return err
		}
		filename = contract.Filename()

		if err := s.contractRepo.Delete(txCtx, contract.ID); err != nil {
			if errors.Is(err, contractRepo.ErrContractNotFound) {
				return ErrContractNotFound
			}
			s.logger.Error("Delete: failed to delete contract id=%d: %v", contractID, err)
			return fmt.Errorf("%w: Delete - delete contract: %v", ErrInternal, err)
		}

		// Условия договора ищутся по брони договора
		if contract.ReservationID != nil {
			if err := s.detailsRepo.DeleteByReservationID(txCtx, *contract.ReservationID); err != nil {
				s.logger.Error("Delete: failed to delete contract details of reservation id=%d: %v",
					*contract.ReservationID, err)
				return fmt.Errorf("%w: Delete - delete contract details: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if filename != "" {
		if err := s.store.Remove(ctx, filename); err != nil {
			s.logger.Warn("Delete: failed to remove document of contract id=%d: %v", contractID, err)
		}
	}

	s.logger.Info("Delete: contract id=%d deleted", contractID)
	return nil
}

// getAccessible получает договор с проверкой доступа стороны договора
func (s *Service) getAccessible(ctx context.Context, op string, contractID int64, principal domain.Principal) (*domain.Contract, error) {
	contract, err := s.getContract(ctx, op, contractID)
	if err != nil {
		return nil, err
	}

	if principal.IsSuperAdmin() {
		return contract, nil
	}

	details, err := s.getDetails(ctx, op, contract.DetailsID)
	if err != nil {
		return nil, err
	}

	if !details.IsParty(principal.UserID) {
		s.logger.Warn("%s: access denied for user=%d to contract id=%d", op, principal.UserID, contractID)
		return nil, ErrAccessDenied
	}

	return contract, nil
}

func (s *Service) getContract(ctx context.Context, op string, id int64) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contractRepo.ErrContractNotFound) {
			s.logger.Warn("%s: contract id=%d not found", op, id)
			return nil, ErrContractNotFound
		}
		s.logger.Error("%s: repository error for contract id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get contract: %v", ErrInternal, op, err)
	}
	return contract, nil
}

func (s *Service) getDetails(ctx context.Context, op string, id int64) (*domain.ContractDetails, error) {
	details, err := s.detailsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, detailsRepo.ErrContractDetailsNotFound) {
			s.logger.Warn("%s: contract details id=%d not found", op, id)
			return nil, ErrContractDetailsNotFound
		}
		s.logger.Error("%s: repository error for contract details id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get contract details: %v", ErrInternal, op, err)
	}
	return details, nil
}

// renderToStore отрисовывает документ и записывает его под именем filename
func (s *Service) renderToStore(ctx context.Context, op string, details *domain.ContractDetails, filename string) error {
	content, err := s.renderer.Render(ctx, details, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("%s: failed to render contract details id=%d: %v", op, details.ID, err)
		return fmt.Errorf("%w: %s - render document: %v", ErrInternal, op, err)
	}

	if err := s.store.Save(ctx, filename, content); err != nil {
		s.logger.Error("%s: failed to save document %s: %v", op, filename, err)
		return fmt.Errorf("%w: %s - save document: %v", ErrInternal, op, err)
	}

	return nil
}

func (s *Service) recordRendered(kind string) {
	if s.metrics != nil {
		s.metrics.DocumentRendered(kind)
	}
}
