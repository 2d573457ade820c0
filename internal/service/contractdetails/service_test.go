package contractdetails

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	detailsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contractdetails"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type fakeDetailsRepo struct {
	details map[int64]*domain.ContractDetails
	saved   int
}

func (f *fakeDetailsRepo) GetByID(_ context.Context, id int64) (*domain.ContractDetails, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, detailsRepo.ErrContractDetailsNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDetailsRepo) GetByReservationID(_ context.Context, reservationID int64) (*domain.ContractDetails, error) {
	for _, d := range f.details {
		if d.ReservationID == reservationID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, detailsRepo.ErrContractDetailsNotFound
}

func (f *fakeDetailsRepo) Update(_ context.Context, d *domain.ContractDetails) (*domain.ContractDetails, error) {
	f.saved++
	d.UpdatedAt = d.UpdatedAt.Add(time.Minute)
	copied := *d
	f.details[d.ID] = &copied
	return d, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	owner   = domain.Principal{UserID: 4, Role: domain.RoleOwner}
	student = domain.Principal{UserID: 9, Role: domain.RoleStudent}
	admin   = domain.Principal{UserID: 1, Role: domain.RoleSuperAdmin}
	other   = domain.Principal{UserID: 5, Role: domain.RoleOwner}
)

func newTestService() (*Service, *fakeDetailsRepo) {
	repo := &fakeDetailsRepo{details: map[int64]*domain.ContractDetails{
		3: {
			ID:            3,
			ReservationID: 7,
			StudentID:     ptr.Ptr(int64(9)),
			OwnerID:       ptr.Ptr(int64(4)),
			Title:         "Rental contract - Room 1",
			MonthlyPrice:  500,
			DepositAmount: ptr.Ptr(500.0),
			PaymentDay:    ptr.Ptr(5),
			StartDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			Status:        domain.ContractDetailsDraft,
			UpdatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	return NewService(repo, fakeTxManager{}, logger.NewNop()), repo
}

func TestService_Get_Access(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{name: "owner", principal: owner},
		{name: "student", principal: student},
		{name: "superadmin", principal: admin},
		{name: "unrelated owner", principal: other, wantErr: ErrAccessDenied},
		{name: "unrelated student", principal: domain.Principal{UserID: 10, Role: domain.RoleStudent}, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()

			byID, err := svc.GetByID(context.Background(), 3, tt.principal)
			byReservation, err2 := svc.GetByReservationID(context.Background(), 7, tt.principal)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err2, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, err2)
			assert.Equal(t, byID, byReservation)
			assert.Equal(t, "2024-03-01", byID.StartDate)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 99, admin)
	assert.ErrorIs(t, err, ErrContractDetailsNotFound)

	_, err = svc.GetByReservationID(context.Background(), 99, admin)
	assert.ErrorIs(t, err, ErrContractDetailsNotFound)
}

func TestService_Update_MergesOnlySuppliedFields(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Update(context.Background(), 3, owner, &models.UpdateRequest{
		MonthlyPrice: ptr.Ptr(650.0),
		Status:       ptr.Ptr("READY"),
	})

	require.NoError(t, err)
	assert.Equal(t, 650.0, resp.MonthlyPrice)
	assert.Equal(t, "READY", resp.Status)
	assert.Equal(t, "Rental contract - Room 1", resp.Title)
	assert.Equal(t, 500.0, *resp.DepositAmount)
	assert.Equal(t, 5, *resp.PaymentDay)
	assert.True(t, resp.UpdatedAt.After(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, repo.saved)
	assert.Equal(t, 650.0, repo.details[3].MonthlyPrice)
}

func TestService_Update_StatusIsCallerDriven(t *testing.T) {
	svc, _ := newTestService()

	for _, status := range []string{"CANCELLED", "DRAFT", "READY"} {
		resp, err := svc.Update(context.Background(), 3, admin, &models.UpdateRequest{Status: ptr.Ptr(status)})
		require.NoError(t, err)
		assert.Equal(t, status, resp.Status)
	}
}

func TestService_Update_Errors(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		principal domain.Principal
		req       *models.UpdateRequest
		wantErr   error
	}{
		{name: "student", id: 3, principal: student, req: &models.UpdateRequest{}, wantErr: ErrAccessDenied},
		{name: "other owner", id: 3, principal: other, req: &models.UpdateRequest{}, wantErr: ErrAccessDenied},
		{name: "not found", id: 99, principal: admin, req: &models.UpdateRequest{}, wantErr: ErrContractDetailsNotFound},
		{name: "unknown status", id: 3, principal: owner, req: &models.UpdateRequest{Status: ptr.Ptr("SIGNED")}, wantErr: ErrInvalidInput},
		{name: "payment day", id: 3, principal: owner, req: &models.UpdateRequest{PaymentDay: ptr.Ptr(32)}, wantErr: ErrInvalidInput},
		{name: "negative price", id: 3, principal: owner, req: &models.UpdateRequest{MonthlyPrice: ptr.Ptr(-1.0)}, wantErr: ErrInvalidInput},
		{name: "empty title", id: 3, principal: owner, req: &models.UpdateRequest{Title: ptr.Ptr("  ")}, wantErr: ErrInvalidInput},
		{
			name:      "end before start",
			id:        3,
			principal: owner,
			req:       &models.UpdateRequest{EndDate: ptr.Ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))},
			wantErr:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()

			_, err := svc.Update(context.Background(), tt.id, tt.principal, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, repo.saved)
			assert.Equal(t, 500.0, repo.details[3].MonthlyPrice)
		})
	}
}
