package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	lastFilter   domain.ReservationFilter
	views        []*domain.ReservationView
	updates      int
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	f.updates++
	f.reservations[id].Status = status
	return nil
}

func (f *fakeReservationRepo) ListViews(_ context.Context, filter domain.ReservationFilter) ([]*domain.ReservationView, error) {
	f.lastFilter = filter
	return f.views, nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func int64Ptr(v int64) *int64 { return &v }

func newTestService() (*Service, *fakeReservationRepo) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		7: {
			ID:        7,
			RoomID:    1,
			StudentID: int64Ptr(9),
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			Status:    domain.ReservationPending,
		},
	}}
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, Title: "Room 1", OwnerID: int64Ptr(4)},
	}}
	return NewService(reservations, rooms, fakeTxManager{}, logger.NewNop()), reservations
}

var (
	owner   = domain.Principal{UserID: 4, Role: domain.RoleOwner}
	student = domain.Principal{UserID: 9, Role: domain.RoleStudent}
	admin   = domain.Principal{UserID: 1, Role: domain.RoleSuperAdmin}
)

func TestService_Reject(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Reject(context.Background(), 7, owner)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	assert.Equal(t, "2024-03-01", resp.StartDate)

	// Повторное отклонение ничего не меняет
	resp, err = svc.Reject(context.Background(), 7, admin)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
	assert.Equal(t, 1, repo.updates)
}

func TestService_Reject_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.ReservationStatus
		id        int64
		principal domain.Principal
		wantErr   error
	}{
		{name: "student", status: domain.ReservationPending, id: 7, principal: student, wantErr: ErrAccessDenied},
		{name: "other owner", status: domain.ReservationPending, id: 7, principal: domain.Principal{UserID: 5, Role: domain.RoleOwner}, wantErr: ErrAccessDenied},
		{name: "not found", status: domain.ReservationPending, id: 99, principal: admin, wantErr: ErrReservationNotFound},
		{name: "confirmed", status: domain.ReservationConfirmed, id: 7, principal: owner, wantErr: ErrInvalidTransition},
		{name: "cancelled", status: domain.ReservationCancelled, id: 7, principal: owner, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			repo.reservations[7].Status = tt.status

			_, err := svc.Reject(context.Background(), tt.id, tt.principal)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, repo.updates)
		})
	}
}

func TestService_List_ScopesStudent(t *testing.T) {
	svc, repo := newTestService()
	repo.views = []*domain.ReservationView{
		{Reservation: *repo.reservations[7], StudentName: ptrTo("Sam Student")},
	}

	status := "PENDING"
	views, err := svc.List(context.Background(), &models.ListRequest{Principal: student, Status: &status})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Sam Student", *views[0].StudentName)
	require.NotNil(t, repo.lastFilter.StudentID)
	assert.Equal(t, int64(9), *repo.lastFilter.StudentID)
	assert.Equal(t, domain.ReservationPending, *repo.lastFilter.Status)
}

func TestService_List_OwnerSeesAll(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.List(context.Background(), &models.ListRequest{Principal: owner, RoomID: int64Ptr(1)})

	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.StudentID)
	assert.Nil(t, repo.lastFilter.OwnerID)
	assert.Equal(t, int64(1), *repo.lastFilter.RoomID)
}

func TestService_List_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()

	status := "UNKNOWN"
	_, err := svc.List(context.Background(), &models.ListRequest{Principal: owner, Status: &status})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListByStudent(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.ListByStudent(context.Background(), 9, student)
	require.NoError(t, err)
	assert.Equal(t, int64(9), *repo.lastFilter.StudentID)

	_, err = svc.ListByStudent(context.Background(), 10, student)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListByStudent(context.Background(), 9, owner)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListByStudent(context.Background(), 10, admin)
	assert.NoError(t, err)
}

func TestService_ListByOwner(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.ListByOwner(context.Background(), 4, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *repo.lastFilter.OwnerID)

	_, err = svc.ListByOwner(context.Background(), 5, owner)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListByOwner(context.Background(), 4, student)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListByOwner(context.Background(), 5, admin)
	assert.NoError(t, err)
}

func ptrTo(s string) *string { return &s }
