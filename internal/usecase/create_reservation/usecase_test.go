package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	nextID       int64
	createErr    error
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	r.ID = f.nextID
	f.reservations = append(f.reservations, r)
	return r, nil
}

func (f *fakeReservationRepo) GetActiveByStudentID(_ context.Context, studentID int64) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.StudentID != nil && *r.StudentID == studentID && r.IsActive() {
			return r, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) GetConfirmedOverlapping(_ context.Context, roomID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.RoomID != roomID || r.Status != domain.ReservationConfirmed {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Overlaps(start, end) {
			result = append(result, r)
		}
	}
	return result, nil
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

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func int64Ptr(v int64) *int64 { return &v }

type fixture struct {
	reservations *fakeReservationRepo
	rooms        *fakeRoomRepo
	tx           *fakeTxManager
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &fakeReservationRepo{},
		rooms: &fakeRoomRepo{rooms: map[int64]*domain.Room{
			1: {ID: 1, ResidenceID: 1, Title: "Room 1", PricePerMonth: 500, IsAvailable: true, OwnerID: int64Ptr(4)},
			2: {ID: 2, ResidenceID: 1, Title: "Room 2", PricePerMonth: 450, IsAvailable: false, OwnerID: int64Ptr(4)},
		}},
		tx: &fakeTxManager{},
	}
	f.uc = NewUseCase(f.reservations, f.rooms, f.tx, logger.NewNop())
	return f
}

var student = domain.Principal{UserID: 9, Role: domain.RoleStudent}

func TestUseCase_Execute_CreatesPending(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
	require.NotNil(t, resp.StudentID)
	assert.Equal(t, int64(9), *resp.StudentID)
}

func TestUseCase_Execute_StudentCannotBookForSomeoneElse(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StudentID: int64Ptr(77),
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), *resp.StudentID)
}

func TestUseCase_Execute_SuperAdmin(t *testing.T) {
	f := newFixture()
	admin := domain.Principal{UserID: 1, Role: domain.RoleSuperAdmin}

	resp, err := f.uc.Execute(context.Background(), &Request{
		Principal: admin,
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.StudentID)

	resp, err = f.uc.Execute(context.Background(), &Request{
		Principal: admin,
		RoomID:    1,
		StudentID: int64Ptr(12),
		StartDate: date("2024-05-01"),
		EndDate:   date("2024-06-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), *resp.StudentID)
}

func TestUseCase_Execute_OwnerForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		Principal: domain.Principal{UserID: 4, Role: domain.RoleOwner},
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.reservations.reservations)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero room", req: &Request{Principal: student, StartDate: date("2024-03-01"), EndDate: date("2024-04-01")}},
		{name: "missing start", req: &Request{Principal: student, RoomID: 1, EndDate: date("2024-04-01")}},
		{name: "start equals end", req: &Request{Principal: student, RoomID: 1, StartDate: date("2024-03-01"), EndDate: date("2024-03-01")}},
		{name: "start after end", req: &Request{Principal: student, RoomID: 1, StartDate: date("2024-04-01"), EndDate: date("2024-03-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.reservations.reservations)
		})
	}
}

func TestUseCase_Execute_RoomNotAvailable(t *testing.T) {
	for _, roomID := range []int64{2, 99} {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), &Request{
			Principal: student,
			RoomID:    roomID,
			StartDate: date("2024-03-01"),
			EndDate:   date("2024-04-01"),
		})

		assert.ErrorIs(t, err, ErrRoomNotAvailable)
	}
}

func TestUseCase_Execute_ActiveReservationExists(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.ReservationPending, domain.ReservationConfirmed} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			f.reservations.reservations = []*domain.Reservation{
				{ID: 50, RoomID: 3, StudentID: int64Ptr(9), StartDate: date("2025-01-01"), EndDate: date("2025-02-01"), Status: status},
			}

			_, err := f.uc.Execute(context.Background(), &Request{
				Principal: student,
				RoomID:    1,
				StartDate: date("2024-03-01"),
				EndDate:   date("2024-04-01"),
			})

			assert.ErrorIs(t, err, ErrActiveReservationExists)
			assert.Len(t, f.reservations.reservations, 1)
		})
	}
}

func TestUseCase_Execute_TerminalReservationDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.reservations.reservations = []*domain.Reservation{
		{ID: 50, RoomID: 1, StudentID: int64Ptr(9), StartDate: date("2024-03-01"), EndDate: date("2024-04-01"), Status: domain.ReservationRejected},
	}
	f.reservations.nextID = 50

	resp, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(51), resp.ID)
}

func TestUseCase_Execute_Overlap(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "start inside confirmed", start: "2024-03-05", end: "2024-03-15", wantErr: ErrDatesOverlap},
		{name: "end inside confirmed", start: "2024-02-20", end: "2024-03-05", wantErr: ErrDatesOverlap},
		{name: "contains confirmed", start: "2024-02-01", end: "2024-04-01", wantErr: ErrDatesOverlap},
		{name: "adjacent after", start: "2024-03-10", end: "2024-03-20"},
		{name: "adjacent before", start: "2024-02-20", end: "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.reservations.reservations = []*domain.Reservation{
				{ID: 1, RoomID: 1, StudentID: int64Ptr(20), StartDate: date("2024-03-01"), EndDate: date("2024-03-10"), Status: domain.ReservationConfirmed},
			}
			f.reservations.nextID = 1

			_, err := f.uc.Execute(context.Background(), &Request{
				Principal: student,
				RoomID:    1,
				StartDate: date(tt.start),
				EndDate:   date(tt.end),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, f.reservations.reservations, 1)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, f.reservations.reservations, 2)
		})
	}
}

func TestUseCase_Execute_PendingDoesNotBlockOverlap(t *testing.T) {
	f := newFixture()
	f.reservations.reservations = []*domain.Reservation{
		{ID: 1, RoomID: 1, StudentID: int64Ptr(20), StartDate: date("2024-03-01"), EndDate: date("2024-03-10"), Status: domain.ReservationPending},
	}
	f.reservations.nextID = 1

	_, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StartDate: date("2024-03-05"),
		EndDate:   date("2024-03-15"),
	})

	assert.NoError(t, err)
}

func TestUseCase_Execute_SerializationFailure(t *testing.T) {
	f := newFixture()
	f.tx.err = errors.Join(txmanager.ErrSerialization, errors.New("pq: could not serialize access"))

	_, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestUseCase_Execute_UniqueIndexRace(t *testing.T) {
	f := newFixture()
	f.reservations.createErr = reservationRepo.ErrActiveReservationExists

	_, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	assert.ErrorIs(t, err, ErrActiveReservationExists)
}

func TestUseCase_Execute_RoomDeletedBeforeInsert(t *testing.T) {
	f := newFixture()
	f.reservations.createErr = reservationRepo.ErrRoomNotFound

	_, err := f.uc.Execute(context.Background(), &Request{
		Principal: student,
		RoomID:    1,
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-04-01"),
	})

	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
}
