package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReservation_Overlaps(t *testing.T) {
	existing := &Reservation{
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-10"),
		Status:    ReservationConfirmed,
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "start inside existing", start: "2024-03-05", end: "2024-03-15", want: true},
		{name: "end inside existing", start: "2024-02-20", end: "2024-03-02", want: true},
		{name: "contains existing", start: "2024-02-01", end: "2024-04-01", want: true},
		{name: "inside existing", start: "2024-03-02", end: "2024-03-04", want: true},
		{name: "same range", start: "2024-03-01", end: "2024-03-10", want: true},
		{name: "adjacent after (end is exclusive)", start: "2024-03-10", end: "2024-03-20", want: false},
		{name: "adjacent before", start: "2024-02-20", end: "2024-03-01", want: false},
		{name: "far before", start: "2024-01-01", end: "2024-01-15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := existing.Overlaps(date(tt.start), date(tt.end))
			assert.Equal(t, tt.want, got)

			// Пересечение симметрично
			other := &Reservation{StartDate: date(tt.start), EndDate: date(tt.end)}
			assert.Equal(t, tt.want, other.Overlaps(existing.StartDate, existing.EndDate))
		})
	}
}

func TestReservation_Transitions(t *testing.T) {
	tests := []struct {
		status      ReservationStatus
		active      bool
		terminal    bool
		confirmable bool
		rejectable  bool
	}{
		{ReservationPending, true, false, true, true},
		{ReservationConfirmed, true, false, true, false},
		{ReservationRejected, false, true, false, true},
		{ReservationCancelled, false, true, false, false},
		{ReservationCompleted, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}
			assert.Equal(t, tt.active, r.IsActive())
			assert.Equal(t, tt.terminal, r.IsTerminal())
			assert.Equal(t, tt.confirmable, r.CanBeConfirmed())
			assert.Equal(t, tt.rejectable, r.CanBeRejected())
		})
	}
}

func TestParseReservationStatus(t *testing.T) {
	s, err := ParseReservationStatus("CONFIRMED")
	assert.NoError(t, err)
	assert.Equal(t, ReservationConfirmed, s)

	_, err = ParseReservationStatus("confirmed")
	assert.ErrorIs(t, err, ErrInvalidReservationStatus)
}

func TestContractDetailsPatch_Apply(t *testing.T) {
	deposit := 500.0
	details := &ContractDetails{
		Title:         "Rental contract - Room 1",
		MonthlyPrice:  500,
		DepositAmount: &deposit,
		Status:        ContractDetailsDraft,
	}

	newDeposit := 1000.0
	ready := ContractDetailsReady
	patch := &ContractDetailsPatch{DepositAmount: &newDeposit, Status: &ready}
	assert.False(t, patch.IsEmpty())

	patch.Apply(details)

	assert.Equal(t, "Rental contract - Room 1", details.Title)
	assert.Equal(t, 500.0, details.MonthlyPrice)
	assert.Equal(t, 1000.0, *details.DepositAmount)
	assert.Equal(t, ContractDetailsReady, details.Status)
	assert.True(t, (&ContractDetailsPatch{}).IsEmpty())
}

func TestDocumentFilename(t *testing.T) {
	name := DocumentFilename(7, 3)
	assert.Equal(t, "contract_reservation_7_details_3.pdf", name)
	assert.Equal(t, "/generated_contracts/contract_reservation_7_details_3.pdf", DocumentURL(name))

	url := DocumentURL(name)
	c := &Contract{DocumentURL: &url}
	assert.Equal(t, name, c.Filename())
	assert.Equal(t, "", (&Contract{}).Filename())
}
