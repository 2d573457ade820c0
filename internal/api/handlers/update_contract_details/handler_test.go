package update_contract_details

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id int64, _ domain.Principal, req *models.UpdateRequest) (*models.ContractDetailsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ContractDetailsResponse{ID: id, Status: "READY"}, nil
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/contract_details/3", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"detailsId": "3"})
	return req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{UserID: 4, Role: domain.RoleOwner}))
}

func TestHandler_Handle_PartialUpdate(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(`{"deposit_amount": 1000, "end_date": "2024-06-30", "status": "READY"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Nil(t, svc.got.Title)
	assert.Nil(t, svc.got.MonthlyPrice)
	assert.Nil(t, svc.got.StartDate)
	assert.Equal(t, 1000.0, *svc.got.DepositAmount)
	assert.Equal(t, "2024-06-30", svc.got.EndDate.Format(domain.DateFormat))
	assert.Equal(t, "READY", *svc.got.Status)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "payment day out of range", body: `{"payment_day": 40}`, wantStatus: http.StatusBadRequest},
		{name: "negative price", body: `{"monthly_price": -1}`, wantStatus: http.StatusBadRequest},
		{name: "unknown status", body: `{"status": "SIGNED"}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"start_date": "2024/01/01"}`, wantStatus: http.StatusBadRequest},
		{name: "merged record invalid", body: `{"end_date": "2023-01-01"}`, err: contractdetails.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not owner", body: `{"title": "New"}`, err: contractdetails.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not found", body: `{"title": "New"}`, err: contractdetails.ErrContractDetailsNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, newRequest(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
