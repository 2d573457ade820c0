package delete_contract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/contracts"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type fakeService struct {
	deleted int64
	err     error
}

func (f *fakeService) Delete(_ context.Context, contractID int64, _ domain.Principal) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = contractID
	return nil
}

func TestHandler_Handle(t *testing.T) {
	newRequest := func(withPrincipal bool) *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/contracts/5", nil)
		req = mux.SetURLVars(req, map[string]string{"contractId": "5"})
		if withPrincipal {
			req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{UserID: 1, Role: domain.RoleSuperAdmin}))
		}
		return req
	}

	t.Run("deleted", func(t *testing.T) {
		svc := &fakeService{}
		rec := httptest.NewRecorder()

		NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(true))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, int64(5), svc.deleted)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, newRequest(false))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not superadmin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeService{err: contracts.ErrAccessDenied}, logger.NewNop()).Handle(rec, newRequest(true))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeService{err: contracts.ErrContractNotFound}, logger.NewNop()).Handle(rec, newRequest(true))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
