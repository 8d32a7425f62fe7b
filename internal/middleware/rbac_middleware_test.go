package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll-ledger/internal/middleware"
	"go-payroll-ledger/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBACService struct {
	enforceFn func(req rbac.EnforceRequest) (bool, error)
}

func (f *fakeRBACService) Enforce(req rbac.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(svc middleware.RBACService, role string) *gin.Engine {
		r := gin.New()
		r.POST("/accruals",
			func(c *gin.Context) {
				if role != "" {
					c.Set("role", role)
				}
			},
			middleware.RBACAuthorize(svc, "ledger", "accrue"),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)
		return r
	}

	do := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/accruals", nil))
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) {
			assert.Equal(t, rbac.EnforceRequest{Role: "admin", Resource: "ledger", Action: "accrue"}, req)
			return true, nil
		}}

		assert.Equal(t, http.StatusNoContent, do(newRouter(svc, "admin")).Code)
	})

	t.Run("denied", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) {
			return false, nil
		}}

		w := do(newRouter(svc, "employee"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ledger:accrue")
	})

	t.Run("no role", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) {
			t.Fatal("enforce must not be called")
			return false, nil
		}}

		assert.Equal(t, http.StatusUnauthorized, do(newRouter(svc, "")).Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		svc := &fakeRBACService{enforceFn: func(req rbac.EnforceRequest) (bool, error) {
			return false, errors.New("boom")
		}}

		assert.Equal(t, http.StatusInternalServerError, do(newRouter(svc, "admin")).Code)
	})
}
