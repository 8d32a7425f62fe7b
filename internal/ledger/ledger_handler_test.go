package ledger_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	employeeerrors "go-payroll-ledger/internal/employee/errors"
	"go-payroll-ledger/internal/ledger"
	ledgererrors "go-payroll-ledger/internal/ledger/errors"
	"go-payroll-ledger/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLedgerService struct {
	addEmployeeFn      func(ctx context.Context, req ledger.CreateEmployeeRequest) (ledger.EmployeeResponse, error)
	listEmployeesFn    func(ctx context.Context) ([]ledger.EmployeeWithHistoryResponse, error)
	findByEmailFn      func(ctx context.Context, email string) (*ledger.EmployeeResponse, error)
	removeByEmailFn    func(ctx context.Context, email string) (bool, error)
	deleteHistoryForFn func(ctx context.Context, employeeID string) (int64, error)
	accrueAllFn        func(ctx context.Context) (ledger.AccrualReport, error)
	applyDeltaFn       func(ctx context.Context, employeeID string, amount decimal.Decimal, description string) (ledger.BalanceEntryResponse, error)
	withdrawFn         func(ctx context.Context, employeeID string, amount decimal.Decimal) (ledger.WithdrawResult, error)
	getStatementFn     func(ctx context.Context, employeeID string) (ledger.StatementResponse, error)
}

func (f *fakeLedgerService) AddEmployee(ctx context.Context, req ledger.CreateEmployeeRequest) (ledger.EmployeeResponse, error) {
	return f.addEmployeeFn(ctx, req)
}
func (f *fakeLedgerService) ListEmployees(ctx context.Context) ([]ledger.EmployeeWithHistoryResponse, error) {
	return f.listEmployeesFn(ctx)
}
func (f *fakeLedgerService) FindByEmail(ctx context.Context, email string) (*ledger.EmployeeResponse, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeLedgerService) RemoveByEmail(ctx context.Context, email string) (bool, error) {
	return f.removeByEmailFn(ctx, email)
}
func (f *fakeLedgerService) DeleteHistoryFor(ctx context.Context, employeeID string) (int64, error) {
	return f.deleteHistoryForFn(ctx, employeeID)
}
func (f *fakeLedgerService) AccrueAll(ctx context.Context) (ledger.AccrualReport, error) {
	return f.accrueAllFn(ctx)
}
func (f *fakeLedgerService) ApplyDelta(ctx context.Context, employeeID string, amount decimal.Decimal, description string) (ledger.BalanceEntryResponse, error) {
	return f.applyDeltaFn(ctx, employeeID, amount, description)
}
func (f *fakeLedgerService) Withdraw(ctx context.Context, employeeID string, amount decimal.Decimal) (ledger.WithdrawResult, error) {
	return f.withdrawFn(ctx, employeeID, amount)
}
func (f *fakeLedgerService) GetStatement(ctx context.Context, employeeID string) (ledger.StatementResponse, error) {
	return f.getStatementFn(ctx, employeeID)
}

type fakeTrigger struct {
	triggerFn func(ctx context.Context) (ledger.AccrualReport, error)
}

func (f *fakeTrigger) TriggerNow(ctx context.Context) (ledger.AccrualReport, error) {
	return f.triggerFn(ctx)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func asEmployee(c *gin.Context, employeeID string) {
	c.Set("user_id", "user-"+employeeID)
	c.Set("employee_id", employeeID)
	c.Set("role", "employee")
}

func asAdmin(c *gin.Context) {
	c.Set("user_id", "admin-1")
	c.Set("role", "admin")
}

func TestLedgerHandler_AddEmployee(t *testing.T) {
	apperror.Init()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLedgerService{
			addEmployeeFn: func(ctx context.Context, req ledger.CreateEmployeeRequest) (ledger.EmployeeResponse, error) {
				assert.Equal(t, "monthly", req.EmployeeType)
				assert.True(t, req.BaseSalary.Equal(decimal.NewFromInt(3000)))
				return ledger.EmployeeResponse{ID: uuid.NewString(), Email: req.Email}, nil
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPost, "/employees",
			`{"name":"Jane","email":"jane@example.com","employee_type":"monthly","base_salary":3000,"start_date":"2024-06-01","balance":"0"}`)
		asAdmin(c)

		h.AddEmployee(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "jane@example.com")
	})

	t.Run("validation error", func(t *testing.T) {
		h := ledger.NewHandler(&fakeLedgerService{}, nil)
		c, w := newTestContext(http.MethodPost, "/employees",
			`{"name":"Jane","email":"jane@example.com","employee_type":"hourly","start_date":"2024-06-01"}`)
		asAdmin(c)

		h.AddEmployee(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Employee Type is invalid")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &fakeLedgerService{
			addEmployeeFn: func(ctx context.Context, req ledger.CreateEmployeeRequest) (ledger.EmployeeResponse, error) {
				return ledger.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPost, "/employees",
			`{"name":"Jane","email":"jane@example.com","employee_type":"daily","daily_rate":100,"start_date":"2024-06-01"}`)
		asAdmin(c)

		h.AddEmployee(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestLedgerHandler_ListEmployees(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeLedgerService{
			listEmployeesFn: func(ctx context.Context) ([]ledger.EmployeeWithHistoryResponse, error) {
				return []ledger.EmployeeWithHistoryResponse{
					{
						EmployeeResponse: ledger.EmployeeResponse{ID: id},
						History:          []ledger.BalanceEntryResponse{{Description: ledger.DescriptionInitial}},
					},
				}, nil
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/employees", "")
		asAdmin(c)

		h.ListEmployees(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id)
		assert.Contains(t, w.Body.String(), `"history"`)
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		svc := &fakeLedgerService{
			listEmployeesFn: func(ctx context.Context) ([]ledger.EmployeeWithHistoryResponse, error) {
				return nil, errors.New("pq: connection refused")
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/employees", "")
		asAdmin(c)

		h.ListEmployees(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestLedgerHandler_FindByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeLedgerService{
			findByEmailFn: func(ctx context.Context, email string) (*ledger.EmployeeResponse, error) {
				assert.Equal(t, "a@example.com", email)
				return &ledger.EmployeeResponse{Email: email}, nil
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/employees/lookup?email=a@example.com", "")

		h.FindByEmail(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeLedgerService{
			findByEmailFn: func(ctx context.Context, email string) (*ledger.EmployeeResponse, error) {
				return nil, nil
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodGet, "/employees/lookup?email=x@example.com", "")

		h.FindByEmail(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLedgerHandler_RemoveByEmail(t *testing.T) {
	svc := &fakeLedgerService{
		removeByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return email == "a@example.com", nil
		},
	}
	h := ledger.NewHandler(svc, nil)

	c, w := newTestContext(http.MethodDelete, "/employees?email=a@example.com", "")
	h.RemoveByEmail(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":true`)

	c, w = newTestContext(http.MethodDelete, "/employees?email=b@example.com", "")
	h.RemoveByEmail(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":false`)
}

func TestLedgerHandler_DeleteHistory(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeLedgerService{
		deleteHistoryForFn: func(ctx context.Context, employeeID string) (int64, error) {
			assert.Equal(t, id, employeeID)
			return 3, nil
		},
	}

	h := ledger.NewHandler(svc, nil)
	c, w := newTestContext(http.MethodDelete, "/employees/"+id+"/history", "")
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.DeleteHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":3`)
}

func TestLedgerHandler_Withdraw(t *testing.T) {
	employeeID := uuid.NewString()
	body := `{"employee_id":"` + employeeID + `","amount":"100"}`

	tests := []struct {
		name       string
		result     ledger.WithdrawResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{"success", ledger.WithdrawResult{Success: true}, nil, http.StatusOK, `"success":true`},
		{"insufficient", ledger.WithdrawResult{Message: "Insufficient balance."}, nil, http.StatusBadRequest, apperror.CodeInsufficientBalance},
		{"unknown user", ledger.WithdrawResult{Message: "User not found."}, nil, http.StatusNotFound, "User not found."},
		{"system error", ledger.WithdrawResult{}, errors.New("tx failed"), http.StatusInternalServerError, apperror.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeLedgerService{
				withdrawFn: func(ctx context.Context, id string, amount decimal.Decimal) (ledger.WithdrawResult, error) {
					assert.Equal(t, employeeID, id)
					assert.True(t, amount.Equal(decimal.NewFromInt(100)))
					return tt.result, tt.err
				},
			}

			h := ledger.NewHandler(svc, nil)
			c, w := newTestContext(http.MethodPost, "/ledger/withdraw", body)
			asEmployee(c, employeeID)

			h.Withdraw(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}

	t.Run("someone else's balance", func(t *testing.T) {
		h := ledger.NewHandler(&fakeLedgerService{}, nil)
		c, w := newTestContext(http.MethodPost, "/ledger/withdraw", body)
		asEmployee(c, uuid.NewString())

		h.Withdraw(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin may withdraw for anyone", func(t *testing.T) {
		svc := &fakeLedgerService{
			withdrawFn: func(ctx context.Context, id string, amount decimal.Decimal) (ledger.WithdrawResult, error) {
				return ledger.WithdrawResult{Success: true}, nil
			},
		}
		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPost, "/ledger/withdraw", body)
		asAdmin(c)

		h.Withdraw(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := ledger.NewHandler(&fakeLedgerService{}, nil)
		c, w := newTestContext(http.MethodPost, "/ledger/withdraw", `{"employee_id":"nope"}`)
		asAdmin(c)

		h.Withdraw(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLedgerHandler_TriggerAccrual(t *testing.T) {
	t.Run("uses the trigger when present", func(t *testing.T) {
		trigger := &fakeTrigger{
			triggerFn: func(ctx context.Context) (ledger.AccrualReport, error) {
				return ledger.AccrualReport{Processed: 2, Succeeded: 2, Total: decimal.NewFromInt(300)}, nil
			},
		}

		h := ledger.NewHandler(&fakeLedgerService{}, trigger)
		c, w := newTestContext(http.MethodPost, "/ledger/accruals", "")
		asAdmin(c)

		h.TriggerAccrual(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"processed":2`)
	})

	t.Run("falls back to the service", func(t *testing.T) {
		svc := &fakeLedgerService{
			accrueAllFn: func(ctx context.Context) (ledger.AccrualReport, error) {
				return ledger.AccrualReport{Processed: 1, Succeeded: 1}, nil
			},
		}

		h := ledger.NewHandler(svc, nil)
		c, w := newTestContext(http.MethodPost, "/ledger/accruals", "")
		asAdmin(c)

		h.TriggerAccrual(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("partial failure reports failed employees", func(t *testing.T) {
		failedID := uuid.NewString()
		trigger := &fakeTrigger{
			triggerFn: func(ctx context.Context) (ledger.AccrualReport, error) {
				batchErr := &ledgererrors.PartialBatchError{}
				batchErr.Add(failedID, errors.New("timeout"))
				return ledger.AccrualReport{Processed: 2, Succeeded: 1, Failures: batchErr.Failures}, batchErr
			},
		}

		h := ledger.NewHandler(&fakeLedgerService{}, trigger)
		c, w := newTestContext(http.MethodPost, "/ledger/accruals", "")
		asAdmin(c)

		h.TriggerAccrual(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodePartialBatchFailure)
		assert.Contains(t, w.Body.String(), failedID)
	})

	t.Run("run already in progress", func(t *testing.T) {
		trigger := &fakeTrigger{
			triggerFn: func(ctx context.Context) (ledger.AccrualReport, error) {
				return ledger.AccrualReport{}, ledgererrors.ErrAccrualInProgress
			},
		}

		h := ledger.NewHandler(&fakeLedgerService{}, trigger)
		c, w := newTestContext(http.MethodPost, "/ledger/accruals", "")
		asAdmin(c)

		h.TriggerAccrual(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLedgerHandler_Statement(t *testing.T) {
	employeeID := uuid.NewString()
	stmt := ledger.StatementResponse{
		Employee:    ledger.EmployeeResponse{ID: employeeID, Name: "Jane", Balance: decimal.NewFromInt(10)},
		Entries:     []ledger.BalanceEntryResponse{{Amount: decimal.NewFromInt(10), Description: ledger.DescriptionInitial, Date: time.Now()}},
		LedgerSum:   decimal.NewFromInt(10),
		Consistent:  true,
		GeneratedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	svc := &fakeLedgerService{
		getStatementFn: func(ctx context.Context, id string) (ledger.StatementResponse, error) {
			if id != employeeID {
				return ledger.StatementResponse{}, employeeerrors.ErrEmployeeNotFound
			}
			return stmt, nil
		},
	}
	h := ledger.NewHandler(svc, nil)

	t.Run("json for the owner", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/employees/"+employeeID+"/statement", "")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		asEmployee(c, employeeID)

		h.GetStatement(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"consistent":true`)
	})

	t.Run("forbidden for another employee", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/employees/"+employeeID+"/statement", "")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		asEmployee(c, uuid.NewString())

		h.GetStatement(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("pdf download", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/employees/"+employeeID+"/statement.pdf", "")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		asAdmin(c)

		h.DownloadStatement(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "statement-"+employeeID+"-20240615.pdf")
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	})

	t.Run("unknown employee", func(t *testing.T) {
		other := uuid.NewString()
		c, w := newTestContext(http.MethodGet, "/employees/"+other+"/statement", "")
		c.Params = gin.Params{{Key: "id", Value: other}}
		asAdmin(c)

		h.GetStatement(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLedgerHandler_EmployeeListPage(t *testing.T) {
	svc := &fakeLedgerService{
		listEmployeesFn: func(ctx context.Context) ([]ledger.EmployeeWithHistoryResponse, error) {
			return []ledger.EmployeeWithHistoryResponse{
				{
					EmployeeResponse: ledger.EmployeeResponse{
						ID:           uuid.NewString(),
						Name:         "Jane <script>",
						Email:        "jane@example.com",
						EmployeeType: "daily",
						Balance:      decimal.RequireFromString("12.5"),
					},
					History: []ledger.BalanceEntryResponse{
						{Amount: decimal.RequireFromString("12.5"), Description: ledger.DescriptionInitial, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
					},
				},
			}, nil
		},
	}

	h := ledger.NewHandler(svc, nil)
	c, w := newTestContext(http.MethodGet, "/user", "")
	asAdmin(c)

	h.EmployeeListPage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "jane@example.com")
	assert.Contains(t, w.Body.String(), "12.50")
	assert.Contains(t, w.Body.String(), "Jane &lt;script&gt;")
}
