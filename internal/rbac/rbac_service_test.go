package rbac

import (
	"testing"

	"go-payroll-ledger/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc := NewService(enforcer)
	assert.NoError(t, svc.LoadPolicy(DefaultPolicy()))
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		req     EnforceRequest
		allowed bool
	}{
		{"employee reads ledger", EnforceRequest{RoleEmployee, ResourceLedger, ActionRead}, true},
		{"employee withdraws", EnforceRequest{RoleEmployee, ResourceLedger, ActionWithdraw}, true},
		{"employee cannot accrue", EnforceRequest{RoleEmployee, ResourceLedger, ActionAccrue}, false},
		{"employee cannot create employees", EnforceRequest{RoleEmployee, ResourceEmployee, ActionCreate}, false},
		{"admin inherits withdraw", EnforceRequest{RoleAdmin, ResourceLedger, ActionWithdraw}, true},
		{"admin accrues", EnforceRequest{RoleAdmin, ResourceLedger, ActionAccrue}, true},
		{"admin deletes employees", EnforceRequest{RoleAdmin, ResourceEmployee, ActionDelete}, true},
		{"unknown role", EnforceRequest{"auditor", ResourceLedger, ActionRead}, false},
		{"missing role", EnforceRequest{"", ResourceLedger, ActionRead}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.req)
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestRBACService_LoadPolicyReplacesRules(t *testing.T) {
	svc := newTestService(t)

	err := svc.LoadPolicy(Policy{
		Permissions: []RolePermissionRow{{Role: RoleEmployee, Resource: ResourceLedger, Action: ActionRead}},
	})
	assert.NoError(t, err)

	allowed, err := svc.Enforce(EnforceRequest{RoleAdmin, ResourceLedger, ActionAccrue})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(EnforceRequest{RoleEmployee, ResourceLedger, ActionRead})
	assert.NoError(t, err)
	assert.True(t, allowed)
}
