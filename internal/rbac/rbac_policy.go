package rbac

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	ResourceEmployee = "employee"
	ResourceLedger   = "ledger"

	ActionRead     = "read"
	ActionCreate   = "create"
	ActionDelete   = "delete"
	ActionWithdraw = "withdraw"
	ActionAccrue   = "accrue"
)

// DefaultPolicy lets employees read and withdraw from their own ledger and
// gives admins everything on top.
func DefaultPolicy() Policy {
	return Policy{
		Permissions: []RolePermissionRow{
			{Role: RoleEmployee, Resource: ResourceLedger, Action: ActionRead},
			{Role: RoleEmployee, Resource: ResourceLedger, Action: ActionWithdraw},
			{Role: RoleAdmin, Resource: ResourceEmployee, Action: ActionRead},
			{Role: RoleAdmin, Resource: ResourceEmployee, Action: ActionCreate},
			{Role: RoleAdmin, Resource: ResourceEmployee, Action: ActionDelete},
			{Role: RoleAdmin, Resource: ResourceLedger, Action: ActionAccrue},
		},
		Inheritance: []RoleInheritanceRow{
			{Child: RoleAdmin, Parent: RoleEmployee},
		},
	}
}
