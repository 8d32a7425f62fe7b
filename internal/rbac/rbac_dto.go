package rbac

type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// RoleInheritanceRow grants Child every permission of Parent.
type RoleInheritanceRow struct {
	Child  string
	Parent string
}

type Policy struct {
	Permissions []RolePermissionRow
	Inheritance []RoleInheritanceRow
}
