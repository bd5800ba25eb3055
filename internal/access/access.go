// Package access evaluates what a role may do. Every permission check in the
// HTTP layer and the services goes through Can, so the role table below is
// the only place that decides access.
package access

import (
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"
)

type Capability string

const (
	ViewDashboard   Capability = "view_dashboard"
	ViewInventory   Capability = "view_inventory"
	ManageInventory Capability = "manage_inventory"
	Sell            Capability = "sell"
	ProcessReturns  Capability = "process_returns"
	ManageExpenses  Capability = "manage_expenses"
	ViewReports     Capability = "view_reports"
	DeleteSales     Capability = "delete_sales"
	ManageStaff     Capability = "manage_staff"
	ManageBranches  Capability = "manage_branches"
	ManageSettings  Capability = "manage_settings"
	AllBranches     Capability = "all_branches"
)

var all = []Capability{
	ViewDashboard, ViewInventory, ManageInventory, Sell, ProcessReturns,
	ManageExpenses, ViewReports, DeleteSales, ManageStaff, ManageBranches,
	ManageSettings, AllBranches,
}

var table = map[model.Role]map[Capability]bool{
	model.RoleAdmin: set(all...),
	model.RoleManager: set(
		ViewDashboard, ViewInventory, ManageInventory, Sell, ProcessReturns,
		ManageExpenses, ViewReports, DeleteSales,
	),
	model.RoleSeller: set(ViewInventory, Sell, ProcessReturns),
}

func set(caps ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return m
}

// Can reports whether role holds capability. Unknown roles hold nothing.
func Can(role model.Role, capability Capability) bool {
	return table[role][capability]
}

// Capabilities lists the capabilities of role in a stable order.
func Capabilities(role model.Role) []Capability {
	out := make([]Capability, 0, len(all))
	for _, c := range all {
		if Can(role, c) {
			out = append(out, c)
		}
	}
	return out
}

// Scope resolves the branch a request operates on. Roles with AllBranches
// get what they asked for ("" = every branch); everyone else is pinned to
// their assigned branch regardless of the request.
func Scope(role model.Role, assignedBranchID, requestedBranchID string) string {
	if Can(role, AllBranches) {
		return requestedBranchID
	}
	return assignedBranchID
}

// Principal is the authenticated user a request acts for.
type Principal struct {
	UserID   string
	Username string
	Role     model.Role
	BranchID string
}

func (p Principal) Can(capability Capability) bool { return Can(p.Role, capability) }

// Scope pins requestedBranchID to what p may see.
func (p Principal) Scope(requestedBranchID string) string {
	return Scope(p.Role, p.BranchID, requestedBranchID)
}

// Sees reports whether records of branchID are visible to p.
func (p Principal) Sees(branchID string) bool {
	return p.Can(AllBranches) || p.BranchID == branchID
}
