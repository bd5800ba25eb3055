package access_test

import (
	"testing"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/access"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAdminHoldsEveryCapability(t *testing.T) {
	caps := access.Capabilities(model.RoleAdmin)
	assert.Len(t, caps, 12)
	for _, c := range caps {
		assert.True(t, access.Can(model.RoleAdmin, c), c)
	}
}

func TestManagerCapabilities(t *testing.T) {
	assert.True(t, access.Can(model.RoleManager, access.DeleteSales))
	assert.True(t, access.Can(model.RoleManager, access.ManageInventory))
	assert.True(t, access.Can(model.RoleManager, access.ViewReports))
	assert.False(t, access.Can(model.RoleManager, access.ManageStaff))
	assert.False(t, access.Can(model.RoleManager, access.ManageBranches))
	assert.False(t, access.Can(model.RoleManager, access.ManageSettings))
	assert.False(t, access.Can(model.RoleManager, access.AllBranches))
}

func TestSellerCapabilities(t *testing.T) {
	assert.Equal(t,
		[]access.Capability{access.ViewInventory, access.Sell, access.ProcessReturns},
		access.Capabilities(model.RoleSeller))
	assert.False(t, access.Can(model.RoleSeller, access.DeleteSales))
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	assert.False(t, access.Can(model.Role("GUEST"), access.ViewInventory))
	assert.Empty(t, access.Capabilities(model.Role("")))
}

func TestScope(t *testing.T) {
	assert.Equal(t, "ban-1", access.Scope(model.RoleAdmin, "", "ban-1"))
	assert.Equal(t, "", access.Scope(model.RoleAdmin, "", ""))
	assert.Equal(t, "ut-1", access.Scope(model.RoleManager, "ut-1", "ban-1"))
	assert.Equal(t, "ut-1", access.Scope(model.RoleSeller, "ut-1", ""))
}

func TestPrincipal(t *testing.T) {
	admin := access.Principal{UserID: "u1", Role: model.RoleAdmin}
	seller := access.Principal{UserID: "u3", Role: model.RoleSeller, BranchID: "ut-1"}

	assert.True(t, admin.Sees("ban-1"))
	assert.Equal(t, "ban-1", admin.Scope("ban-1"))

	assert.True(t, seller.Sees("ut-1"))
	assert.False(t, seller.Sees("ban-1"))
	assert.Equal(t, "ut-1", seller.Scope("ban-1"))
	assert.True(t, seller.Can(access.Sell))
	assert.False(t, seller.Can(access.ManageExpenses))
}
