package domain_test

import (
	"context"
	"testing"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePermission_GlobalAdminOverridesCompanyRole(t *testing.T) {
	for _, role := range []domain.UserCompanyRole{domain.RoleReadOnly, domain.RoleRemoved} {
		assert.True(t, domain.EffectivePermission(domain.GlobalAdmin, role, domain.PermManageCompany),
			"global admin should hold every permission regardless of company role %s", role)
	}
}

func TestEffectivePermission_CompanyRoleTable(t *testing.T) {
	cases := []struct {
		role    domain.UserCompanyRole
		perm    domain.Permission
		granted bool
	}{
		{domain.RoleAdmin, domain.PermManageCompany, true},
		{domain.RoleMember, domain.PermPostEntries, true},
		{domain.RoleMember, domain.PermManageCompany, false},
		{domain.RoleReadOnly, domain.PermViewLedger, true},
		{domain.RoleReadOnly, domain.PermPostEntries, false},
		{domain.RoleRemoved, domain.PermViewLedger, false},
	}
	for _, tc := range cases {
		got := domain.EffectivePermission(domain.GlobalUser, tc.role, tc.perm)
		assert.Equal(t, tc.granted, got, "role=%s perm=%s", tc.role, tc.perm)
	}
}

func TestRequiredPermission(t *testing.T) {
	assert.Equal(t, domain.PermManageCompany, domain.RequiredPermission(domain.RoleAdmin))
	assert.Equal(t, domain.PermPostEntries, domain.RequiredPermission(domain.RoleMember))
	assert.Equal(t, domain.PermViewLedger, domain.RequiredPermission(domain.RoleReadOnly))
}

func TestGlobalRoleFromCtx(t *testing.T) {
	assert.Equal(t, domain.GlobalUser, domain.GlobalRoleFromCtx(context.Background()),
		"no claim resolves to a regular user")

	ctx := domain.WithGlobalRole(context.Background(), domain.GlobalAdmin)
	assert.Equal(t, domain.GlobalAdmin, domain.GlobalRoleFromCtx(ctx))

	ctx = domain.WithGlobalRole(context.Background(), domain.GlobalRole("SUPERUSER"))
	assert.Equal(t, domain.GlobalUser, domain.GlobalRoleFromCtx(ctx),
		"unknown claims never escalate")
}

func TestIsValidSubType(t *testing.T) {
	assert.True(t, domain.IsValidSubType(domain.Asset, domain.CurrentAsset))
	assert.True(t, domain.IsValidSubType(domain.Expense, domain.CostOfGoodsSold))
	assert.True(t, domain.IsValidSubType(domain.Revenue, ""), "empty sub-type is always valid")
	assert.False(t, domain.IsValidSubType(domain.Asset, domain.OperatingRevenue))
	assert.False(t, domain.IsValidSubType(domain.Liability, domain.FixedAsset))
}
