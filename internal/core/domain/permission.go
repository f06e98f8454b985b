package domain

import "context"

// GlobalRole is a user's role across the whole installation, independent of
// any company membership.
type GlobalRole string

const (
	GlobalAdmin GlobalRole = "GLOBAL_ADMIN"
	GlobalUser  GlobalRole = "GLOBAL_USER"
)

// Permission enumerates the operations gated per company.
type Permission string

const (
	PermViewLedger     Permission = "VIEW_LEDGER"
	PermPostEntries    Permission = "POST_ENTRIES"
	PermManageAccounts Permission = "MANAGE_ACCOUNTS"
	PermManageCompany  Permission = "MANAGE_COMPANY"
)

// companyRolePermissions is the closed lookup table from company role to
// granted permissions. No runtime string dispatch; extend the table to extend
// the model.
var companyRolePermissions = map[UserCompanyRole]map[Permission]bool{
	RoleAdmin: {
		PermViewLedger:     true,
		PermPostEntries:    true,
		PermManageAccounts: true,
		PermManageCompany:  true,
	},
	RoleMember: {
		PermViewLedger:     true,
		PermPostEntries:    true,
		PermManageAccounts: true,
	},
	RoleReadOnly: {
		PermViewLedger: true,
	},
	RoleRemoved: {},
}

// EffectivePermission resolves whether a user holds a permission in a company,
// merging the global role with the company role. A global admin holds every
// permission; otherwise the company role table decides.
func EffectivePermission(global GlobalRole, company UserCompanyRole, perm Permission) bool {
	if global == GlobalAdmin {
		return true
	}
	return companyRolePermissions[company][perm]
}

// RequiredPermission maps a minimum company role to the permission that gates
// it, so role checks resolve through the same merge table as everything else.
func RequiredPermission(required UserCompanyRole) Permission {
	switch required {
	case RoleAdmin:
		return PermManageCompany
	case RoleMember:
		return PermPostEntries
	default:
		return PermViewLedger
	}
}

type globalRoleCtxKey struct{}

// WithGlobalRole returns a context carrying the caller's global role, as
// resolved from the authenticated token.
func WithGlobalRole(ctx context.Context, role GlobalRole) context.Context {
	return context.WithValue(ctx, globalRoleCtxKey{}, role)
}

// GlobalRoleFromCtx extracts the caller's global role. Anything other than an
// explicit GLOBAL_ADMIN claim resolves to a regular user.
func GlobalRoleFromCtx(ctx context.Context) GlobalRole {
	if role, ok := ctx.Value(globalRoleCtxKey{}).(GlobalRole); ok && role == GlobalAdmin {
		return GlobalAdmin
	}
	return GlobalUser
}
