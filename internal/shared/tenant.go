package shared

import (
	"context"
	"strings"
)

// Tenant scopes every read and write to a single company.
type Tenant struct {
	CompanyID string
	// ActorID identifies the caller for audit purposes; may be empty.
	ActorID string
}

// NewTenant trims and builds a Tenant.
func NewTenant(companyID, actorID string) Tenant {
	return Tenant{CompanyID: strings.TrimSpace(companyID), ActorID: strings.TrimSpace(actorID)}
}

// Valid reports whether the tenant carries a company id.
func (t Tenant) Valid() bool {
	return t.CompanyID != ""
}

type tenantContextKey struct{}

// ContextWithTenant stores the tenant in context.
func ContextWithTenant(ctx context.Context, tenant Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenant)
}

// TenantFromContext extracts the tenant stored by the HTTP middleware.
func TenantFromContext(ctx context.Context) (Tenant, bool) {
	tenant, ok := ctx.Value(tenantContextKey{}).(Tenant)
	if !ok || !tenant.Valid() {
		return Tenant{}, false
	}
	return tenant, true
}
