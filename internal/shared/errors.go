package shared

import "github.com/V4Varunstar/aura-inventory-sub002/internal/platform/httpx"

// Domain errors share identity with the HTTP sentinels so RespondError can map them.
var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = httpx.ErrNotFound
	// ErrValidation marks input rejected before reaching the store.
	ErrValidation = httpx.ErrValidation
	// ErrTenantRequired occurs when a request carries no company scope.
	ErrTenantRequired = httpx.ErrTenantRequired
	// ErrUnavailable marks a backing store that could not be read.
	ErrUnavailable = httpx.ErrUnavailable
)
