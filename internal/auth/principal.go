package auth

import (
	"github.com/labstack/echo/v4"

	"bigbrother/internal/model"
)

// InternalServiceLabel identifies server-to-server callers.
const InternalServiceLabel = "internal-service"

// principalKey is the Echo context key the gate stores the principal under.
const principalKey = "auth.principal"

// Principal is the identity attached to a request after authentication.
// Exactly one of User or Internal is set.
type Principal struct {
	User     *model.User
	Internal bool
}

// Label returns the identity string for logging.
func (p *Principal) Label() string {
	if p.Internal {
		return InternalServiceLabel
	}
	return p.User.Username
}

// NewEndUserPrincipal builds a principal for an authenticated end user.
func NewEndUserPrincipal(user *model.User) *Principal {
	return &Principal{User: user}
}

// NewInternalPrincipal builds a principal for the internal service.
func NewInternalPrincipal() *Principal {
	return &Principal{Internal: true}
}

// SetPrincipal attaches a principal to the request context.
func SetPrincipal(c echo.Context, p *Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the request's principal, or nil if the request is
// unauthenticated.
func GetPrincipal(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}
