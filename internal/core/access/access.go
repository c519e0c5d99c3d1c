// Package access implements the authorization layer: resolving the acting
// principal from verified token claims and answering the two policy
// questions the system needs, exact role match and owner-or-admin.
//
// No state is held between calls; every check is a pure function of the
// principal and the request's target.
package access

import (
	"github.com/usermgmt/user-address-api/internal/core/domain"
)

// Principal is the authenticated identity for a single request.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// FromClaims builds a Principal from verified token claims. Numeric claims
// arrive as float64 after JSON decoding. Fails with ErrUnauthenticated when
// the claims are structurally unusable.
func FromClaims(claims map[string]any) (Principal, error) {
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return Principal{}, domain.ErrUnauthenticated
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email == "" || !domain.ValidRole(role) {
		return Principal{}, domain.ErrUnauthenticated
	}
	return Principal{UserID: int64(id), Email: email, Role: role}, nil
}

// RequireRole succeeds iff the principal holds exactly the given role.
func RequireRole(p Principal, role string) error {
	if p.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// RequireAnyRole succeeds iff the principal holds one of the given roles.
func RequireAnyRole(p Principal, roles ...string) error {
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// RequireOwnerOrAdmin succeeds iff the principal is an admin or owns the
// target resource.
func RequireOwnerOrAdmin(p Principal, ownerID int64) error {
	if p.IsAdmin() || p.UserID == ownerID {
		return nil
	}
	return domain.ErrForbidden
}
