package v1

// Role is the administrative privilege level resolved for the current
// session. The server re-validates authoritatively; the client uses it only
// for navigation gating.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
)

// ParseRole maps a wire value onto a known role. Unknown values report false
// so callers can treat malformed payloads as an unresolved role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleManager:
		return Role(s), true
	}
	return "", false
}

const DefaultTokenType = "Bearer"

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"` // seconds, informational
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RoleResponse struct {
	Role string `json:"role"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
