// Package account holds user identity types and the multi-step
// registration form with its per-step validation rules.
package account

// Role is a marketplace role.
type Role string

// Marketplace roles.
const (
	RoleBuyer    Role = "buyer"
	RoleTraveler Role = "traveler"
)

// Token is the session grant returned by the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
}

// User is the authenticated profile from /api/auth/me.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}
