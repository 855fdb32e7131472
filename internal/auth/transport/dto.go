// Package transport defines request/response DTOs for the auth module.
package transport

// Userinfo is the verified subset of the Google userinfo response.
type Userinfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
}

// MeResponse describes the authenticated account.
type MeResponse struct {
	ID       int64  `json:"id"`
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	Tier     string `json:"tier"`
}
