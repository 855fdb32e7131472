// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity represents the authenticated user's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access user information without depending on Gin.
type Identity interface {
	// UserID returns the authenticated user's database ID.
	UserID() int64
	// GoogleID returns the Google account subject.
	GoogleID() string
	// Email returns the user's email address.
	Email() string
	// Tier returns the subscription tier ("free" or "paid").
	Tier() string
	// IsPaid reports whether the user is on the paid tier.
	IsPaid() bool
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        int64
	googleID      string
	email         string
	tier          string
	authenticated bool
}

func (i *identity) UserID() int64    { return i.userID }
func (i *identity) GoogleID() string { return i.googleID }
func (i *identity) Email() string    { return i.email }
func (i *identity) Tier() string     { return i.tier }

func (i *identity) IsPaid() bool {
	return i.tier == "paid"
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// NewIdentity builds an authenticated Identity; the auth middleware stores it
// under ContextIdentityKey.
func NewIdentity(userID int64, googleID, email, tier string) Identity {
	return &identity{
		userID:        userID,
		googleID:      googleID,
		email:         email,
		tier:          tier,
		authenticated: true,
	}
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return &identity{authenticated: false}
	}

	id, ok := value.(Identity)
	if !ok {
		return &identity{authenticated: false}
	}

	return id
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
