package http

import (
	"github.com/gin-gonic/gin"

	"roomserver/internal/shared"
)

const identityContextKey = "identity"

// Resolver extracts an authenticated identity from the incoming request.
// The core never implements the actual auth backend (session cookies, JWT,
// whatever the surrounding service uses) — callers inject this function
// when wiring the router, matching the specification's "Identity Context
// is an external collaborator" boundary.
type Resolver func(c *gin.Context) (shared.Identity, bool)

// RequireIdentity builds the Gin middleware that resolves a caller
// identity via resolve and stores it on the context, or fails the request
// with unauthorized if resolve reports no identity.
func RequireIdentity(resolve Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := resolve(c)
		if !ok {
			respondError(c, shared.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// CallerIdentity reads back the identity RequireIdentity attached to c.
func CallerIdentity(c *gin.Context) shared.Identity {
	v, _ := c.Get(identityContextKey)
	identity, _ := v.(shared.Identity)
	return identity
}
