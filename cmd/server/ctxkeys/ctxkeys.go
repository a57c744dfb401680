// Package ctxkeys holds the request-local keys shared between middlewares
// and handlers.
package ctxkeys

// PrincipalKey is the Locals key under which the principal middleware stores
// the resolved *auth.User for the current request.
const PrincipalKey = "principal"
