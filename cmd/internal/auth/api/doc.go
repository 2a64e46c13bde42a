// Package authapi exposes the HTTP authentication surface: registration,
// login, the current-user endpoint, and the session middleware that turns
// signed cookies into a request-scoped session.
//
// Sessions are stateless. The access cookie carries a short-lived JWT with
// an embedded user snapshot; the refresh cookie carries a long-lived JWT
// with only the subject id. The middleware renews an expired access token
// transparently from a valid refresh token and rolls both cookies forward.
package authapi
