// Package auth provides authentication for the portal API: HS256 JWT
// session tokens, bcrypt password hashing, and HTTP middleware that
// resolves a bearer token to an AuthContext carried on the request
// context. Role-gate wrappers (RequireAdmin, RequireSuperAdmin) build
// on the same context.
package auth
