// Package auth provides the credential primitives of the API: bcrypt
// password hashing and stateless HMAC-signed JWT access tokens.
package auth
