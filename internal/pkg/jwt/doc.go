// Package jwt mints and verifies the session tokens handed out after a
// successful email verification.
//
// Tokens are HS256-signed, bind the verified email, and are valid until their
// expiry; there is no revocation list. Context helpers carry verified claims
// from the authentication middleware to handlers.
package jwt
