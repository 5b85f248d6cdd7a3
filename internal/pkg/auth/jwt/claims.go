/*
Package jwt issues and verifies the bearer tokens that identify forum users.

A valid token is the only proof of identity the forum trusts; handlers read the
acting user from the request context populated by IdentityExtractorMiddleware.
*/
package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims carried by an Agora identity token.
type Payload struct {
	// StandardClaims carries Exp, Iat and Iss.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the user's UUID.
	ID string `json:"id"`

	// Username is the display name at the time the token was issued.
	Username string `json:"username"`
}
