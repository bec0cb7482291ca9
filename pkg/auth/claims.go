package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Subject string
	JTI     string
}

// AccessTokenClaims represents the typed JWT accepted by the API. The
// subject is the issuer's external identity; it maps to a platform
// account at request time, never to an internal id directly.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}
