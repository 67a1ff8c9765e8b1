package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload is the input for minting a staff token.
type AccessTokenPayload struct {
	Username string
	JTI      string
}

// AccessTokenClaims is the JWT claim set carried by staff sessions. The shop
// has a single operator credential, so the claims stay minimal.
type AccessTokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
