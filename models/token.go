package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued for the local API.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access. SignedString holds the compact serialized form
// that clients send in the Authorization header.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Client names the local API consumer the token was issued to.
	// It mirrors the "sub" claim.
	Client string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
