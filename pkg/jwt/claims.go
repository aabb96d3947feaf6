package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the subset of the bearer token payload the client cares
// about. The token is issued and verified by the remote service; the client
// only inspects it for logging and display.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// InspectToken decodes the token payload without verifying the signature.
// The client holds no signing key and never enforces expiry locally: a 401
// from the remote service is the only expiry signal.
func InspectToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed session token: %w", err)
	}

	return claims, nil
}
