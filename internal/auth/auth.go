package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ISSUER  = "blogd"
	SUBJECT = "SESSION"
)

// SessionClaims binds a signed cookie value to a server side session row.
// The registered ID (jti) carries the session id.
type SessionClaims struct {
	UserID string `json:"userid"`
	jwt.RegisteredClaims
}

// SessionID returns the session the token refers to.
func (c *SessionClaims) SessionID() string {
	return c.ID
}

// CreateToken signs a session token with ES256. The token expires together
// with the session row at expiresAt.
func CreateToken(sessionID, userID string, expiresAt time.Time, privateKey *ecdsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", errors.New("private key is nil")
	}
	if sessionID == "" || userID == "" {
		return "", errors.New("session id and user id are required")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			ID:        sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", err
	}

	return signToken, nil
}

// VerifyToken checks the signature, expiry and issuer of tokenString.
func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	}, jwt.WithValidMethods([]string{"ES256"}), jwt.WithIssuer(ISSUER), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token or claims")
}
