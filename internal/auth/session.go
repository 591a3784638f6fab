// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// historyScope marks a token as granting access to the match history view.
const historyScope = "history"

var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenTTL is how long a history session token stays valid.
	tokenTTL time.Duration
)

// Init generates a fresh ed25519 key pair at runtime. Tokens therefore do
// not survive a process restart, which is fine for a history-view session.
func Init() error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("generating ed25519 key pair: %w", err)
	}

	tokenTTL = 12 * time.Hour
	if raw := os.Getenv("TOKEN_EXPIRE_TIME"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parsing TOKEN_EXPIRE_TIME: %w", err)
		}
		tokenTTL = d
	}
	return nil
}

// CreateHistoryToken mints a signed token granting history access.
func CreateHistoryToken() (string, error) {
	claims := jwt.MapClaims{
		"scope": historyScope,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// VerifyHistoryToken checks signature, expiry and scope.
func VerifyHistoryToken(tokenString string) error {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return fmt.Errorf("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("invalid jwt claims")
	}
	if scope, _ := claims["scope"].(string); scope != historyScope {
		return fmt.Errorf("token missing history scope")
	}
	return nil
}
