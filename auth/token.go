package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tradewire/botvault/validation"
)

// DefaultTokenTTL is the token lifetime used when the service is
// constructed without an explicit one.
const DefaultTokenTTL = 24 * time.Hour

// Claims carries the identity attached to a bearer token: the account
// id as the registered subject plus an optional wallet address.
type Claims struct {
	WalletAddress string `json:"wallet_address,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
// It is stateless: validity is entirely a function of the signature and
// the embedded expiry, no session store is consulted and revocation
// before natural expiry is not supported.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a token service with the given signing secret.
// A zero or negative lifetime falls back to DefaultTokenTTL.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, newError("signing secret cannot be empty", nil)
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenTTL
	}

	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}, nil
}

// Issue signs a token for the given claims.
// The subject is required; a non-empty wallet address must be a valid
// EVM address. The embedded expiry is always computed from the service
// lifetime at issuance time - a caller-supplied ExpiresAt is overwritten.
func (s *TokenService) Issue(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", newError("token claims must include a subject", nil)
	}
	if claims.WalletAddress != "" {
		if err := validation.ValidateWalletAddress(claims.WalletAddress); err != nil {
			return "", newError("invalid wallet address claim", err)
		}
	}

	now := time.Now()

	// Срок действия всегда вычисляется из lifetime сервиса, даже если
	// вызывающая сторона заполнила ExpiresAt самостоятельно
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.lifetime))
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ID = uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", newError("failed to sign token", err)
	}

	return signed, nil
}

// Verify validates a bearer token and returns its claims.
// Malformed tokens, wrong signatures, expired tokens, and payloads
// failing schema validation all surface as *Error; errors.Is still
// reaches the golang-jwt sentinels through the wrapped cause.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC подпись: токен с alg=none или RS256 отклоняется
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, newError("failed to parse token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, newError("invalid token", nil)
	}

	// Повторная проверка схемы payload после проверки подписи
	if claims.Subject == "" {
		return nil, newError("token payload missing subject", nil)
	}

	return claims, nil
}
