// Package botvault is the credential protection and authentication core
// of the tradewire bot dashboard: encryption of wallet private keys at
// rest, account password hashing, bearer token issuance and verification,
// and request admission throttling. The dashboard's transport and
// persistence layers call into this package; it owns no HTTP routes, no
// storage, and no CLI of its own.
package botvault

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tradewire/botvault/auth"
	"github.com/tradewire/botvault/config"
	"github.com/tradewire/botvault/ratelimit"
	"github.com/tradewire/botvault/vault"
)

// Service wires the secret codec, token service, and admission guard
// together from one startup configuration. The components share no
// mutable state and remain individually usable; Service only carries
// their construction and delegation.
type Service struct {
	codec  *vault.Codec
	tokens *auth.TokenService
	guard  *ratelimit.Guard
	logger *slog.Logger
}

// New builds a Service from startup configuration.
// Configuration problems (wrong master key length, empty signing secret)
// are returned as errors and should be treated as fatal at startup.
func New(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	codec, err := vault.NewCodec(cfg.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret codec: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	logger.Debug("credential core initialized", "token_ttl", cfg.TokenTTL)

	return &Service{
		codec:  codec,
		tokens: tokens,
		guard:  ratelimit.NewGuard(logger),
		logger: logger,
	}, nil
}

// Close stops the admission guard's background cleanup.
func (s *Service) Close() {
	s.guard.Stop()
}

// EncryptSecret encrypts a wallet private key for storage.
func (s *Service) EncryptSecret(plaintext string) (vault.EncryptedSecret, error) {
	return s.codec.Encrypt(plaintext)
}

// DecryptSecret recovers a stored wallet private key.
func (s *Service) DecryptSecret(secret vault.EncryptedSecret) (string, error) {
	return s.codec.Decrypt(secret)
}

// HashPassword hashes an account password for storage.
func (s *Service) HashPassword(password string) (string, error) {
	return auth.HashPassword(password)
}

// VerifyPassword reports whether password matches the stored hash.
func (s *Service) VerifyPassword(password, hash string) (bool, error) {
	return auth.VerifyPassword(password, hash)
}

// IssueToken signs a bearer token for the given claims.
func (s *Service) IssueToken(claims auth.Claims) (string, error) {
	return s.tokens.Issue(claims)
}

// VerifyToken validates a bearer token and returns its claims.
func (s *Service) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// Admit registers a call for identity against the given limit class and
// reports whether it may proceed. Exceeding the limit is a normal
// outcome, not an error; Decision.ResetAt carries the retry-after hint.
func (s *Service) Admit(identity string, limit int, window time.Duration) ratelimit.Decision {
	return s.guard.Check(identity, limit, window)
}
