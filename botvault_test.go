package botvault

import (
	"encoding/hex"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire/botvault/auth"
	"github.com/tradewire/botvault/config"
	"github.com/tradewire/botvault/vault"
)

func testConfig() *config.Config {
	return &config.Config{
		MasterKey:   []byte("01234567890123456789012345678901"),
		TokenSecret: "test-signing-secret",
		TokenTTL:    time.Hour,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		svc, err := New(testConfig(), testLogger())
		require.NoError(t, err)
		require.NotNil(t, svc)
		svc.Close()
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		svc, err := New(testConfig(), nil)
		require.NoError(t, err)
		require.NotNil(t, svc)
		svc.Close()
	})

	t.Run("wrong master key length", func(t *testing.T) {
		cfg := testConfig()
		cfg.MasterKey = []byte("too-short")

		svc, err := New(cfg, testLogger())
		require.Error(t, err)
		assert.Nil(t, svc)
		assert.Contains(t, err.Error(), "failed to create secret codec")
	})

	t.Run("empty token secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.TokenSecret = ""

		svc, err := New(cfg, testLogger())
		require.Error(t, err)
		assert.Nil(t, svc)
		assert.Contains(t, err.Error(), "failed to create token service")
	})
}

func TestService_SecretLifecycle(t *testing.T) {
	svc, err := New(testConfig(), testLogger())
	require.NoError(t, err)
	defer svc.Close()

	// Шифруем приватный ключ кошелька
	secret, err := svc.EncryptSecret("0xabc123")
	require.NoError(t, err)

	// IV декодируется ровно в 16 bytes
	iv, err := hex.DecodeString(secret.IV)
	require.NoError(t, err)
	assert.Len(t, iv, 16)

	// Расшифровка тем же ключом возвращает оригинал
	decrypted, err := svc.DecryptSecret(secret)
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", decrypted)

	// Сервис с другим мастер-ключом (последний символ изменен)
	// не может расшифровать значение
	otherCfg := testConfig()
	otherCfg.MasterKey = []byte("01234567890123456789012345678902")

	other, err := New(otherCfg, testLogger())
	require.NoError(t, err)
	defer other.Close()

	decrypted, err = other.DecryptSecret(secret)
	require.Error(t, err, "чужой мастер-ключ не должен расшифровывать секреты")
	assert.Empty(t, decrypted)

	var encErr *vault.EncryptionError
	assert.ErrorAs(t, err, &encErr)
}

func TestService_LoginFlow(t *testing.T) {
	svc, err := New(testConfig(), testLogger())
	require.NoError(t, err)
	defer svc.Close()

	// Регистрация: пароль превращается в hash для хранения
	hash, err := svc.HashPassword("correct-password-123")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-password-123", hash)

	// Неверный пароль отклоняется без ошибки
	ok, err := svc.VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	// Верный пароль проходит, после чего выпускается токен
	ok, err = svc.VerifyPassword("correct-password-123", hash)
	require.NoError(t, err)
	require.True(t, ok)

	token, err := svc.IssueToken(auth.Claims{
		WalletAddress:    "0xabcdef0123456789abcdef0123456789abcdef01",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
	})
	require.NoError(t, err)

	// Последующие запросы предъявляют токен
	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", claims.WalletAddress)

	// Токен, выпущенный с другим секретом, отклоняется
	otherCfg := testConfig()
	otherCfg.TokenSecret = "another-secret"

	other, err := New(otherCfg, testLogger())
	require.NoError(t, err)
	defer other.Close()

	claims, err = other.VerifyToken(token)
	require.Error(t, err)
	assert.Nil(t, claims)

	var authErr *auth.Error
	assert.ErrorAs(t, err, &authErr)
}

func TestService_Admit(t *testing.T) {
	svc, err := New(testConfig(), testLogger())
	require.NoError(t, err)
	defer svc.Close()

	// Жесткий лимит на создание ботов: 2 обращения в окно
	assert.True(t, svc.Admit("user-42", 2, time.Minute).Allowed)
	assert.True(t, svc.Admit("user-42", 2, time.Minute).Allowed)

	decision := svc.Admit("user-42", 2, time.Minute)
	assert.False(t, decision.Allowed)
	assert.True(t, decision.ResetAt.After(time.Now()),
		"отказ должен сообщать, когда можно повторить")

	// Другой пользователь не затронут
	assert.True(t, svc.Admit("user-43", 2, time.Minute).Allowed)
}
