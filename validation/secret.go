package validation

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// WalletAddressPattern определяет допустимый формат адреса кошелька
// Формат EVM-сетей: префикс 0x и ровно 40 hex символов
var WalletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

const (
	// MaxSecretLen максимальная длина секретного значения в байтах
	MaxSecretLen = 4096
)

// ValidateSecretValue проверяет, что секретное значение синтаксически корректно
// Требования: непустая строка, валидный UTF-8, без управляющих символов,
// не длиннее MaxSecretLen байт
// Кодек применяет эту проверку дважды: перед шифрованием и после расшифровки
func ValidateSecretValue(value string) error {
	if value == "" {
		return fmt.Errorf("secret value cannot be empty")
	}

	if len(value) > MaxSecretLen {
		return fmt.Errorf("secret value must not exceed %d bytes", MaxSecretLen)
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("secret value must be valid UTF-8")
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return fmt.Errorf("secret value must not contain control characters")
		}
	}

	return nil
}

// ValidateWalletAddress проверяет формат адреса кошелька
// Формат: 0x + 40 hex символов (EVM-совместимые сети)
func ValidateWalletAddress(address string) error {
	if address == "" {
		return fmt.Errorf("wallet address cannot be empty")
	}

	if !WalletAddressPattern.MatchString(address) {
		return fmt.Errorf("wallet address must be 0x followed by 40 hex characters")
	}

	return nil
}
