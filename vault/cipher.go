package vault

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/tradewire/botvault/validation"
)

const (
	// IVSize - размер initialization vector для AES-CBC (16 bytes, размер блока AES)
	IVSize = aes.BlockSize

	// KeySize - размер мастер-ключа для AES-256 (32 bytes)
	KeySize = 32
)

// EncryptedSecret представляет зашифрованное секретное значение
// IV и Content - hex-кодированные строки; слой хранения обращается
// с ними как с непрозрачным текстом и никогда не изменяет
type EncryptedSecret struct {
	IV      string `json:"iv"`
	Content string `json:"content"`
}

// Encrypt шифрует секретное значение с использованием AES-256-CBC
// Для каждого вызова генерируется свежий случайный IV (16 bytes),
// поэтому два шифрования одного значения дают разные результаты
// Возвращает IV и ciphertext в hex-кодировке
func Encrypt(plaintext string, key []byte) (EncryptedSecret, error) {
	if err := validation.ValidateSecretValue(plaintext); err != nil {
		return EncryptedSecret{}, newEncryptionError("invalid secret value", err)
	}
	if len(key) != KeySize {
		return EncryptedSecret{}, newEncryptionError(
			fmt.Sprintf("encryption key must be %d bytes, got %d", KeySize, len(key)), nil)
	}

	// Создаем AES cipher block
	block, err := aes.NewCipher(key)
	if err != nil {
		return EncryptedSecret{}, newEncryptionError("failed to create cipher", err)
	}

	// Генерируем случайный IV
	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return EncryptedSecret{}, newEncryptionError("failed to generate iv", err)
	}

	// Дополняем plaintext до кратности блока (PKCS#7)
	padded := pad([]byte(plaintext))

	// Шифруем в режиме CBC
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return EncryptedSecret{
		IV:      hex.EncodeToString(iv),
		Content: hex.EncodeToString(ciphertext),
	}, nil
}

// Decrypt расшифровывает значение, созданное Encrypt
// Неверный ключ дает ошибку padding или мусор вместо plaintext;
// расшифрованное значение повторно проверяется валидатором секретов,
// поэтому результат - либо корректный секрет, либо EncryptionError,
// но никогда тихий неверный ответ
func Decrypt(secret EncryptedSecret, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", newEncryptionError(
			fmt.Sprintf("encryption key must be %d bytes, got %d", KeySize, len(key)), nil)
	}

	// Декодируем IV из hex и проверяем размер
	iv, err := hex.DecodeString(secret.IV)
	if err != nil {
		return "", newEncryptionError("failed to decode iv", err)
	}
	if len(iv) != IVSize {
		return "", newEncryptionError(
			fmt.Sprintf("iv must be %d bytes, got %d", IVSize, len(iv)), nil)
	}

	// Декодируем ciphertext из hex
	ciphertext, err := hex.DecodeString(secret.Content)
	if err != nil {
		return "", newEncryptionError("failed to decode ciphertext", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", newEncryptionError(
			fmt.Sprintf("ciphertext length must be a non-zero multiple of %d bytes, got %d",
				aes.BlockSize, len(ciphertext)), nil)
	}

	// Создаем AES cipher block
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", newEncryptionError("failed to create cipher", err)
	}

	// Расшифровываем в режиме CBC
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	// Снимаем PKCS#7 padding; неверный ключ обычно ломает именно его
	plaintext, err := unpad(padded)
	if err != nil {
		return "", newEncryptionError("failed to decrypt: wrong key or corrupted data", err)
	}

	// Повторная проверка схемы защищает от тихого повреждения данных
	if err := validation.ValidateSecretValue(string(plaintext)); err != nil {
		return "", newEncryptionError("decrypted value failed validation: wrong key or corrupted data", err)
	}

	return string(plaintext), nil
}

// pad дополняет данные до кратности блока AES по схеме PKCS#7
func pad(data []byte) []byte {
	padLen := aes.BlockSize - len(data)%aes.BlockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// unpad снимает PKCS#7 padding и проверяет его целостность
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid padded data length %d", len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize {
		return nil, fmt.Errorf("invalid padding length %d", padLen)
	}

	// Все байты padding должны быть равны его длине
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent padding bytes")
		}
	}

	return data[:len(data)-padLen], nil
}
