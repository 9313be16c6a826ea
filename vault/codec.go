package vault

import "fmt"

// Codec инкапсулирует мастер-ключ, провалидированный один раз при создании
// Методы делегируют функциям пакета; Codec не хранит ничего кроме ключа
// и безопасен для параллельного использования
type Codec struct {
	key []byte
}

// NewCodec создает codec с указанным мастер-ключом
// Ключ должен быть ровно 32 bytes (AES-256); другая длина - ошибка
// конфигурации, а не повод для retry
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, newEncryptionError(
			fmt.Sprintf("encryption key must be %d bytes, got %d", KeySize, len(key)), nil)
	}

	// Копируем ключ, чтобы вызывающая сторона не могла изменить его позже
	k := make([]byte, KeySize)
	copy(k, key)

	return &Codec{key: k}, nil
}

// Encrypt шифрует значение мастер-ключом codec
func (c *Codec) Encrypt(plaintext string) (EncryptedSecret, error) {
	return Encrypt(plaintext, c.key)
}

// Decrypt расшифровывает значение мастер-ключом codec
func (c *Codec) Decrypt(secret EncryptedSecret) (string, error) {
	return Decrypt(secret, c.key)
}
