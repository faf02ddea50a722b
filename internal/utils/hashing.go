package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash возвращает sha256 содержимого в hex. Используется как ключ кэша описаний.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
