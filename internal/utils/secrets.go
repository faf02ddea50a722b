package utils

import (
	"fmt"
	"os"
	"strings"
)

// secretsDir - стандартный путь Docker Secrets. Переменная, чтобы тесты могли подменить путь.
var secretsDir = "/run/secrets"

// ReadSecret читает секрет из файла Docker Secrets.
func ReadSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", secretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// ReadSecretOrEnv сначала ищет секрет в файле, затем в переменной окружения envName.
// Пустая строка без ошибки означает, что секрет не задан нигде.
func ReadSecretOrEnv(secretName, envName string) string {
	if secret, err := ReadSecret(secretName); err == nil {
		return secret
	}
	return strings.TrimSpace(os.Getenv(envName))
}
