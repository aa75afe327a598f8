// redact маскирует персональные данные и секреты перед записью в логи.
package redact

import (
	"strconv"
	"strings"
)

// Email оставляет первые два символа локальной части и домен.
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***"
	}

	if r := []rune(local); len(r) > 2 {
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token никогда не раскрывает содержимое токена, только его длину.
func Token(s string) string {
	if s == "" {
		return "[EMPTY_TOKEN]"
	}

	return "[REDACTED_TOKEN len=" + strconv.Itoa(len(s)) + "]"
}
