package security

import (
	"crypto/subtle"
	"encoding/hex"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/example/appmenu/internal/config"
)

const bridgeTokenSalt = "appmenu-bridge|"

// ResolveBridgeToken returns the token front-end listeners must present,
// preferring a compiled-in secret, then APPMENU_BRIDGE_TOKEN, then a token
// derived from the configured secret. An empty result disables the check.
func ResolveBridgeToken(secret string) string {
	if compiled := strings.TrimSpace(config.CompiledSecret); compiled != "" {
		return DeriveBridgeToken(compiled)
	}

	token := strings.TrimSpace(os.Getenv("APPMENU_BRIDGE_TOKEN"))
	if token != "" {
		return token
	}

	return DeriveBridgeToken(secret)
}

// DeriveBridgeToken stretches the secret into a deterministic hex token.
func DeriveBridgeToken(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	const (
		keyLength = 32
		n         = 1 << 15
		r         = 8
		p         = 1
	)
	key, err := scrypt.Key([]byte(secret), []byte(bridgeTokenSalt), n, r, p, keyLength)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(key)
}

// TokenMatches compares a presented token against the expected one in
// constant time. An empty expected token accepts everything.
func TokenMatches(expected, presented string) bool {
	if expected == "" {
		return true
	}
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
